package caldav

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEventExists is returned when a resource with the same UID is already stored.
var ErrEventExists = errors.New("caldav: event already exists")

// Client writes and reads VEVENT resources in one calendar collection
// and writes VTODO resources in a task collection.
type Client struct {
	calendarURL string
	taskURL     string
	username    string
	password    string
	httpClient  *http.Client
	now         func() time.Time
}

// New creates a CalDAV client for cfg.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("caldav: url is required")
	}
	calendarURL, err := collectionURL(cfg.URL, cfg.CalendarPath)
	if err != nil {
		return nil, fmt.Errorf("caldav: invalid calendar url: %w", err)
	}
	taskURL := calendarURL
	if cfg.TaskPath != "" {
		if taskURL, err = collectionURL(cfg.URL, cfg.TaskPath); err != nil {
			return nil, fmt.Errorf("caldav: invalid task url: %w", err)
		}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		calendarURL: calendarURL,
		taskURL:     taskURL,
		username:    cfg.Username,
		password:    cfg.Password,
		httpClient:  httpClient,
		now:         now,
	}, nil
}

// PutEvent stores ev as a new resource and returns its URL.
// A UID is generated when ev.UID is empty.
func (c *Client) PutEvent(ctx context.Context, ev Event) (string, error) {
	if ev.UID == "" {
		ev.UID = uuid.NewString()
	}
	return c.put(ctx, "put event", c.calendarURL, ev.UID, encodeEvent(ev, c.now()))
}

// PutTodo stores todo in the task collection and returns its URL.
func (c *Client) PutTodo(ctx context.Context, todo Todo) (string, error) {
	if todo.UID == "" {
		todo.UID = uuid.NewString()
	}
	return c.put(ctx, "put todo", c.taskURL, todo.UID, encodeTodo(todo, c.now()))
}

func (c *Client) put(ctx context.Context, op, collection, uid, body string) (string, error) {
	href := collection + url.PathEscape(uid) + ".ics"

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, href, strings.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "text/calendar; charset=utf-8")
	req.Header.Set("If-None-Match", "*")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("caldav: %s: %w", op, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusNoContent, http.StatusOK:
		return href, nil
	case http.StatusPreconditionFailed:
		return "", ErrEventExists
	default:
		return "", statusError(op, resp)
	}
}

// ListEvents returns the events (recurrences expanded) overlapping [from, to).
func (c *Client) ListEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	req, err := http.NewRequestWithContext(ctx, "REPORT", c.calendarURL, strings.NewReader(calendarQuery(from, to)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/xml; charset=utf-8")
	req.Header.Set("Depth", "1")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("caldav: calendar query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMultiStatus {
		return nil, statusError("calendar query", resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("caldav: read response: %w", err)
	}
	ms, err := parseMultistatus(body)
	if err != nil {
		return nil, err
	}

	loc := from.Location()
	var events []Event
	for _, r := range ms.Responses {
		for _, ps := range r.Propstats {
			if ps.Prop.CalendarData == "" {
				continue
			}
			decoded, err := decodeEvents(ps.Prop.CalendarData, from, to, loc)
			if err != nil {
				return nil, fmt.Errorf("caldav: %s: %w", r.Href, err)
			}
			for i := range decoded {
				decoded[i].Href = c.resolve(r.Href)
			}
			events = append(events, decoded...)
		}
	}
	sortByStart(events)
	return events, nil
}

func collectionURL(base, path string) (string, error) {
	u, err := url.JoinPath(base, path)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}
}

func (c *Client) resolve(href string) string {
	base, err := url.Parse(c.calendarURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func statusError(op string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("caldav: %s: unexpected status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(snippet)))
}
