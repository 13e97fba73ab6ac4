package gcalendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"smart-assistant/pkg/googleauth"
)

const (
	dateLayout        = "2006-01-02"
	defaultMaxResults = 250
)

// Client wraps the Google Calendar API service.
type Client struct {
	service *calendar.Service
}

// NewClientFromCredentialsFile creates a Calendar client from a Service Account key
// or an OAuth client file plus the saved user token.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath, tokenPath string) (*Client, error) {
	ts, err := googleauth.TokenSourceFromFiles(ctx, googleauth.Config{
		CredentialsPath: credentialsPath,
		TokenPath:       tokenPath,
	})
	if err != nil {
		return nil, err
	}
	return NewClientFromTokenSource(ctx, ts)
}

// NewClientFromCredentialsJSON creates a Calendar client from raw credentials JSON bytes.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte, tokenPath string) (*Client, error) {
	ts, err := googleauth.TokenSource(ctx, credentialsJSON, tokenPath)
	if err != nil {
		return nil, err
	}
	return NewClientFromTokenSource(ctx, ts)
}

// NewClientFromTokenSource creates a Calendar client from an OAuth2 token source.
func NewClientFromTokenSource(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{service: svc}, nil
}

// NewClientFromHTTP creates a Calendar client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{service: svc}, nil
}

// CreateEvent creates a new Google Calendar event and notifies attendees.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	event := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Location:    req.Location,
		ColorId:     req.ColorID,
		Start:       eventDateTime(req.StartTime, req.Timezone, req.AllDay),
		End:         eventDateTime(req.EndTime, req.Timezone, req.AllDay),
	}
	for _, email := range req.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := c.service.Events.Insert(calendarID(req.CalendarID), event).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	return &Event{
		ID:          created.Id,
		Summary:     created.Summary,
		Description: created.Description,
		HtmlLink:    created.HtmlLink,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		AllDay:      req.AllDay,
		Location:    req.Location,
		ColorID:     req.ColorID,
		Timezone:    req.Timezone,
	}, nil
}

// ListEvents returns single (expanded) events overlapping [TimeMin, TimeMax], ordered by start.
func (c *Client) ListEvents(ctx context.Context, req ListEventsRequest) ([]Event, error) {
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	resp, err := c.service.Events.List(calendarID(req.CalendarID)).
		TimeMin(req.TimeMin.Format(time.RFC3339)).
		TimeMax(req.TimeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	loc := req.TimeMin.Location()
	events := make([]Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		start, allDay := parseEventDateTime(item.Start, loc)
		end, _ := parseEventDateTime(item.End, loc)
		tz := ""
		if item.Start != nil {
			tz = item.Start.TimeZone
		}
		events = append(events, Event{
			ID:          item.Id,
			Summary:     item.Summary,
			Description: item.Description,
			HtmlLink:    item.HtmlLink,
			StartTime:   start,
			EndTime:     end,
			AllDay:      allDay,
			Location:    item.Location,
			ColorID:     item.ColorId,
			Timezone:    tz,
		})
	}
	return events, nil
}

func calendarID(id string) string {
	if id == "" {
		return DefaultCalendarID
	}
	return id
}

func eventDateTime(t time.Time, tz string, allDay bool) *calendar.EventDateTime {
	if allDay {
		return &calendar.EventDateTime{Date: t.Format(dateLayout)}
	}
	// RFC3339 embeds the offset; TimeZone keeps recurring edits in the user's zone.
	return &calendar.EventDateTime{
		DateTime: t.Format(time.RFC3339),
		TimeZone: tz,
	}
}

func parseEventDateTime(edt *calendar.EventDateTime, loc *time.Location) (time.Time, bool) {
	if edt == nil {
		return time.Time{}, false
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t, false
		}
	}
	if edt.Date != "" {
		if t, err := time.ParseInLocation(dateLayout, edt.Date, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
