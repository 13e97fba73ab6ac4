package gtasks

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"

	"smart-assistant/pkg/googleauth"
)

const maxListsPerPage = 100

// Client wraps the Google Tasks API service.
type Client struct {
	service *tasks.Service
}

// NewClientFromCredentialsFile creates a Tasks client from a Service Account key
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

// NewClientFromTokenSource creates a Tasks client from an OAuth2 token source.
func NewClientFromTokenSource(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	svc, err := tasks.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{service: svc}, nil
}

// NewClientFromHTTP creates a Tasks client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{service: svc}, nil
}

// ListLists returns every task list of the user, following pagination.
func (c *Client) ListLists(ctx context.Context) ([]TaskList, error) {
	var out []TaskList
	err := c.service.Tasklists.List().
		MaxResults(maxListsPerPage).
		Pages(ctx, func(page *tasks.TaskLists) error {
			for _, item := range page.Items {
				out = append(out, TaskList{ID: item.Id, Title: item.Title})
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list task lists: %w", err)
	}
	return out, nil
}

// CreateList creates a task list named title.
func (c *Client) CreateList(ctx context.Context, title string) (TaskList, error) {
	created, err := c.service.Tasklists.Insert(&tasks.TaskList{Title: title}).Context(ctx).Do()
	if err != nil {
		return TaskList{}, fmt.Errorf("failed to create task list %q: %w", title, err)
	}
	return TaskList{ID: created.Id, Title: created.Title}, nil
}

// InsertTask creates a task in req.ListID (the default list when empty).
func (c *Client) InsertTask(ctx context.Context, req InsertTaskRequest) (*Task, error) {
	listID := req.ListID
	if listID == "" {
		listID = DefaultListID
	}

	task := &tasks.Task{
		Title: req.Title,
		Notes: req.Notes,
	}
	if req.Due != nil {
		task.Due = FormatDue(*req.Due)
	}

	created, err := c.service.Tasks.Insert(listID, task).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	out := &Task{
		ID:       created.Id,
		ListID:   listID,
		Title:    created.Title,
		Notes:    created.Notes,
		Status:   created.Status,
		WebLink:  created.WebViewLink,
		SelfLink: created.SelfLink,
	}
	if created.Due != "" {
		if due, err := time.Parse(time.RFC3339, created.Due); err == nil {
			out.Due = &due
		}
	}
	return out, nil
}

// FormatDue renders a due date the way the Tasks API stores it: midnight UTC of the local date.
func FormatDue(due time.Time) string {
	y, m, d := due.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
}
