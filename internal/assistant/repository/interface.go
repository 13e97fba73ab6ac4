package repository

import (
	"context"

	"smart-assistant/internal/model"
)

// CalendarRepository writes and reads events on the calendar backend.
type CalendarRepository interface {
	// CreateEvent stores ev and returns a link to it (may be empty).
	CreateEvent(ctx context.Context, ev model.CalendarEvent) (string, error)
	// ListEvents returns events overlapping [from, to), sorted by start.
	ListEvents(ctx context.Context, opt ListEventsOptions) ([]model.CalendarEvent, error)
}

// TaskRepository writes to-dos on the task backend.
type TaskRepository interface {
	// CreateTask stores t in listID ("" means the backend default) and returns a link.
	CreateTask(ctx context.Context, t model.TaskItem, listID string) (string, error)
}
