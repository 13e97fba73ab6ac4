package caldav

import (
	"context"
	"fmt"

	"smart-assistant/internal/assistant/repository"
	"smart-assistant/internal/model"
	"smart-assistant/pkg/caldav"
	pkgLog "smart-assistant/pkg/log"
)

type taskRepository struct {
	l      pkgLog.Logger
	client client
}

// NewTasks creates a TaskRepository that stores VTODOs. CalDAV has no list
// provisioning, so listID is ignored and the task list name becomes its category.
func NewTasks(l pkgLog.Logger, c client) repository.TaskRepository {
	return &taskRepository{l: l, client: c}
}

func (r *taskRepository) CreateTask(ctx context.Context, t model.TaskItem, listID string) (string, error) {
	category := t.ListName
	if category == "" {
		category = t.Category
	}
	href, err := r.client.PutTodo(ctx, caldav.Todo{
		Summary:     t.Title,
		Description: t.Notes,
		Due:         t.Due,
		Category:    category,
	})
	if err != nil {
		r.l.Errorf(ctx, "caldav repository: failed to create task %q: %v", t.Title, err)
		return "", fmt.Errorf("create caldav task: %w", err)
	}
	return href, nil
}
