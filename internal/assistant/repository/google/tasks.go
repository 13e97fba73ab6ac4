package google

import (
	"context"
	"fmt"

	"smart-assistant/internal/model"
	"smart-assistant/internal/tasklist"
	"smart-assistant/pkg/gtasks"
	pkgLog "smart-assistant/pkg/log"
)

// TasksHomeURL is returned when the API gives no direct link to a task.
const TasksHomeURL = "https://tasks.google.com/"

// tasksClient is satisfied by *gtasks.Client.
type tasksClient interface {
	ListLists(ctx context.Context) ([]gtasks.TaskList, error)
	CreateList(ctx context.Context, title string) (gtasks.TaskList, error)
	InsertTask(ctx context.Context, req gtasks.InsertTaskRequest) (*gtasks.Task, error)
}

// TaskRepository writes tasks to Google Tasks. It also serves as the
// tasklist.Backend for list provisioning.
type TaskRepository struct {
	l      pkgLog.Logger
	client tasksClient
}

// NewTasks creates a TaskRepository on top of Google Tasks.
func NewTasks(l pkgLog.Logger, client tasksClient) *TaskRepository {
	return &TaskRepository{l: l, client: client}
}

func (r *TaskRepository) CreateTask(ctx context.Context, t model.TaskItem, listID string) (string, error) {
	created, err := r.client.InsertTask(ctx, gtasks.InsertTaskRequest{
		ListID: listID,
		Title:  t.Title,
		Notes:  t.Notes,
		Due:    t.Due,
	})
	if err != nil {
		r.l.Errorf(ctx, "google tasks repository: failed to create task %q in %q: %v", t.Title, listID, err)
		return "", fmt.Errorf("create google task: %w", err)
	}
	if created.WebLink != "" {
		return created.WebLink, nil
	}
	return TasksHomeURL, nil
}

func (r *TaskRepository) ListLists(ctx context.Context) ([]tasklist.List, error) {
	lists, err := r.client.ListLists(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]tasklist.List, 0, len(lists))
	for _, tl := range lists {
		out = append(out, tasklist.List{ID: tl.ID, Name: tl.Title})
	}
	return out, nil
}

func (r *TaskRepository) CreateList(ctx context.Context, name string) (tasklist.List, error) {
	tl, err := r.client.CreateList(ctx, name)
	if err != nil {
		return tasklist.List{}, err
	}
	r.l.Infof(ctx, "google tasks repository: created list %q id=%s", tl.Title, tl.ID)
	return tasklist.List{ID: tl.ID, Name: tl.Title}, nil
}
