package usecase

import (
	"context"
	"errors"

	"smart-assistant/internal/assistant"
	"smart-assistant/internal/audit"
	"smart-assistant/internal/model"
)

// persist writes every extracted event and task. Items fail independently;
// the result is a success when at least one of them was created.
func (uc *implUseCase) persist(ctx context.Context, sc model.Scope, items model.ParsedItems) model.AssistantResult {
	if items.Empty() {
		return failure(msgNothingToAdd)
	}

	var result model.AssistantResult
	var eventFailures, taskFailures, ignoredTasks int

	for _, ev := range items.Events {
		uc.applyColor(ctx, &ev)
		link, err := uc.createEvent(ctx, ev)
		if err != nil {
			eventFailures++
			uc.logSyncError(ctx, sc, err)
			continue
		}
		result.Events = append(result.Events, ev)
		result.CalendarLinks = append(result.CalendarLinks, link)
	}

	if len(items.Tasks) > 0 {
		if uc.tasks == nil {
			ignoredTasks = len(items.Tasks)
			uc.l.Warnf(ctx, "persist: task backend not configured, %d tasks ignored", len(items.Tasks))
		} else {
			for _, t := range items.Tasks {
				uc.reconcileTask(ctx, sc, &t)
				link, err := uc.createTask(ctx, t)
				if err != nil {
					taskFailures++
					uc.logSyncError(ctx, sc, err)
					continue
				}
				result.Tasks = append(result.Tasks, t)
				result.TaskLinks = append(result.TaskLinks, link)
			}
		}
	}

	uc.l.Infof(ctx, "persist: user=%s events=%d/%d tasks=%d/%d",
		sc.UserID, len(result.Events), len(items.Events), len(result.Tasks), len(items.Tasks))

	if len(result.Events) == 0 && len(result.Tasks) == 0 {
		return failure(msgAllFailed + ignoredTasksNote(ignoredTasks))
	}

	result.Success = true
	result.Message = createdSummary(len(result.Events), len(result.Tasks), eventFailures, taskFailures) +
		ignoredTasksNote(ignoredTasks)
	return result
}

func (uc *implUseCase) createEvent(ctx context.Context, ev model.CalendarEvent) (string, error) {
	if uc.calendar == nil {
		return "", &assistant.SyncError{Kind: assistant.ErrCalendarSync, Title: ev.Title, Err: assistant.ErrNoCalendar}
	}
	link, err := uc.calendar.CreateEvent(ctx, ev)
	if err != nil {
		uc.l.Errorf(ctx, "persist: calendar sync failed for %q: %v", ev.Title, err)
		return "", &assistant.SyncError{Kind: assistant.ErrCalendarSync, Title: ev.Title, Err: err}
	}
	return link, nil
}

func (uc *implUseCase) createTask(ctx context.Context, t model.TaskItem) (string, error) {
	listID := uc.resolveList(ctx, t)
	link, err := uc.tasks.CreateTask(ctx, t, listID)
	if err != nil {
		uc.l.Errorf(ctx, "persist: task sync failed for %q: %v", t.Title, err)
		return "", &assistant.SyncError{Kind: assistant.ErrTaskSync, Title: t.Title, Err: err}
	}
	return link, nil
}

// resolveList maps the task's list name onto a remote list id. "" means the backend default.
func (uc *implUseCase) resolveList(ctx context.Context, t model.TaskItem) string {
	if uc.lists == nil {
		return ""
	}
	name := t.ListName
	if name == "" {
		name = t.Category
	}
	return uc.lists.ResolveOrCreate(ctx, name)
}

func (uc *implUseCase) logSyncError(ctx context.Context, sc model.Scope, err error) {
	kind := "sync_error"
	var se *assistant.SyncError
	if errors.As(err, &se) {
		switch {
		case errors.Is(se.Kind, assistant.ErrCalendarSync):
			kind = "calendar_sync_error"
		case errors.Is(se.Kind, assistant.ErrTaskSync):
			kind = "task_sync_error"
		}
	}
	uc.audit.LogError(ctx, audit.ErrorRecord{
		ErrorType: kind,
		Message:   err.Error(),
		UserID:    sc.UserID,
		Username:  sc.Username,
		Context:   map[string]any{"source": string(sc.Source), "request_id": sc.RequestID},
	})
}
