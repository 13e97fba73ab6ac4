package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"smart-assistant/internal/assistant"
	"smart-assistant/internal/extraction"
	"smart-assistant/internal/model"
)

func TestPersist_NothingToAdd(t *testing.T) {
	d := newTestDeps()
	uc := d.useCase(assistant.Options{})

	result := uc.persist(context.Background(), model.Scope{}, model.ParsedItems{})
	if result.Success {
		t.Fatal("expected failure for empty items")
	}
	if result.Message != msgNothingToAdd {
		t.Errorf("unexpected message %q", result.Message)
	}
	if len(d.calendar.created) != 0 || len(d.tasks.created) != 0 {
		t.Error("expected no backend calls")
	}
}

func TestPersist_ColorDefaulting(t *testing.T) {
	tests := []struct {
		name   string
		opts   assistant.Options
		event  model.CalendarEvent
		wantID string
	}{
		{name: "explicit color wins", event: event("a", "work", "3"), wantID: "3"},
		{name: "category table", event: event("b", "Work", ""), wantID: "7"},
		{name: "configured category overrides default table", opts: assistant.Options{CategoryColors: map[string]string{"work": "red"}}, event: event("c", "work", ""), wantID: "11"},
		{name: "unknown category uses default color", opts: assistant.Options{DefaultColorID: "lavender"}, event: event("d", "gardening", ""), wantID: "1"},
		{name: "no match and no default", event: event("e", "gardening", ""), wantID: ""},
		{name: "invalid explicit id falls through", event: event("f", "finance", "42"), wantID: "8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps()
			uc := d.useCase(tt.opts)

			result := uc.persist(context.Background(), model.Scope{}, model.ParsedItems{Events: []model.CalendarEvent{tt.event}})
			if !result.Success {
				t.Fatalf("expected success, got %q", result.Message)
			}
			if got := d.calendar.created[0].ColorID; got != tt.wantID {
				t.Errorf("ColorID = %q, want %q", got, tt.wantID)
			}
			if got := result.Events[0].ColorID; got != tt.wantID {
				t.Errorf("result ColorID = %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestPersist_PartialFailure(t *testing.T) {
	d := newTestDeps()
	d.calendar.failFor = map[string]bool{"broken": true}
	d.tasks.failFor = map[string]bool{"lost": true}
	uc := d.useCase(assistant.Options{})

	result := uc.persist(context.Background(), model.Scope{UserID: "42"}, model.ParsedItems{
		Events: []model.CalendarEvent{event("standup", "work", ""), event("broken", "work", "")},
		Tasks:  []model.TaskItem{task("buy milk", "shopping", ""), task("lost", "", ""), task("pay rent", "finance", "")},
	})

	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	want := "Created: 1 event, 2 tasks (1 more event failed) (1 more task failed)"
	if result.Message != want {
		t.Errorf("Message = %q, want %q", result.Message, want)
	}
	if len(result.CalendarLinks) != 1 || result.CalendarLinks[0] != "https://calendar.example/standup" {
		t.Errorf("unexpected calendar links %v", result.CalendarLinks)
	}
	if len(result.TaskLinks) != 2 || len(result.Tasks) != 2 {
		t.Errorf("unexpected tasks %v / links %v", result.Tasks, result.TaskLinks)
	}
	if len(d.audit.errors) != 2 {
		t.Fatalf("expected 2 audited sync errors, got %d", len(d.audit.errors))
	}
	if d.audit.errors[0].ErrorType != "calendar_sync_error" || d.audit.errors[1].ErrorType != "task_sync_error" {
		t.Errorf("unexpected error types %q, %q", d.audit.errors[0].ErrorType, d.audit.errors[1].ErrorType)
	}
}

func TestPersist_AllFailed(t *testing.T) {
	d := newTestDeps()
	d.calendar.failFor = map[string]bool{"x": true}
	d.tasks.failFor = map[string]bool{"y": true}
	uc := d.useCase(assistant.Options{})

	result := uc.persist(context.Background(), model.Scope{}, model.ParsedItems{
		Events: []model.CalendarEvent{event("x", "", "")},
		Tasks:  []model.TaskItem{task("y", "", "")},
	})
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Message != msgAllFailed {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestPersist_NoTaskBackend(t *testing.T) {
	d := newTestDeps()
	uc := New(&mockLogger{}, d.extractor, d.calendar, nil, nil, nil, assistant.Options{})

	result := uc.persist(context.Background(), model.Scope{}, model.ParsedItems{
		Events: []model.CalendarEvent{event("standup", "work", "")},
		Tasks:  []model.TaskItem{task("buy milk", "shopping", "")},
	})
	if !result.Success || result.Message != "Created: 1 event (1 task ignored: no task backend)" {
		t.Errorf("unexpected result %+v", result)
	}

	result = uc.persist(context.Background(), model.Scope{}, model.ParsedItems{
		Tasks: []model.TaskItem{task("buy milk", "shopping", ""), task("call mum", "personal", "")},
	})
	if result.Success {
		t.Error("expected failure when only tasks and no task backend")
	}
	if result.Message != msgAllFailed+" (2 tasks ignored: no task backend)" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestPersist_NoCalendarBackend(t *testing.T) {
	d := newTestDeps()
	uc := New(&mockLogger{}, d.extractor, nil, d.tasks, nil, nil, assistant.Options{})

	result := uc.persist(context.Background(), model.Scope{}, model.ParsedItems{
		Events: []model.CalendarEvent{event("standup", "work", "")},
		Tasks:  []model.TaskItem{task("buy milk", "shopping", "")},
	})
	if !result.Success || result.Message != "Created: 1 task (1 more event failed)" {
		t.Errorf("unexpected result %+v", result)
	}
	if d.tasks.created[0].listID != "" {
		t.Errorf("expected default list without a resolver, got %q", d.tasks.created[0].listID)
	}
}

func TestPersist_ListResolution(t *testing.T) {
	d := newTestDeps()
	uc := d.useCase(assistant.Options{})

	uc.persist(context.Background(), model.Scope{}, model.ParsedItems{
		Tasks: []model.TaskItem{task("a", "shopping", ""), task("b", "work", "Q3"), task("c", "", "")},
	})

	want := []string{"shopping", "Q3", ""}
	if len(d.lists.names) != len(want) {
		t.Fatalf("resolver calls = %v", d.lists.names)
	}
	for i, name := range want {
		if d.lists.names[i] != name {
			t.Errorf("call %d: name = %q, want %q", i, d.lists.names[i], name)
		}
		if d.tasks.created[i].listID != "id-"+name {
			t.Errorf("task %d: listID = %q", i, d.tasks.created[i].listID)
		}
	}
}

func TestSyncError(t *testing.T) {
	cause := errors.New("boom")
	err := error(&assistant.SyncError{Kind: assistant.ErrTaskSync, Title: "x", Err: cause})

	if !errors.Is(err, assistant.ErrTaskSync) || !errors.Is(err, cause) {
		t.Error("expected SyncError to match kind and cause")
	}
	if errors.Is(err, assistant.ErrCalendarSync) {
		t.Error("unexpected calendar kind")
	}
	if !strings.Contains(err.Error(), `"x"`) {
		t.Errorf("expected title in %q", err.Error())
	}
}

func TestReconcileTask(t *testing.T) {
	presets := []string{"work", "shopping", "personal"}

	tests := []struct {
		name     string
		task     model.TaskItem
		mapOut   extraction.MapTaskOutput
		mapErr   error
		wantCall bool
		wantCat  string
		wantList string
	}{
		{
			name:     "inside presets is left alone",
			task:     task("report", "work", "work"),
			wantCat:  "work",
			wantList: "work",
		},
		{
			name:     "outside category is remapped",
			task:     task("milk", "errands", ""),
			mapOut:   extraction.MapTaskOutput{Category: "Shopping", ListName: "shopping"},
			wantCall: true,
			wantCat:  "shopping",
			wantList: "shopping",
		},
		{
			name:     "outside list with preset category",
			task:     task("gym", "personal", "fitness"),
			mapOut:   extraction.MapTaskOutput{Category: "personal", ListName: "personal"},
			wantCall: true,
			wantCat:  "personal",
			wantList: "personal",
		},
		{
			name:     "both empty asks the model",
			task:     task("call mom", "", ""),
			mapOut:   extraction.MapTaskOutput{Category: "personal"},
			wantCall: true,
			wantCat:  "personal",
			wantList: "personal",
		},
		{
			name:     "non-member answer is ignored",
			task:     task("milk", "errands", ""),
			mapOut:   extraction.MapTaskOutput{Category: "groceries", ListName: "groceries"},
			wantCall: true,
			wantCat:  "errands",
			wantList: "errands",
		},
		{
			name:     "remap failure keeps the task",
			task:     task("milk", "errands", ""),
			mapErr:   errors.New("model down"),
			wantCall: true,
			wantCat:  "errands",
			wantList: "errands",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps()
			d.extractor.presets = presets
			d.extractor.mapOut = tt.mapOut
			d.extractor.mapErr = tt.mapErr
			uc := d.useCase(assistant.Options{})

			got := tt.task
			uc.reconcileTask(context.Background(), model.Scope{}, &got)

			if called := len(d.extractor.mapCalls) > 0; called != tt.wantCall {
				t.Errorf("MapTaskToAllowed called = %v, want %v", called, tt.wantCall)
			}
			if got.Category != tt.wantCat || got.ListName != tt.wantList {
				t.Errorf("got category=%q list=%q, want %q/%q", got.Category, got.ListName, tt.wantCat, tt.wantList)
			}
		})
	}
}

func TestReconcileTask_NoPresets(t *testing.T) {
	d := newTestDeps()
	uc := d.useCase(assistant.Options{})

	got := task("anything", "", "")
	uc.reconcileTask(context.Background(), model.Scope{}, &got)
	if len(d.extractor.mapCalls) != 0 {
		t.Error("expected no remap without presets")
	}
}

func TestCreatedSummary(t *testing.T) {
	tests := []struct {
		events, tasks, evFail, taskFail int
		want                            string
	}{
		{2, 0, 0, 0, "Created: 2 events"},
		{0, 1, 0, 0, "Created: 1 task"},
		{1, 3, 0, 2, "Created: 1 event, 3 tasks (2 more tasks failed)"},
		{1, 0, 1, 0, "Created: 1 event (1 more event failed)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := createdSummary(tt.events, tt.tasks, tt.evFail, tt.taskFail); got != tt.want {
				t.Errorf("createdSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}
