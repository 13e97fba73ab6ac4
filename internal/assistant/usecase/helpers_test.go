package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"smart-assistant/internal/assistant"
	"smart-assistant/internal/assistant/repository"
	"smart-assistant/internal/audit"
	"smart-assistant/internal/extraction"
	"smart-assistant/internal/model"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock extractor returning canned items
type mockExtractor struct {
	items    model.ParsedItems
	err      error
	presets  []string
	mapOut   extraction.MapTaskOutput
	mapErr   error
	mapCalls []extraction.MapTaskInput

	textInputs  []extraction.ParseTextInput
	imageInputs []extraction.ParseImageInput
}

func (m *mockExtractor) ParseText(ctx context.Context, sc model.Scope, input extraction.ParseTextInput) (model.ParsedItems, error) {
	m.textInputs = append(m.textInputs, input)
	return m.items, m.err
}

func (m *mockExtractor) ParseImage(ctx context.Context, sc model.Scope, input extraction.ParseImageInput) (model.ParsedItems, error) {
	m.imageInputs = append(m.imageInputs, input)
	return m.items, m.err
}

func (m *mockExtractor) MapTaskToAllowed(ctx context.Context, sc model.Scope, input extraction.MapTaskInput) (extraction.MapTaskOutput, error) {
	m.mapCalls = append(m.mapCalls, input)
	return m.mapOut, m.mapErr
}

func (m *mockExtractor) TaskPresets() []string { return m.presets }

// Mock calendar failing for titles listed in failFor
type mockCalendar struct {
	failFor map[string]bool
	created []model.CalendarEvent

	listed  []model.CalendarEvent
	listErr error
	listOpt repository.ListEventsOptions
}

func (m *mockCalendar) CreateEvent(ctx context.Context, ev model.CalendarEvent) (string, error) {
	if m.failFor[ev.Title] {
		return "", errors.New("calendar unavailable")
	}
	m.created = append(m.created, ev)
	return "https://calendar.example/" + ev.Title, nil
}

func (m *mockCalendar) ListEvents(ctx context.Context, opt repository.ListEventsOptions) ([]model.CalendarEvent, error) {
	m.listOpt = opt
	return m.listed, m.listErr
}

type createdTask struct {
	task   model.TaskItem
	listID string
}

// Mock task repository failing for titles listed in failFor
type mockTasks struct {
	failFor map[string]bool
	created []createdTask
}

func (m *mockTasks) CreateTask(ctx context.Context, t model.TaskItem, listID string) (string, error) {
	if m.failFor[t.Title] {
		return "", errors.New("tasks unavailable")
	}
	m.created = append(m.created, createdTask{task: t, listID: listID})
	return "https://tasks.example/" + t.Title, nil
}

// Mock list resolver returning "id-<name>"
type mockLists struct {
	names []string
}

func (m *mockLists) ResolveOrCreate(ctx context.Context, name string) string {
	m.names = append(m.names, name)
	return "id-" + name
}

// Mock audit logger recording interactions and errors
type mockAudit struct {
	audit.Logger

	mu           sync.Mutex
	interactions []audit.Interaction
	errors       []audit.ErrorRecord
}

func newMockAudit() *mockAudit {
	return &mockAudit{Logger: audit.NewNop()}
}

func (m *mockAudit) LogInteraction(ctx context.Context, in audit.Interaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interactions = append(m.interactions, in)
}

func (m *mockAudit) LogError(ctx context.Context, in audit.ErrorRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, in)
}

var testNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

type testDeps struct {
	extractor *mockExtractor
	calendar  *mockCalendar
	tasks     *mockTasks
	lists     *mockLists
	audit     *mockAudit
}

func newTestDeps() *testDeps {
	return &testDeps{
		extractor: &mockExtractor{},
		calendar:  &mockCalendar{},
		tasks:     &mockTasks{},
		lists:     &mockLists{},
		audit:     newMockAudit(),
	}
}

func (d *testDeps) useCase(opts assistant.Options) *implUseCase {
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	return New(&mockLogger{}, d.extractor, d.calendar, d.tasks, d.lists, d.audit, opts)
}

func event(title, category, colorID string) model.CalendarEvent {
	start := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	return model.CalendarEvent{
		Title:    title,
		Start:    start,
		End:      start.Add(time.Hour),
		Timezone: "UTC",
		Category: category,
		ColorID:  colorID,
	}
}

func task(title, category, list string) model.TaskItem {
	return model.NewTaskItem(title, nil, "UTC", "", category, list)
}
