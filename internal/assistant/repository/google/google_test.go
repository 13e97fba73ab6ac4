package google

import (
	"context"
	"errors"
	"testing"
	"time"

	"smart-assistant/internal/assistant/repository"
	"smart-assistant/internal/model"
	"smart-assistant/pkg/gcalendar"
	"smart-assistant/pkg/gtasks"
	"smart-assistant/pkg/log"
)

type fakeCalendar struct {
	createReq gcalendar.CreateEventRequest
	listReq   gcalendar.ListEventsRequest
	events    []gcalendar.Event
	err       error
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	f.createReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &gcalendar.Event{ID: "ev1", HtmlLink: "https://calendar.google.com/event?eid=ev1"}, nil
}

func (f *fakeCalendar) ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error) {
	f.listReq = req
	return f.events, f.err
}

type fakeTasks struct {
	lists     []gtasks.TaskList
	insertReq gtasks.InsertTaskRequest
	webLink   string
	err       error
}

func (f *fakeTasks) ListLists(ctx context.Context) ([]gtasks.TaskList, error) {
	return f.lists, f.err
}

func (f *fakeTasks) CreateList(ctx context.Context, title string) (gtasks.TaskList, error) {
	if f.err != nil {
		return gtasks.TaskList{}, f.err
	}
	tl := gtasks.TaskList{ID: "new-" + title, Title: title}
	f.lists = append(f.lists, tl)
	return tl, nil
}

func (f *fakeTasks) InsertTask(ctx context.Context, req gtasks.InsertTaskRequest) (*gtasks.Task, error) {
	f.insertReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &gtasks.Task{ID: "t1", ListID: req.ListID, Title: req.Title, WebLink: f.webLink}, nil
}

func TestCalendarRepository_CreateEvent(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	fake := &fakeCalendar{}
	repo := NewCalendar(log.NewNop(), fake, "team@group.calendar.google.com")

	start := time.Date(2025, 3, 1, 1, 0, 0, 0, time.UTC)
	link, err := repo.CreateEvent(context.Background(), model.CalendarEvent{
		Title:     "Dentist",
		Start:     start,
		End:       start.Add(time.Hour),
		Timezone:  "Asia/Shanghai",
		Attendees: []string{"a@example.com"},
		ColorID:   "10",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if link != "https://calendar.google.com/event?eid=ev1" {
		t.Errorf("link = %q", link)
	}

	req := fake.createReq
	if req.CalendarID != "team@group.calendar.google.com" || req.Summary != "Dentist" || req.ColorID != "10" {
		t.Errorf("unexpected request %+v", req)
	}
	if req.Timezone != "Asia/Shanghai" || req.StartTime.Location().String() != shanghai.String() || req.StartTime.Hour() != 9 {
		t.Errorf("expected start in event timezone, got %v (%s)", req.StartTime, req.Timezone)
	}
}

func TestCalendarRepository_CreateEventError(t *testing.T) {
	repo := NewCalendar(log.NewNop(), &fakeCalendar{err: errors.New("quota")}, "")
	if _, err := repo.CreateEvent(context.Background(), model.CalendarEvent{Title: "x"}); err == nil {
		t.Error("expected error")
	}
}

func TestCalendarRepository_ListEvents(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	fake := &fakeCalendar{events: []gcalendar.Event{
		{Summary: "Standup", StartTime: start, EndTime: start.Add(15 * time.Minute), ColorID: "7", Timezone: "Europe/Berlin"},
		{Summary: "Holiday", StartTime: start, EndTime: start.Add(24 * time.Hour), AllDay: true},
	}}
	repo := NewCalendar(log.NewNop(), fake, "")

	events, err := repo.ListEvents(context.Background(), repository.ListEventsOptions{
		From:     start,
		To:       start.Add(24 * time.Hour),
		Timezone: "UTC",
		Limit:    10,
	})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if fake.listReq.MaxResults != 10 {
		t.Errorf("MaxResults = %d", fake.listReq.MaxResults)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Title != "Standup" || events[0].Timezone != "Europe/Berlin" || events[0].ColorID != "7" {
		t.Errorf("unexpected first event %+v", events[0])
	}
	if !events[1].AllDay || events[1].Timezone != "UTC" {
		t.Errorf("unexpected second event %+v", events[1])
	}
}

func TestTaskRepository_CreateTask(t *testing.T) {
	due := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		webLink  string
		wantLink string
	}{
		{name: "direct link", webLink: "https://tasks.google.com/task/t1", wantLink: "https://tasks.google.com/task/t1"},
		{name: "home link fallback", wantLink: TasksHomeURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTasks{webLink: tt.webLink}
			repo := NewTasks(log.NewNop(), fake)

			link, err := repo.CreateTask(context.Background(), model.NewTaskItem("Pay rent", &due, "UTC", "by transfer", "finance", ""), "L2")
			if err != nil {
				t.Fatalf("CreateTask: %v", err)
			}
			if link != tt.wantLink {
				t.Errorf("link = %q, want %q", link, tt.wantLink)
			}
			req := fake.insertReq
			if req.ListID != "L2" || req.Title != "Pay rent" || req.Notes != "by transfer" || req.Due == nil || !req.Due.Equal(due) {
				t.Errorf("unexpected insert request %+v", req)
			}
		})
	}
}

func TestTaskRepository_Backend(t *testing.T) {
	fake := &fakeTasks{lists: []gtasks.TaskList{{ID: "L1", Title: "My Tasks"}}}
	repo := NewTasks(log.NewNop(), fake)

	created, err := repo.CreateList(context.Background(), "shopping")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if created.ID != "new-shopping" || created.Name != "shopping" {
		t.Errorf("unexpected list %+v", created)
	}

	lists, err := repo.ListLists(context.Background())
	if err != nil {
		t.Fatalf("ListLists: %v", err)
	}
	if len(lists) != 2 || lists[0].Name != "My Tasks" || lists[1].ID != "new-shopping" {
		t.Errorf("unexpected lists %+v", lists)
	}

	fake.err = errors.New("offline")
	if _, err := repo.ListLists(context.Background()); err == nil {
		t.Error("expected error")
	}
	if _, err := repo.CreateTask(context.Background(), model.TaskItem{Title: "x"}, ""); err == nil {
		t.Error("expected error")
	}
}
