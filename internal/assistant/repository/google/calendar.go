package google

import (
	"context"
	"fmt"

	"smart-assistant/internal/assistant/repository"
	"smart-assistant/internal/model"
	"smart-assistant/pkg/datemath"
	"smart-assistant/pkg/gcalendar"
	pkgLog "smart-assistant/pkg/log"
)

// calendarClient is satisfied by *gcalendar.Client.
type calendarClient interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
}

type calendarRepository struct {
	l          pkgLog.Logger
	client     calendarClient
	calendarID string
}

// NewCalendar creates a CalendarRepository on top of Google Calendar.
func NewCalendar(l pkgLog.Logger, client calendarClient, calendarID string) repository.CalendarRepository {
	return &calendarRepository{
		l:          l,
		client:     client,
		calendarID: calendarID,
	}
}

func (r *calendarRepository) CreateEvent(ctx context.Context, ev model.CalendarEvent) (string, error) {
	loc := ev.Loc()
	created, err := r.client.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  r.calendarID,
		Summary:     ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		StartTime:   ev.Start.In(loc),
		EndTime:     ev.End.In(loc),
		Timezone:    loc.String(),
		AllDay:      ev.AllDay,
		Attendees:   ev.Attendees,
		ColorID:     ev.ColorID,
	})
	if err != nil {
		r.l.Errorf(ctx, "google calendar repository: failed to create event %q: %v", ev.Title, err)
		return "", fmt.Errorf("create google event: %w", err)
	}
	return created.HtmlLink, nil
}

func (r *calendarRepository) ListEvents(ctx context.Context, opt repository.ListEventsOptions) ([]model.CalendarEvent, error) {
	loc := datemath.LoadLocation(opt.Timezone)
	items, err := r.client.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: r.calendarID,
		TimeMin:    opt.From.In(loc),
		TimeMax:    opt.To.In(loc),
		MaxResults: int64(opt.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list google events: %w", err)
	}

	events := make([]model.CalendarEvent, 0, len(items))
	for _, it := range items {
		tz := it.Timezone
		if tz == "" {
			tz = loc.String()
		}
		events = append(events, model.CalendarEvent{
			Title:       it.Summary,
			Start:       it.StartTime,
			End:         it.EndTime,
			Timezone:    tz,
			Description: it.Description,
			Location:    it.Location,
			AllDay:      it.AllDay,
			ColorID:     it.ColorID,
		})
	}
	return events, nil
}
