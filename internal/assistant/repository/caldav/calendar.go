package caldav

import (
	"context"
	"fmt"
	"time"

	"smart-assistant/internal/assistant/repository"
	"smart-assistant/internal/model"
	"smart-assistant/pkg/caldav"
	"smart-assistant/pkg/datemath"
	pkgLog "smart-assistant/pkg/log"
)

// client is satisfied by *caldav.Client.
type client interface {
	PutEvent(ctx context.Context, ev caldav.Event) (string, error)
	PutTodo(ctx context.Context, todo caldav.Todo) (string, error)
	ListEvents(ctx context.Context, from, to time.Time) ([]caldav.Event, error)
}

type calendarRepository struct {
	l      pkgLog.Logger
	client client
}

// NewCalendar creates a CalendarRepository backed by a CalDAV collection.
func NewCalendar(l pkgLog.Logger, c client) repository.CalendarRepository {
	return &calendarRepository{l: l, client: c}
}

func (r *calendarRepository) CreateEvent(ctx context.Context, ev model.CalendarEvent) (string, error) {
	loc := ev.Loc()
	href, err := r.client.PutEvent(ctx, caldav.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       ev.Start.In(loc),
		End:         ev.End.In(loc),
		AllDay:      ev.AllDay,
		Attendees:   ev.Attendees,
		Category:    ev.Category,
		ColorID:     ev.ColorID,
	})
	if err != nil {
		r.l.Errorf(ctx, "caldav repository: failed to create event %q: %v", ev.Title, err)
		return "", fmt.Errorf("create caldav event: %w", err)
	}
	return href, nil
}

func (r *calendarRepository) ListEvents(ctx context.Context, opt repository.ListEventsOptions) ([]model.CalendarEvent, error) {
	loc := datemath.LoadLocation(opt.Timezone)
	items, err := r.client.ListEvents(ctx, opt.From.In(loc), opt.To.In(loc))
	if err != nil {
		return nil, fmt.Errorf("list caldav events: %w", err)
	}
	if opt.Limit > 0 && len(items) > opt.Limit {
		items = items[:opt.Limit]
	}

	events := make([]model.CalendarEvent, 0, len(items))
	for _, it := range items {
		events = append(events, model.CalendarEvent{
			Title:       it.Summary,
			Start:       it.Start,
			End:         it.End,
			Timezone:    loc.String(),
			Description: it.Description,
			Location:    it.Location,
			Attendees:   it.Attendees,
			AllDay:      it.AllDay,
			Category:    it.Category,
			ColorID:     it.ColorID,
		})
	}
	return events, nil
}
