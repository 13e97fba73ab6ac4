package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"smart-assistant/internal/assistant"
	"smart-assistant/internal/assistant/repository"
	"smart-assistant/internal/model"
	"smart-assistant/pkg/datemath"
)

const (
	maxTodayEvents = 50
	dateLayout     = "2006-01-02"
)

// ListToday returns the events of the current day in the default timezone.
func (uc *implUseCase) ListToday(ctx context.Context, sc model.Scope) (assistant.TodayOutput, error) {
	if uc.calendar == nil {
		return assistant.TodayOutput{}, assistant.ErrNoCalendar
	}

	loc := datemath.LoadLocation(uc.timezone)
	now := uc.now().In(loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1)

	events, err := uc.calendar.ListEvents(ctx, repository.ListEventsOptions{
		From:     from,
		To:       to,
		Timezone: uc.timezone,
		Limit:    maxTodayEvents,
	})
	if err != nil {
		uc.l.Errorf(ctx, "ListToday: user=%s: %v", sc.UserID, err)
		return assistant.TodayOutput{}, fmt.Errorf("list today's events: %w", err)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})

	uc.l.Infof(ctx, "ListToday: user=%s date=%s events=%d", sc.UserID, from.Format(dateLayout), len(events))
	return assistant.TodayOutput{Date: from.Format(dateLayout), Events: events}, nil
}
