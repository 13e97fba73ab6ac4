package model

import (
	"fmt"
	"strings"
	"time"
)

// Default event lengths used when the model omits an end time.
const (
	DefaultTimedDuration  = time.Hour
	DefaultAllDayDuration = 24 * time.Hour
)

// CalendarEvent is a single calendar entry produced by extraction.
type CalendarEvent struct {
	Title       string
	Start       time.Time
	End         time.Time
	Timezone    string
	Description string
	Location    string
	Attendees   []string
	AllDay      bool
	Category    string
	// ColorID is "" or one of "1".."11".
	ColorID string
}

// Loc returns the event's timezone, or UTC when it cannot be loaded.
func (e CalendarEvent) Loc() *time.Location {
	if e.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DefaultEnd returns the end implied by start for an event of this kind.
func DefaultEnd(start time.Time, allDay bool) time.Time {
	if allDay {
		return start.Add(DefaultAllDayDuration)
	}
	return start.Add(DefaultTimedDuration)
}

// HumanReadable renders the event for chat replies.
func (e CalendarEvent) HumanReadable() string {
	loc := e.Loc()
	var when string
	if e.AllDay {
		start := e.Start.In(loc).Format("2006-01-02")
		end := e.End.In(loc).Add(-time.Second).Format("2006-01-02")
		if start == end {
			when = start + " (all day)"
		} else {
			when = fmt.Sprintf("%s → %s (all day)", start, end)
		}
	} else {
		when = fmt.Sprintf("%s → %s", e.Start.In(loc).Format("2006-01-02 15:04"), e.End.In(loc).Format("15:04"))
	}

	var b strings.Builder
	b.WriteString(e.Title)
	b.WriteString(" | ")
	b.WriteString(when)
	if e.Location != "" {
		b.WriteString(" @ ")
		b.WriteString(e.Location)
	}
	if e.Category != "" {
		b.WriteString(" [")
		b.WriteString(e.Category)
		b.WriteString("]")
	}
	return b.String()
}
