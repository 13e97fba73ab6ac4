package caldav

import (
	"fmt"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

const (
	productID         = "-//smart-assistant//caldav//EN"
	icsDateLayout     = "20060102"
	maxOccurrences    = 500
	defaultTimedEvent = time.Hour
	defaultAllDay     = 24 * time.Hour
)

// cssColors maps calendar color ids to CSS3 names for the COLOR property.
var cssColors = map[string]string{
	"1":  "lavender",
	"2":  "darkseagreen",
	"3":  "mediumpurple",
	"4":  "lightcoral",
	"5":  "gold",
	"6":  "orange",
	"7":  "darkturquoise",
	"8":  "gray",
	"9":  "royalblue",
	"10": "green",
	"11": "tomato",
}

func encodeEvent(ev Event, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)

	vevent := cal.AddEvent(ev.UID)
	vevent.SetDtStampTime(now)
	vevent.SetSummary(ev.Summary)
	if ev.Description != "" {
		vevent.SetDescription(ev.Description)
	}
	if ev.Location != "" {
		vevent.SetLocation(ev.Location)
	}
	if ev.AllDay {
		vevent.SetAllDayStartAt(ev.Start)
		vevent.SetAllDayEndAt(ev.End)
	} else {
		vevent.SetStartAt(ev.Start)
		vevent.SetEndAt(ev.End)
	}
	for _, a := range ev.Attendees {
		vevent.AddAttendee(a)
	}
	if ev.Category != "" {
		vevent.SetProperty(ical.ComponentPropertyCategories, ev.Category)
	}
	if name, ok := cssColors[ev.ColorID]; ok {
		vevent.SetColor(name)
	}
	return cal.Serialize()
}

func encodeTodo(todo Todo, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)

	vtodo := cal.AddTodo(todo.UID)
	vtodo.SetDtStampTime(now)
	vtodo.SetSummary(todo.Summary)
	vtodo.SetStatus(ical.ObjectStatusNeedsAction)
	if todo.Description != "" {
		vtodo.SetDescription(todo.Description)
	}
	if todo.Due != nil {
		vtodo.SetAllDayDueAt(*todo.Due)
	}
	if todo.Category != "" {
		vtodo.SetProperty(ical.ComponentPropertyCategories, todo.Category)
	}
	return cal.Serialize()
}

// decodeEvents parses calendar data and returns the occurrences overlapping [from, to).
// Floating and date-only values are read in loc.
func decodeEvents(data string, from, to time.Time, loc *time.Location) ([]Event, error) {
	cal, err := ical.ParseCalendar(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar data: %w", err)
	}

	var out []Event
	for _, vevent := range cal.Events() {
		base, err := decodeVEvent(vevent, loc)
		if err != nil {
			continue
		}

		rule := vevent.GetProperty(ical.ComponentPropertyRrule)
		if rule == nil || rule.Value == "" {
			if overlaps(base.Start, base.End, from, to) {
				out = append(out, base)
			}
			continue
		}

		occurrences, err := expand(base, rule.Value, exdates(vevent, loc), from, to)
		if err != nil {
			// Keep the master instance rather than dropping the event.
			if overlaps(base.Start, base.End, from, to) {
				out = append(out, base)
			}
			continue
		}
		out = append(out, occurrences...)
	}

	sortByStart(out)
	return out, nil
}

func sortByStart(events []Event) {
	sort.SliceStable(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
}

func decodeVEvent(vevent *ical.VEvent, loc *time.Location) (Event, error) {
	ev := Event{}
	if p := vevent.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		ev.UID = p.Value
	}
	if p := vevent.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Summary = p.Value
	}
	if p := vevent.GetProperty(ical.ComponentPropertyDescription); p != nil {
		ev.Description = p.Value
	}
	if p := vevent.GetProperty(ical.ComponentPropertyLocation); p != nil {
		ev.Location = p.Value
	}
	if p := vevent.GetProperty(ical.ComponentPropertyCategories); p != nil {
		ev.Category = strings.ToLower(strings.TrimSpace(strings.Split(p.Value, ",")[0]))
	}
	if p := vevent.GetProperty(ical.ComponentPropertyColor); p != nil {
		for id, name := range cssColors {
			if strings.EqualFold(name, p.Value) {
				ev.ColorID = id
				break
			}
		}
	}
	for _, p := range vevent.GetProperties(ical.ComponentPropertyAttendee) {
		ev.Attendees = append(ev.Attendees, strings.TrimPrefix(strings.TrimPrefix(p.Value, "mailto:"), "MAILTO:"))
	}

	dtStart := vevent.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return ev, fmt.Errorf("event %q has no DTSTART", ev.UID)
	}
	ev.AllDay = isDateValue(dtStart)

	if ev.AllDay {
		start, err := time.ParseInLocation(icsDateLayout, dtStart.Value, loc)
		if err != nil {
			return ev, fmt.Errorf("event %q: invalid DTSTART: %w", ev.UID, err)
		}
		ev.Start = start
		ev.End = start.Add(defaultAllDay)
		if dtEnd := vevent.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
			if end, err := time.ParseInLocation(icsDateLayout, dtEnd.Value, loc); err == nil && end.After(start) {
				ev.End = end
			}
		}
		return ev, nil
	}

	start, err := vevent.GetStartAt()
	if err != nil {
		return ev, fmt.Errorf("event %q: invalid DTSTART: %w", ev.UID, err)
	}
	ev.Start = start
	ev.End = start.Add(defaultTimedEvent)
	if end, err := vevent.GetEndAt(); err == nil && end.After(start) {
		ev.End = end
	}
	return ev, nil
}

func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func exdates(vevent *ical.VEvent, loc *time.Location) []time.Time {
	var out []time.Time
	for _, p := range vevent.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if t, err := parseICSTime(part, loc); err == nil {
				out = append(out, t)
			}
		}
	}
	return out
}

func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	switch {
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation(icsDateLayout, v, loc)
	}
}

func expand(base Event, rawRule string, excluded []time.Time, from, to time.Time) ([]Event, error) {
	r, err := rrule.StrToRRule(rawRule)
	if err != nil {
		return nil, fmt.Errorf("invalid RRULE %q: %w", rawRule, err)
	}
	r.DTStart(base.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range excluded {
		set.ExDate(ex.In(base.Start.Location()))
	}

	duration := base.End.Sub(base.Start)
	// Widen the window so occurrences that started before from but still run are kept.
	starts := set.Between(from.Add(-duration), to, true)
	if len(starts) > maxOccurrences {
		starts = starts[:maxOccurrences]
	}

	out := make([]Event, 0, len(starts))
	for _, s := range starts {
		occ := base
		occ.Start = s
		occ.End = s.Add(duration)
		if overlaps(occ.Start, occ.End, from, to) {
			out = append(out, occ)
		}
	}
	return out, nil
}

func overlaps(start, end, from, to time.Time) bool {
	return start.Before(to) && end.After(from)
}
