package usecase

import (
	"context"
	"strconv"
	"strings"

	"smart-assistant/internal/extraction"
	"smart-assistant/internal/model"
	"smart-assistant/pkg/datemath"
	"smart-assistant/pkg/palette"
)

const (
	untitledEvent = "Untitled Event"
	untitledTask  = "Untitled Task"
	kindEvent     = "event"
	kindTask      = "task"
)

// listKeys are wrapper keys whose arrays hold candidate items, with the kind
// assumed for items that do not declare one.
var listKeys = []struct {
	key  string
	kind string
}{
	{"events", kindEvent},
	{"items", kindEvent},
	{"entries", kindEvent},
	{"tasks", kindTask},
}

type candidate struct {
	fields      map[string]any
	defaultKind string
}

// candidates normalizes the accepted payload shapes into a flat list.
func candidates(payload any) ([]candidate, error) {
	switch v := payload.(type) {
	case nil:
		return nil, nil
	case []any:
		return wrap(v, kindEvent), nil
	case map[string]any:
		var out []candidate
		wrapped := false
		for _, lk := range listKeys {
			if list, ok := v[lk.key].([]any); ok {
				wrapped = true
				out = append(out, wrap(list, lk.kind)...)
			}
		}
		if wrapped {
			return out, nil
		}
		if len(v) == 0 {
			return nil, nil
		}
		return []candidate{{fields: v, defaultKind: kindEvent}}, nil
	default:
		return nil, extraction.ErrUnsupportedPayload
	}
}

func wrap(list []any, kind string) []candidate {
	out := make([]candidate, 0, len(list))
	for _, item := range list {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, candidate{fields: fields, defaultKind: kind})
	}
	return out
}

// toParsedItems converts a decoded payload into events and tasks.
// A missing or unparseable event start fails the whole call.
func (uc *implUseCase) toParsedItems(ctx context.Context, payload any, raw string) (model.ParsedItems, error) {
	cands, err := candidates(payload)
	if err != nil {
		return model.ParsedItems{}, extraction.NewError(err, raw, nil)
	}

	var items model.ParsedItems
	for _, c := range cands {
		if isFalse(c.fields["has_entry"]) || isFalse(c.fields["has_event"]) {
			continue
		}

		switch classify(c) {
		case kindTask:
			items.Tasks = append(items.Tasks, uc.toTask(c.fields))
		default:
			event, err := uc.toEvent(c.fields)
			if err != nil {
				uc.l.Warnf(ctx, "extraction: dropping call, bad event %q: %v", str(c.fields, "title"), err)
				return model.ParsedItems{}, extraction.NewError(err, raw, nil)
			}
			items.Events = append(items.Events, event)
		}
	}
	return items, nil
}

func classify(c candidate) string {
	switch strings.ToLower(str(c.fields, "entry_type", "type", "kind")) {
	case "task", "todo", "to-do", "to_do":
		return kindTask
	case "event", "calendar", "meeting":
		return kindEvent
	default:
		return c.defaultKind
	}
}

func (uc *implUseCase) toEvent(f map[string]any) (model.CalendarEvent, error) {
	title := str(f, "title", "summary")
	if title == "" {
		title = untitledEvent
	}
	tz := str(f, "timezone", "time_zone")
	if tz == "" {
		tz = uc.opts.DefaultTimezone
	}
	parser := datemath.MustParser(tz)

	startRaw := str(f, "start", "start_time")
	if startRaw == "" {
		return model.CalendarEvent{}, extraction.ErrMissingStart
	}
	start, err := parser.ParseAbsolute(startRaw)
	if err != nil {
		return model.CalendarEvent{}, extraction.ErrInvalidStart
	}

	allDay := boolean(f["all_day"])
	if _, declared := f["all_day"]; !declared && start.IsAllDay {
		allDay = true
	}

	end := model.DefaultEnd(start.AbsoluteTime, allDay)
	if endRaw := str(f, "end", "end_time"); endRaw != "" {
		if parsed, err := parser.ParseAbsolute(endRaw); err == nil && !parsed.AbsoluteTime.Before(start.AbsoluteTime) {
			end = parsed.AbsoluteTime
		}
	}

	category := strings.ToLower(str(f, "category", "classification"))
	if len(uc.allowed) > 0 {
		category = NormalizeCategory(category, uc.allowed)
	}

	return model.CalendarEvent{
		Title:       title,
		Start:       start.AbsoluteTime,
		End:         end,
		Timezone:    tz,
		Description: str(f, "description"),
		Location:    str(f, "location"),
		Attendees:   attendees(f["attendees"]),
		AllDay:      allDay,
		Category:    category,
		ColorID:     palette.Normalize(str(f, "color_id", "colorId", "color")),
	}, nil
}

func (uc *implUseCase) toTask(f map[string]any) model.TaskItem {
	title := str(f, "title")
	if title == "" {
		title = untitledTask
	}
	tz := str(f, "timezone", "time_zone")
	if tz == "" {
		tz = uc.opts.DefaultTimezone
	}
	parser := datemath.MustParser(tz)

	due := parser.ParseDue(str(f, "due", "due_date", "task_due"), uc.now().In(parser.Location()))
	notes := str(f, "task_notes", "notes", "description")
	category := strings.ToLower(str(f, "category", "classification"))
	listName := str(f, "task_list", "list_name", "list")

	if IsShopping(title, notes) {
		category = ShoppingCategory
		listName = ShoppingCategory
	}

	return model.NewTaskItem(title, due, tz, notes, category, listName)
}

// str returns the first non-empty value under keys, trimmed.
func str(f map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := f[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(v)
		}
	}
	return ""
}

func boolean(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "1":
			return true
		}
	case float64:
		return b != 0
	}
	return false
}

// isFalse reports an explicit false, not an absent flag.
func isFalse(v any) bool {
	switch b := v.(type) {
	case bool:
		return !b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "false")
	}
	return false
}

func attendees(v any) []string {
	var raw []string
	switch a := v.(type) {
	case string:
		raw = strings.Split(a, ",")
	case []any:
		for _, item := range a {
			switch x := item.(type) {
			case string:
				raw = append(raw, x)
			case map[string]any:
				if email, ok := x["email"].(string); ok {
					raw = append(raw, email)
				}
			}
		}
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
