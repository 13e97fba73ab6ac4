package usecase

import (
	"fmt"
	"sort"
	"strings"

	"smart-assistant/internal/extraction"
)

const defaultImageHint = "Find any schedule or to-do information in this image."

const systemPromptTemplate = `You are a meticulous executive assistant. Extract calendar events and to-do tasks from the user's input.
Always respond with valid JSON only. Return {"events": [...]} where every item uses this schema:
{
  "has_entry": bool,
  "entry_type": "event" | "task",
  "title": string,
  "start": ISO 8601 datetime (YYYY-MM-DDTHH:MM, include the offset if known),
  "end": ISO 8601 datetime,
  "timezone": IANA timezone string,
  "location": string,
  "description": string,
  "attendees": list of email strings,
  "all_day": bool,
  "category": string (lowercase classification such as %s),
  "color": string (only when the user explicitly asks for a color, e.g. "red", "blue"),
  "due": ISO 8601 date or datetime for tasks, or words like "tomorrow",
  "task_notes": string,
  "task_list": string
}
Use entry_type "task" for things to do without a fixed time slot, and "event" for anything scheduled.
If nothing can be added, return {"events": [{"has_entry": false}]}.
Infer a missing timezone from context; default to %s.
Always try to set category; use "other" only when unsure. Keep titles short but specific.%s
Never fabricate URLs, meeting links, QR codes or map locations; include them only when the user shares them.`

const mapTaskPromptTemplate = `Choose the single best list for this to-do item.
Allowed lists: %s
Respond with JSON only: {"category": "<one allowed list>", "task_list": "<one allowed list>"}.
Never invent a list that is not in the allowed set.`

var defaultCategoryHints = []string{"work", "meeting", "personal", "travel", "study", "finance", "family", "health", "reminder", "other"}

func (uc *implUseCase) systemPrompt() string {
	categories := defaultCategoryHints
	if len(uc.allowed) > 0 {
		categories = uc.allowed
	}

	var extra string
	if len(uc.presets) > 0 {
		extra = fmt.Sprintf("\nFor tasks, task_list must be one of: %s.", strings.Join(uc.presets, ", "))
	}

	return fmt.Sprintf(systemPromptTemplate, strings.Join(categories, ", "), uc.opts.DefaultTimezone, extra)
}

// userPrompt appends the request metadata as "key: value" lines in key order.
func userPrompt(text string, meta extraction.Metadata) string {
	parts := []string{strings.TrimSpace(text)}

	keys := make([]string, 0, len(meta))
	for k, v := range meta {
		if strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, k+": "+meta[k])
		}
		parts = append(parts, "Context:\n"+strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

func mapTaskPrompt(presets []string, in extraction.MapTaskInput) (system, user string) {
	system = fmt.Sprintf(mapTaskPromptTemplate, strings.Join(presets, ", "))
	user = "Title: " + strings.TrimSpace(in.Title)
	if notes := strings.TrimSpace(in.Notes); notes != "" {
		user += "\nNotes: " + notes
	}
	return system, user
}
