package usecase

import (
	"fmt"
	"strings"
)

const (
	msgEmptyInput   = "Nothing to process: the message is empty."
	msgParseFailed  = "Could not understand the message: %v"
	msgImageFailed  = "Could not read the image: %v"
	msgNothingToAdd = "No events or tasks found to add to the calendar or task list."
	msgAllFailed    = "Sync failed: none of the events or tasks could be created."
)

// createdSummary renders e.g. "Created: 2 events, 1 task (1 more event failed)".
func createdSummary(events, tasks, eventFailures, taskFailures int) string {
	var parts []string
	if events > 0 {
		parts = append(parts, plural(events, "event", "events"))
	}
	if tasks > 0 {
		parts = append(parts, plural(tasks, "task", "tasks"))
	}

	var b strings.Builder
	b.WriteString("Created: ")
	b.WriteString(strings.Join(parts, ", "))
	if eventFailures > 0 {
		fmt.Fprintf(&b, " (%d more %s failed)", eventFailures, word(eventFailures, "event", "events"))
	}
	if taskFailures > 0 {
		fmt.Fprintf(&b, " (%d more %s failed)", taskFailures, word(taskFailures, "task", "tasks"))
	}
	return b.String()
}

// ignoredTasksNote renders e.g. " (2 tasks ignored: no task backend)", or "" when n is 0.
func ignoredTasksNote(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf(" (%d %s ignored: no task backend)", n, word(n, "task", "tasks"))
}

// emailSummary renders e.g. "Added from e-mail: 1 event, 2 tasks."
func emailSummary(events, tasks int) string {
	var parts []string
	if events > 0 {
		parts = append(parts, plural(events, "calendar event", "calendar events"))
	}
	if tasks > 0 {
		parts = append(parts, plural(tasks, "task", "tasks"))
	}
	summary := "0 items"
	if len(parts) > 0 {
		summary = strings.Join(parts, ", ")
	}
	return "Added from e-mail: " + summary + "."
}

func plural(n int, one, many string) string {
	return fmt.Sprintf("%d %s", n, word(n, one, many))
}

func word(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
