package model

// ParsedItems is the outcome of one extraction call.
type ParsedItems struct {
	Events []CalendarEvent
	Tasks  []TaskItem
}

// Empty reports whether extraction produced nothing.
func (p ParsedItems) Empty() bool {
	return len(p.Events) == 0 && len(p.Tasks) == 0
}

// AssistantResult is what the persistence step reports back to the caller.
type AssistantResult struct {
	Success       bool
	Message       string
	Events        []CalendarEvent
	CalendarLinks []string
	Tasks         []TaskItem
	TaskLinks     []string
}
