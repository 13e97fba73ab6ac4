package model

import (
	"strings"
	"time"
)

// TaskItem is a to-do produced by extraction.
type TaskItem struct {
	Title    string
	Due      *time.Time
	Timezone string
	Notes    string
	Category string
	// ListName is the task list the item should land in.
	ListName string
}

// NewTaskItem builds a TaskItem, defaulting the list name to the category.
func NewTaskItem(title string, due *time.Time, timezone, notes, category, listName string) TaskItem {
	category = strings.TrimSpace(category)
	listName = strings.TrimSpace(listName)
	if listName == "" {
		listName = category
	}
	return TaskItem{
		Title:    title,
		Due:      due,
		Timezone: timezone,
		Notes:    notes,
		Category: category,
		ListName: listName,
	}
}

// HumanReadable renders the task for chat replies.
func (t TaskItem) HumanReadable() string {
	var b strings.Builder
	b.WriteString(t.Title)
	if t.Due != nil {
		loc := CalendarEvent{Timezone: t.Timezone}.Loc()
		b.WriteString(" | due ")
		b.WriteString(t.Due.In(loc).Format("2006-01-02"))
	}
	if t.ListName != "" {
		b.WriteString(" [")
		b.WriteString(t.ListName)
		b.WriteString("]")
	}
	return b.String()
}
