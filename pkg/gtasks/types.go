package gtasks

import "time"

// DefaultListID is the API alias for the user's default task list.
const DefaultListID = "@default"

// TaskList is a Google Tasks list.
type TaskList struct {
	ID    string
	Title string
}

// InsertTaskRequest is the input for creating a task.
type InsertTaskRequest struct {
	ListID string
	Title  string
	Notes  string
	// Due is date-only on the Google side; the time of day is dropped.
	Due *time.Time
}

// Task is a simplified representation of a created task.
type Task struct {
	ID       string
	ListID   string
	Title    string
	Notes    string
	Due      *time.Time
	Status   string // "needsAction" or "completed"
	WebLink  string
	SelfLink string
}
