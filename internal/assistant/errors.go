package assistant

import (
	"errors"
	"fmt"
)

var (
	ErrCalendarSync = errors.New("calendar sync failed")
	ErrTaskSync     = errors.New("task sync failed")
	ErrNoCalendar   = errors.New("no calendar backend configured")
	ErrEmptyInput   = errors.New("empty input")
)

// SyncError is a single item that could not be written to a backend.
// Kind is ErrCalendarSync or ErrTaskSync.
type SyncError struct {
	Kind  error
	Title string
	Err   error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%v: %q: %v", e.Kind, e.Title, e.Err)
}

func (e *SyncError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
