package datemath

import (
	"errors"
	"time"
)

// ErrUnrecognized is returned when a value matches none of the supported formats.
var ErrUnrecognized = errors.New("datemath: unrecognized date expression")

// ParseResult holds the result of parsing a date or date-time string.
type ParseResult struct {
	AbsoluteTime time.Time
	// IsAllDay is set when the input carried a date but no time of day.
	IsAllDay bool
}

// Layouts accepted for absolute values without an explicit offset.
// They are interpreted in the parser's location.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
}

// Layouts that carry only a date.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"20060102",
}
