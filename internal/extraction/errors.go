package extraction

import (
	"errors"
	"fmt"
)

// Domain-specific errors for the extraction package.
var (
	ErrEmptyInput         = errors.New("input text is empty")
	ErrNoJSON             = errors.New("no valid JSON found in model output")
	ErrUnsupportedPayload = errors.New("model returned an unsupported payload shape")
	ErrMissingStart       = errors.New("model did not return a start time")
	ErrInvalidStart       = errors.New("model returned an unparseable start time")
	ErrImageNotFound      = errors.New("image file not found")
)

// Error is returned when model output cannot be turned into items.
// Raw holds the model text for diagnostics and is never shown to users.
type Error struct {
	Kind error
	Raw  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NewError wraps kind with the raw model output.
func NewError(kind error, raw string, err error) *Error {
	return &Error{Kind: kind, Raw: raw, Err: err}
}
