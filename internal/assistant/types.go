package assistant

import (
	"time"

	"smart-assistant/internal/extraction"
	"smart-assistant/internal/model"
)

// ProcessTextInput is a free-form chat message.
type ProcessTextInput struct {
	Text     string
	Metadata extraction.Metadata
}

// ProcessImageInput points to a downloaded photo or screenshot.
type ProcessImageInput struct {
	Path     string
	Caption  string
	Metadata extraction.Metadata
}

// ProcessEmailInput is a decoded e-mail.
type ProcessEmailInput struct {
	Subject string
	Body    string
	From    string
	To      string
	Date    time.Time
}

// TodayOutput lists the events of one local day.
type TodayOutput struct {
	Date   string
	Events []model.CalendarEvent
}

// Options configures the assistant usecase.
type Options struct {
	DefaultTimezone string
	// CategoryColors maps a lower-cased category to a color id. Merged over the palette defaults.
	CategoryColors map[string]string
	// DefaultColorID is used when neither the event nor its category picks a color.
	DefaultColorID string
	// Now is overridable for tests.
	Now func() time.Time
}
