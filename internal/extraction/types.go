package extraction

import "time"

// Metadata is the request context folded into the prompt
// (source, user identifiers, local and UTC time, e-mail headers).
type Metadata map[string]string

// Well-known metadata keys.
const (
	MetaSource           = "source"
	MetaTelegramUserID   = "telegram_user_id"
	MetaTelegramUsername = "telegram_username"
	MetaChatID           = "chat_id"
	MetaCurrentTimeLocal = "current_time_local"
	MetaCurrentTimeUTC   = "current_time_utc"
	MetaEmailSubject     = "email_subject"
	MetaFrom             = "from"
	MetaTo               = "to"
)

// ParseTextInput is the input for text extraction.
type ParseTextInput struct {
	Text     string
	Metadata Metadata
}

// ParseImageInput is the input for image extraction. Path points to a local file.
type ParseImageInput struct {
	Path     string
	Hint     string
	Metadata Metadata
}

// MapTaskInput asks the model to place a task in one of the preset lists.
type MapTaskInput struct {
	Title string
	Notes string
}

// MapTaskOutput is the preset chosen by the model. Empty fields mean no usable answer.
type MapTaskOutput struct {
	Category string
	ListName string
}

// Options configures the extraction usecase.
type Options struct {
	DefaultTimezone string
	// EventCategories clamps event categories when non-empty.
	EventCategories []string
	// TaskPresetLists is offered to the model as the list vocabulary.
	TaskPresetLists []string
	Temperature     float64
	MaxTokens       int
	// Now is overridable for tests.
	Now func() time.Time
}
