package audit

import "time"

// Log types, one file per type per day.
const (
	TypeInteractions = "interactions"
	TypeErrors       = "errors"
	TypeEvents       = "events"
	TypeAPIUsage     = "api_usage"
)

const (
	fileDateLayout  = "2006-01-02"
	fileExt         = ".jsonl"
	maxInputLen     = 1000
	maxOutputLen    = 2000
	redactedValue   = "***REDACTED***"
	defaultRetDays  = 7
	defaultQueryMax = 100
)

var sensitiveKeys = []string{"api_key", "token", "password", "secret", "credentials"}

// Interaction is one user request and the reply it produced.
type Interaction struct {
	UserID   string
	Username string
	Source   string
	Input    string
	Output   string
	Success  bool
	Metadata map[string]any
}

// ErrorRecord describes a failure worth keeping.
type ErrorRecord struct {
	ErrorType string
	Message   string
	UserID    string
	Username  string
	Context   map[string]any
}

// Entry is one JSONL line.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`

	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Source   string `json:"source,omitempty"`
	Input    string `json:"input,omitempty"`
	Output   string `json:"output,omitempty"`
	Success  *bool  `json:"success,omitempty"`

	ErrorType    string `json:"error_type,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`

	EventType   string `json:"event_type,omitempty"`
	Description string `json:"description,omitempty"`

	Model            string `json:"model,omitempty"`
	PromptTokens     int    `json:"prompt_tokens,omitempty"`
	CompletionTokens int    `json:"completion_tokens,omitempty"`
	TotalTokens      int    `json:"total_tokens,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

// Config configures the file logger.
type Config struct {
	Dir           string
	RetentionDays int
	// Now is overridable for tests.
	Now func() time.Time
}
