package extraction

import (
	"context"

	"smart-assistant/internal/model"
)

// UseCase turns free-form input into calendar events and tasks.
type UseCase interface {
	// ParseText extracts items from plain text (chat messages, e-mail bodies).
	ParseText(ctx context.Context, sc model.Scope, input ParseTextInput) (model.ParsedItems, error)

	// ParseImage extracts items from a photographed poster or screenshot.
	ParseImage(ctx context.Context, sc model.Scope, input ParseImageInput) (model.ParsedItems, error)

	// MapTaskToAllowed asks the model to pick one of the configured preset lists for a task.
	MapTaskToAllowed(ctx context.Context, sc model.Scope, input MapTaskInput) (MapTaskOutput, error)

	// TaskPresets returns the configured preset list names, lower-cased.
	TaskPresets() []string
}
