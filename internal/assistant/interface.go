package assistant

import (
	"context"

	"smart-assistant/internal/model"
)

// UseCase turns user input into calendar events and tasks on the configured backends.
// Process* methods never fail: extraction and sync problems are reported in the result.
type UseCase interface {
	// ProcessText extracts items from a chat message and persists them.
	ProcessText(ctx context.Context, sc model.Scope, input ProcessTextInput) model.AssistantResult

	// ProcessImage extracts items from a local image file and persists them.
	ProcessImage(ctx context.Context, sc model.Scope, input ProcessImageInput) model.AssistantResult

	// ProcessEmail extracts items from an e-mail and persists them.
	ProcessEmail(ctx context.Context, sc model.Scope, input ProcessEmailInput) model.AssistantResult

	// PreviewText runs extraction, coloring and list reconciliation without writing anything.
	PreviewText(ctx context.Context, sc model.Scope, input ProcessTextInput) (model.ParsedItems, error)

	// ListToday returns the calendar events of the current local day.
	ListToday(ctx context.Context, sc model.Scope) (TodayOutput, error)
}
