package audit

import (
	"context"
	"time"
)

// Logger writes an append-only audit trail of interactions and system events.
// Write methods are best-effort: failures are logged, never returned.
type Logger interface {
	LogInteraction(ctx context.Context, in Interaction)
	LogError(ctx context.Context, in ErrorRecord)
	LogSystemEvent(ctx context.Context, eventType, description string, metadata map[string]any)
	LogAPIUsage(ctx context.Context, model string, promptTokens, completionTokens, totalTokens int)

	// Query returns up to limit entries of logType with from <= timestamp <= to.
	Query(ctx context.Context, logType string, from, to time.Time, limit int) ([]Entry, error)

	// Cleanup deletes files older than the retention window and returns how many were removed.
	Cleanup(ctx context.Context) (int, error)
}
