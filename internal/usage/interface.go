package usage

import "context"

// Recorder accumulates token usage per model name.
type Recorder interface {
	// Record adds t to the counters of model and persists the file.
	Record(ctx context.Context, model string, t Tokens) error

	// Snapshot returns a copy of all counters.
	Snapshot() map[string]Tokens

	// SummaryLines renders one line per model, sorted by model name.
	SummaryLines() []string
}
