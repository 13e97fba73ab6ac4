package tasklist

import (
	"context"
	"strings"
)

// DefaultListID is the backend alias for the user's default list.
const DefaultListID = "@default"

// List is a remote task list.
type List struct {
	ID   string
	Name string
}

// Backend is the remote task-list service.
type Backend interface {
	ListLists(ctx context.Context) ([]List, error)
	CreateList(ctx context.Context, name string) (List, error)
}

// Scorer rates how close candidate is to target. Scores <= 0 mean no plausible match.
type Scorer interface {
	Score(candidate, target string) int
}

// Config configures a Provisioner.
type Config struct {
	// Presets are the canonical list names. When set, only presets are ever created.
	Presets []string
	// MaxLists caps the total number of remote lists. Values below 1 become 1.
	MaxLists int
	// FallbackListID is used when no list can be resolved. Empty or "@default"
	// means the first remote list.
	FallbackListID string
	// Scorer defaults to PrefixScorer.
	Scorer Scorer
}

// Normalize trims and lower-cases a list name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
