package audit

import (
	"context"
	"time"
)

type nopLogger struct{}

// NewNop returns a Logger that discards everything.
func NewNop() Logger { return nopLogger{} }

func (nopLogger) LogInteraction(context.Context, Interaction)                      {}
func (nopLogger) LogError(context.Context, ErrorRecord)                            {}
func (nopLogger) LogSystemEvent(context.Context, string, string, map[string]any) {}
func (nopLogger) LogAPIUsage(context.Context, string, int, int, int)              {}
func (nopLogger) Query(context.Context, string, time.Time, time.Time, int) ([]Entry, error) {
	return nil, nil
}
func (nopLogger) Cleanup(context.Context) (int, error) { return 0, nil }
