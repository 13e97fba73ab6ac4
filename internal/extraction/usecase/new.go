package usecase

import (
	"context"
	"strings"
	"time"

	"smart-assistant/internal/audit"
	"smart-assistant/internal/extraction"
	"smart-assistant/internal/usage"
	"smart-assistant/pkg/llmprovider"
	pkgLog "smart-assistant/pkg/log"
)

const (
	defaultTemperature = 0.2
	defaultMaxTokens   = 2048
	defaultTimezone    = "UTC"
)

// generator is satisfied by *llmprovider.Manager.
type generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

type implUseCase struct {
	l       pkgLog.Logger
	llm     generator
	usage   usage.Recorder
	audit   audit.Logger
	opts    extraction.Options
	allowed []string
	presets []string
	now     func() time.Time
}

// New creates a new extraction UseCase. usageRec and auditLog may be nil.
func New(
	l pkgLog.Logger,
	llm generator,
	usageRec usage.Recorder,
	auditLog audit.Logger,
	opts extraction.Options,
) *implUseCase {
	if opts.DefaultTimezone == "" {
		opts.DefaultTimezone = defaultTimezone
	}
	if opts.Temperature == 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if auditLog == nil {
		auditLog = audit.NewNop()
	}

	return &implUseCase{
		l:       l,
		llm:     llm,
		usage:   usageRec,
		audit:   auditLog,
		opts:    opts,
		allowed: normalizeList(opts.EventCategories),
		presets: normalizeList(opts.TaskPresetLists),
		now:     now,
	}
}

func (uc *implUseCase) TaskPresets() []string {
	out := make([]string, len(uc.presets))
	copy(out, uc.presets)
	return out
}

// normalizeList lower-cases, trims and de-duplicates names, keeping order.
func normalizeList(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
