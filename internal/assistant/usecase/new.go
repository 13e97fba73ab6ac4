package usecase

import (
	"context"
	"time"

	"smart-assistant/internal/assistant"
	"smart-assistant/internal/assistant/repository"
	"smart-assistant/internal/audit"
	"smart-assistant/internal/extraction"
	pkgLog "smart-assistant/pkg/log"
	"smart-assistant/pkg/palette"
)

const defaultTimezone = "UTC"

// listResolver is satisfied by *tasklist.Provisioner.
type listResolver interface {
	ResolveOrCreate(ctx context.Context, name string) string
}

type implUseCase struct {
	l         pkgLog.Logger
	extractor extraction.UseCase
	calendar  repository.CalendarRepository
	tasks     repository.TaskRepository
	lists     listResolver
	audit     audit.Logger

	timezone     string
	colors       map[string]string
	defaultColor string
	now          func() time.Time
}

// New creates a new assistant UseCase.
// tasks and lists may be nil: without tasks, extracted tasks are dropped with a
// warning; without lists, every task goes to the backend's default list.
func New(
	l pkgLog.Logger,
	extractor extraction.UseCase,
	calendar repository.CalendarRepository,
	tasks repository.TaskRepository,
	lists listResolver,
	auditLog audit.Logger,
	opts assistant.Options,
) *implUseCase {
	if opts.DefaultTimezone == "" {
		opts.DefaultTimezone = defaultTimezone
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if auditLog == nil {
		auditLog = audit.NewNop()
	}

	return &implUseCase{
		l:            l,
		extractor:    extractor,
		calendar:     calendar,
		tasks:        tasks,
		lists:        lists,
		audit:        auditLog,
		timezone:     opts.DefaultTimezone,
		colors:       palette.MergeCategoryColors(opts.CategoryColors),
		defaultColor: palette.Normalize(opts.DefaultColorID),
		now:          now,
	}
}
