package app

import (
	"context"
	"errors"
	"fmt"

	"smart-assistant/config"
	"smart-assistant/internal/assistant"
	"smart-assistant/internal/assistant/repository"
	caldavRepo "smart-assistant/internal/assistant/repository/caldav"
	googleRepo "smart-assistant/internal/assistant/repository/google"
	assistantUC "smart-assistant/internal/assistant/usecase"
	"smart-assistant/internal/audit"
	"smart-assistant/internal/extraction"
	extractionUC "smart-assistant/internal/extraction/usecase"
	"smart-assistant/internal/tasklist"
	"smart-assistant/internal/usage"
	"smart-assistant/pkg/caldav"
	"smart-assistant/pkg/gcalendar"
	"smart-assistant/pkg/googleauth"
	"smart-assistant/pkg/gtasks"
	"smart-assistant/pkg/llmprovider"
	"smart-assistant/pkg/log"
)

// Calendar backends.
const (
	BackendGoogle = "google"
	BackendCalDAV = "caldav"
)

// App is every long-lived component built from one configuration.
// Optional backends are nil when they are not configured or failed to start.
type App struct {
	Config *config.Config
	Logger log.Logger

	LLM       *llmprovider.Manager
	Usage     usage.Recorder
	Audit     audit.Logger
	Extractor extraction.UseCase

	Calendar repository.CalendarRepository
	Tasks    repository.TaskRepository
	// Lists provisions Google Tasks lists. Nil for CalDAV tasks.
	Lists       *tasklist.Provisioner
	ListBackend tasklist.Backend

	Assistant assistant.UseCase
}

// Build wires the application. Only the LLM layer is mandatory; a missing
// calendar or task backend is logged and the assistant degrades.
func Build(ctx context.Context, cfg *config.Config, l log.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: l}

	if err := a.buildLLM(ctx); err != nil {
		return nil, err
	}
	a.buildRecorders(ctx)
	a.Extractor = extractionUC.New(l, a.LLM, a.Usage, a.Audit, extraction.Options{
		DefaultTimezone: cfg.Assistant.DefaultTimezone,
		EventCategories: cfg.Assistant.EventCategories,
		TaskPresetLists: cfg.Assistant.TaskPresetLists,
	})

	switch cfg.Calendar.Backend {
	case BackendCalDAV:
		a.buildCalDAV(ctx)
	case BackendGoogle, "":
		a.buildGoogle(ctx)
	default:
		return nil, fmt.Errorf("unknown calendar backend %q", cfg.Calendar.Backend)
	}
	if a.Tasks == nil && cfg.CalDAV.TaskPath != "" && cfg.Calendar.Backend != BackendCalDAV {
		a.buildCalDAVTasks(ctx)
	}

	var lists interface {
		ResolveOrCreate(ctx context.Context, name string) string
	}
	if a.Lists != nil {
		lists = a.Lists
	}
	a.Assistant = assistantUC.New(l, a.Extractor, a.Calendar, a.Tasks, lists, a.Audit, assistant.Options{
		DefaultTimezone: cfg.Assistant.DefaultTimezone,
		CategoryColors:  cfg.Assistant.CategoryColors,
		DefaultColorID:  cfg.Assistant.DefaultColorID,
	})
	return a, nil
}

func (a *App) buildLLM(ctx context.Context) error {
	providers, initErrs, err := llmprovider.InitializeProviders(&a.Config.LLM)
	if err != nil {
		return fmt.Errorf("llm providers: %w", err)
	}
	for _, e := range initErrs {
		a.Logger.Warnf(ctx, "LLM provider skipped: %v", e)
	}

	mgrCfg, err := llmprovider.ManagerConfig(a.Config.LLM)
	if err != nil {
		return fmt.Errorf("llm manager: %w", err)
	}
	a.LLM = llmprovider.NewManager(providers, mgrCfg, a.Logger)

	for _, p := range providers {
		a.Logger.Infof(ctx, "✅ LLM provider %s (%s)", p.Name(), p.Model())
	}
	return nil
}

func (a *App) buildRecorders(ctx context.Context) {
	a.Usage = usage.New(a.Logger, a.Config.Assistant.UsagePath)

	auditLog, err := audit.New(a.Logger, audit.Config{
		Dir:           a.Config.Assistant.AuditDir,
		RetentionDays: a.Config.Assistant.AuditRetentionDays,
	})
	if err != nil {
		a.Logger.Warnf(ctx, "Audit log disabled: %v", err)
		auditLog = audit.NewNop()
	}
	a.Audit = auditLog
}

func (a *App) buildGoogle(ctx context.Context) {
	g := a.Config.Google
	ts, err := googleauth.TokenSourceFromFiles(ctx, googleauth.Config{
		CredentialsPath: g.CredentialsPath,
		TokenPath:       g.TokenPath,
	})
	if err != nil {
		a.Logger.Warnf(ctx, "Google Calendar and Tasks not available: %v", err)
		a.Logger.Warn(ctx, "→ Run `go run ./cmd/assistantctl google-auth` to generate token.json")
		return
	}

	calClient, err := gcalendar.NewClientFromTokenSource(ctx, ts)
	if err != nil {
		a.Logger.Warnf(ctx, "Google Calendar not available: %v", err)
	} else {
		a.Calendar = googleRepo.NewCalendar(a.Logger, calClient, g.CalendarID)
		a.Logger.Infof(ctx, "✅ Google Calendar initialized (calendar=%s)", g.CalendarID)
	}

	tasksClient, err := gtasks.NewClientFromTokenSource(ctx, ts)
	if err != nil {
		a.Logger.Warnf(ctx, "Google Tasks not available: %v", err)
		return
	}
	taskRepo := googleRepo.NewTasks(a.Logger, tasksClient)
	a.Tasks = taskRepo
	a.ListBackend = taskRepo
	a.Lists = tasklist.NewProvisioner(a.Logger, taskRepo, tasklist.Config{
		Presets:        a.Config.Assistant.TaskPresetLists,
		MaxLists:       a.Config.Assistant.MaxLists,
		FallbackListID: g.TaskListID,
	})
	a.Logger.Info(ctx, "✅ Google Tasks initialized")
}

func (a *App) caldavClient() (*caldav.Client, error) {
	c := a.Config.CalDAV
	return caldav.New(caldav.Config{
		URL:          c.URL,
		CalendarPath: c.CalendarPath,
		TaskPath:     c.TaskPath,
		Username:     c.Username,
		Password:     c.Password,
	})
}

func (a *App) buildCalDAV(ctx context.Context) {
	client, err := a.caldavClient()
	if err != nil {
		a.Logger.Warnf(ctx, "CalDAV not available: %v", err)
		return
	}
	a.Calendar = caldavRepo.NewCalendar(a.Logger, client)
	a.Logger.Infof(ctx, "✅ CalDAV calendar initialized (%s%s)", a.Config.CalDAV.URL, a.Config.CalDAV.CalendarPath)

	if a.Config.CalDAV.TaskPath != "" {
		a.Tasks = caldavRepo.NewTasks(a.Logger, client)
		a.Logger.Infof(ctx, "✅ CalDAV tasks initialized (%s)", a.Config.CalDAV.TaskPath)
	}
}

func (a *App) buildCalDAVTasks(ctx context.Context) {
	client, err := a.caldavClient()
	if err != nil {
		a.Logger.Warnf(ctx, "CalDAV tasks not available: %v", err)
		return
	}
	a.Tasks = caldavRepo.NewTasks(a.Logger, client)
	a.Logger.Infof(ctx, "✅ CalDAV tasks initialized (%s)", a.Config.CalDAV.TaskPath)
}

// ErrNoTaskLists is returned by EnsurePresets when lists are not managed remotely.
var ErrNoTaskLists = errors.New("task lists are not provisioned for this backend")

// EnsurePresets creates the configured preset lists on the task backend.
func (a *App) EnsurePresets(ctx context.Context) error {
	if a.Lists == nil {
		return ErrNoTaskLists
	}
	return a.Lists.EnsurePresets(ctx)
}
