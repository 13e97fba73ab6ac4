package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"smart-assistant/config"
	"smart-assistant/pkg/log"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Assistant: config.AssistantConfig{
			DefaultTimezone: "UTC",
			UsagePath:       filepath.Join(dir, "usage.json"),
			AuditDir:        filepath.Join(dir, "audit"),
			MaxLists:        3,
		},
		Google: config.GoogleConfig{
			CredentialsPath: filepath.Join(dir, "missing-credentials.json"),
			TokenPath:       filepath.Join(dir, "token.json"),
			CalendarID:      "primary",
			TaskListID:      "@default",
		},
		LLM: config.LLMConfig{
			Providers: []config.ProviderConfig{
				{Name: "deepseek", Enabled: true, Priority: 1, APIKey: "k", Model: "deepseek-chat"},
				{Name: "mystery", Enabled: true, Priority: 2, APIKey: "k", Model: "m"},
			},
			RetryAttempts: 1,
			RetryDelay:    "10ms",
		},
	}
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	l := log.NewNop()

	t.Run("google without credentials degrades", func(t *testing.T) {
		a, err := Build(ctx, testConfig(t), l)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if a.Assistant == nil || a.Extractor == nil || a.Usage == nil || a.Audit == nil {
			t.Fatal("expected core components")
		}
		if len(a.LLM.Providers()) != 1 {
			t.Errorf("expected the unknown provider to be skipped, got %d", len(a.LLM.Providers()))
		}
		if a.Calendar != nil || a.Tasks != nil || a.Lists != nil {
			t.Error("expected no backends without credentials")
		}
		if err := a.EnsurePresets(ctx); !errors.Is(err, ErrNoTaskLists) {
			t.Errorf("expected ErrNoTaskLists, got %v", err)
		}
	})

	t.Run("caldav calendar and tasks", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Calendar.Backend = BackendCalDAV
		cfg.CalDAV = config.CalDAVConfig{
			URL:          "https://dav.example.com",
			CalendarPath: "/cal/home/",
			TaskPath:     "/cal/tasks/",
		}

		a, err := Build(ctx, cfg, l)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if a.Calendar == nil || a.Tasks == nil {
			t.Error("expected CalDAV calendar and tasks")
		}
		if a.Lists != nil {
			t.Error("CalDAV tasks must not use list provisioning")
		}
	})

	t.Run("caldav tasks next to google calendar", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.CalDAV = config.CalDAVConfig{URL: "https://dav.example.com", TaskPath: "/tasks/"}

		a, err := Build(ctx, cfg, l)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if a.Tasks == nil {
			t.Error("expected CalDAV tasks as fallback task backend")
		}
	})

	t.Run("caldav without url", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Calendar.Backend = BackendCalDAV

		a, err := Build(ctx, cfg, l)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if a.Calendar != nil {
			t.Error("expected no calendar")
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Calendar.Backend = "outlook"
		if _, err := Build(ctx, cfg, l); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("no usable provider", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.LLM.Providers = []config.ProviderConfig{{Name: "mystery", Enabled: true, Priority: 1, APIKey: "k", Model: "m"}}
		if _, err := Build(ctx, cfg, l); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("bad retry delay", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.LLM.RetryDelay = "soon"
		if _, err := Build(ctx, cfg, l); err == nil {
			t.Error("expected error")
		}
	})
}
