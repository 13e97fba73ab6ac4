package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"smart-assistant/internal/extraction"
	"smart-assistant/internal/model"
)

func TestParseText(t *testing.T) {
	gen := &mockGenerator{text: "```json\n{\"events\":[{\"title\":\"Dentist\",\"start\":\"2025-03-04T15:00:00\"}]}\n```"}
	uc := newTestUseCase(gen, extraction.Options{DefaultTimezone: "UTC", TaskPresetLists: []string{"Work", "Shopping"}})
	sc := model.NewScope(model.SourceTelegram, "42", "alice")

	items, err := uc.ParseText(context.Background(), sc, extraction.ParseTextInput{
		Text: "dentist tuesday 3pm",
		Metadata: extraction.Metadata{
			extraction.MetaSource:           "telegram",
			extraction.MetaCurrentTimeLocal: "2025-03-01T08:00:00Z",
			extraction.MetaTelegramUsername: "",
		},
	})
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}
	if len(items.Events) != 1 || items.Events[0].Title != "Dentist" {
		t.Fatalf("unexpected items: %+v", items)
	}

	if len(gen.requests) != 1 {
		t.Fatalf("expected 1 LLM request, got %d", len(gen.requests))
	}
	req := gen.requests[0]
	if !req.JSONMode || req.SystemInstruction == nil {
		t.Errorf("expected JSON mode and a system instruction")
	}
	if !strings.Contains(req.SystemInstruction.Parts[0].Text, "work, shopping") {
		t.Errorf("system prompt should list presets, got %q", req.SystemInstruction.Parts[0].Text)
	}
	user := req.Messages[0].Parts[0].Text
	wantUser := "dentist tuesday 3pm\n\nContext:\ncurrent_time_local: 2025-03-01T08:00:00Z\nsource: telegram"
	if user != wantUser {
		t.Errorf("user prompt = %q, want %q", user, wantUser)
	}

	rec := uc.usage.(*mockUsage).records["mock-model"]
	if rec.TotalTokens != 20 || rec.PromptTokens != 12 {
		t.Errorf("usage not recorded: %+v", rec)
	}
}

func TestParseText_Errors(t *testing.T) {
	sc := model.NewScope(model.SourceHTTP, "1", "")

	t.Run("empty input", func(t *testing.T) {
		uc := newTestUseCase(&mockGenerator{}, extraction.Options{})
		if _, err := uc.ParseText(context.Background(), sc, extraction.ParseTextInput{Text: "  "}); !errors.Is(err, extraction.ErrEmptyInput) {
			t.Errorf("expected ErrEmptyInput, got %v", err)
		}
	})

	t.Run("llm failure", func(t *testing.T) {
		uc := newTestUseCase(&mockGenerator{err: errors.New("boom")}, extraction.Options{})
		if _, err := uc.ParseText(context.Background(), sc, extraction.ParseTextInput{Text: "x"}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("prose reply", func(t *testing.T) {
		uc := newTestUseCase(&mockGenerator{text: "Sorry, nothing here."}, extraction.Options{})
		_, err := uc.ParseText(context.Background(), sc, extraction.ParseTextInput{Text: "x"})
		var extErr *extraction.Error
		if !errors.As(err, &extErr) || !errors.Is(err, extraction.ErrNoJSON) {
			t.Errorf("expected extraction error, got %v", err)
		}
	})
}

func TestParseImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "poster.JPG")
	if err := os.WriteFile(path, []byte{0xff, 0xd8, 0xff}, 0o644); err != nil {
		t.Fatal(err)
	}

	gen := &mockGenerator{text: `[{"entry_type":"task","title":"Register for marathon"}]`}
	uc := newTestUseCase(gen, extraction.Options{})
	sc := model.NewScope(model.SourceTelegram, "42", "alice")

	items, err := uc.ParseImage(context.Background(), sc, extraction.ParseImageInput{Path: path})
	if err != nil {
		t.Fatalf("ParseImage() error = %v", err)
	}
	if len(items.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %+v", items)
	}

	parts := gen.requests[0].Messages[0].Parts
	if len(parts) != 2 || parts[1].Image == nil {
		t.Fatalf("expected text and image parts, got %+v", parts)
	}
	if parts[1].Image.MimeType != "image/jpeg" || len(parts[1].Image.Data) != 3 {
		t.Errorf("unexpected image part: %+v", parts[1].Image)
	}
	if parts[0].Text != defaultImageHint {
		t.Errorf("expected default hint, got %q", parts[0].Text)
	}
}

func TestParseImage_Missing(t *testing.T) {
	uc := newTestUseCase(&mockGenerator{}, extraction.Options{})
	_, err := uc.ParseImage(context.Background(), model.Scope{}, extraction.ParseImageInput{Path: filepath.Join(t.TempDir(), "nope.png")})
	if !errors.Is(err, extraction.ErrImageNotFound) {
		t.Errorf("expected ErrImageNotFound, got %v", err)
	}
}

func TestImageMimeType(t *testing.T) {
	tests := map[string]string{
		"a.png":  "image/png",
		"a.jpeg": "image/jpeg",
		"a.webp": "image/webp",
		"a.bin":  "image/png",
	}
	for in, want := range tests {
		if got := ImageMimeType(in); got != want {
			t.Errorf("ImageMimeType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMapTaskToAllowed(t *testing.T) {
	presets := []string{"Work", "Personal", "Shopping"}

	tests := []struct {
		name      string
		reply     string
		wantCat   string
		wantList  string
		noPresets bool
	}{
		{name: "json reply", reply: `{"category":"Personal","task_list":"personal"}`, wantCat: "personal", wantList: "personal"},
		{name: "category only", reply: `{"category":"work"}`, wantCat: "work", wantList: "work"},
		{name: "plain word", reply: `"Shopping"`, wantCat: "shopping", wantList: "shopping"},
		{name: "bare text", reply: `shopping`, wantCat: "shopping", wantList: "shopping"},
		{name: "not a preset", reply: `{"category":"errands","task_list":"errands"}`},
		{name: "no presets configured", reply: `{"category":"work"}`, noPresets: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := extraction.Options{TaskPresetLists: presets}
			if tt.noPresets {
				opts.TaskPresetLists = nil
			}
			gen := &mockGenerator{text: tt.reply}
			uc := newTestUseCase(gen, opts)

			out, err := uc.MapTaskToAllowed(context.Background(), model.Scope{}, extraction.MapTaskInput{Title: "pay rent"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Category != tt.wantCat || out.ListName != tt.wantList {
				t.Errorf("got %+v, want category=%q list=%q", out, tt.wantCat, tt.wantList)
			}
			if tt.noPresets && len(gen.requests) != 0 {
				t.Error("model must not be called without presets")
			}
		})
	}
}

func TestTaskPresetsNormalized(t *testing.T) {
	uc := newTestUseCase(&mockGenerator{}, extraction.Options{TaskPresetLists: []string{" Work", "work", "Home ", ""}})
	got := uc.TaskPresets()
	if len(got) != 2 || got[0] != "work" || got[1] != "home" {
		t.Errorf("TaskPresets() = %v", got)
	}
}
