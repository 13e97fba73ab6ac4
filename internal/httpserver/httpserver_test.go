package httpserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"smart-assistant/internal/assistant"
	assistantHTTP "smart-assistant/internal/assistant/delivery/http"
	"smart-assistant/internal/model"
	"smart-assistant/pkg/response"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type stubTelegram struct{ calls int }

func (s *stubTelegram) HandleWebhook(c *gin.Context) {
	s.calls++
	c.Status(http.StatusOK)
}

type stubAssistant struct{}

func (stubAssistant) ProcessText(ctx context.Context, sc model.Scope, input assistant.ProcessTextInput) model.AssistantResult {
	return model.AssistantResult{Success: true, Message: "ok"}
}

func (stubAssistant) ProcessImage(ctx context.Context, sc model.Scope, input assistant.ProcessImageInput) model.AssistantResult {
	return model.AssistantResult{}
}

func (stubAssistant) ProcessEmail(ctx context.Context, sc model.Scope, input assistant.ProcessEmailInput) model.AssistantResult {
	return model.AssistantResult{}
}

func (stubAssistant) PreviewText(ctx context.Context, sc model.Scope, input assistant.ProcessTextInput) (model.ParsedItems, error) {
	return model.ParsedItems{}, nil
}

func (stubAssistant) ListToday(ctx context.Context, sc model.Scope) (assistant.TodayOutput, error) {
	return assistant.TodayOutput{Date: "2025-03-01"}, nil
}

func serve(srv *HTTPServer, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.gin.ServeHTTP(w, req)
	return w
}

func TestNew_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		l    *mockLogger
	}{
		{"missing logger", Config{Mode: gin.TestMode, Port: 8080}, nil},
		{"missing mode", Config{Port: 8080}, &mockLogger{}},
		{"missing port", Config{Mode: gin.TestMode}, &mockLogger{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.l == nil {
				_, err = New(nil, tt.cfg)
			} else {
				_, err = New(tt.l, tt.cfg)
			}
			if err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRoutes(t *testing.T) {
	l := &mockLogger{}
	tg := &stubTelegram{}
	srv, err := New(l, Config{
		Logger:           l,
		Port:             8080,
		Mode:             gin.TestMode,
		Environment:      "test",
		APIKey:           "k1",
		Components:       map[string]bool{ComponentCalendar: true},
		TelegramHandler:  tg,
		AssistantHandler: assistantHTTP.New(l, stubAssistant{}),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := srv.mapHandlers(); err != nil {
		t.Fatalf("mapHandlers: %v", err)
	}

	for _, path := range []string{"/health", "/ready", "/live"} {
		t.Run(path, func(t *testing.T) {
			w := serve(srv, http.MethodGet, path, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			var resp response.Resp
			json.Unmarshal(w.Body.Bytes(), &resp)
			data, _ := resp.Data.(map[string]any)
			if data["service"] != ServiceName {
				t.Errorf("unexpected body %s", w.Body.String())
			}
			components, _ := data["components"].(map[string]any)
			if components[ComponentCalendar] != true {
				t.Errorf("expected calendar component, got %v", data["components"])
			}
		})
	}

	t.Run("telegram webhook", func(t *testing.T) {
		if w := serve(srv, http.MethodPost, "/webhook/telegram", nil); w.Code != http.StatusOK || tg.calls != 1 {
			t.Errorf("expected webhook handled, got %d calls=%d", w.Code, tg.calls)
		}
	})

	t.Run("assistant api requires key", func(t *testing.T) {
		if w := serve(srv, http.MethodGet, "/api/v1/assistant/today", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
		if w := serve(srv, http.MethodGet, "/api/v1/assistant/today", map[string]string{"X-API-Key": "k1"}); w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})
}

func TestRoutes_OptionalHandlers(t *testing.T) {
	l := &mockLogger{}
	srv, err := New(l, Config{Logger: l, Port: 8080, Mode: gin.TestMode})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	srv.mapHandlers()

	if w := serve(srv, http.MethodPost, "/webhook/telegram", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 without telegram handler, got %d", w.Code)
	}
	if w := serve(srv, http.MethodGet, "/ready", nil); w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without backends, got %d", w.Code)
	}
	if w := serve(srv, http.MethodGet, "/live", nil); w.Code != http.StatusOK {
		t.Errorf("expected live 200, got %d", w.Code)
	}
	if w := serve(srv, http.MethodGet, "/api/v1/assistant/today", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 without assistant handler, got %d", w.Code)
	}
}

func TestRun_Shutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	l := &mockLogger{}
	srv, err := New(l, Config{Logger: l, Port: port, Mode: gin.TestMode})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
