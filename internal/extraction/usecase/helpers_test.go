package usecase

import (
	"context"
	"sync"
	"time"

	"smart-assistant/internal/extraction"
	"smart-assistant/internal/usage"
	"smart-assistant/pkg/llmprovider"
)

// Mock logger for testing
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

// Mock generator returning a fixed reply
type mockGenerator struct {
	text string
	err  error

	mu       sync.Mutex
	requests []*llmprovider.Request
}

func (m *mockGenerator) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &llmprovider.Response{
		Content:      llmprovider.Message{Role: llmprovider.RoleAssistant, Parts: []llmprovider.Part{{Text: m.text}}},
		ProviderName: "mock",
		ModelName:    "mock-model",
		Usage:        &llmprovider.Usage{InputTokens: 12, OutputTokens: 8, TotalTokens: 20},
	}, nil
}

// Mock usage recorder
type mockUsage struct {
	records map[string]usage.Tokens
}

func (m *mockUsage) Record(ctx context.Context, model string, t usage.Tokens) error {
	if m.records == nil {
		m.records = make(map[string]usage.Tokens)
	}
	m.records[model] = t
	return nil
}

func (m *mockUsage) Snapshot() map[string]usage.Tokens { return m.records }
func (m *mockUsage) SummaryLines() []string           { return nil }

var testNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func newTestUseCase(gen *mockGenerator, opts extraction.Options) *implUseCase {
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	return New(&mockLogger{}, gen, &mockUsage{}, nil, opts)
}
