package log_test

import (
	"context"
	"testing"

	"smart-assistant/pkg/log"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	if got := log.RequestID(ctx); got != "" {
		t.Errorf("expected empty request id, got %q", got)
	}

	ctx = log.WithRequestID(ctx, "req-1")
	if got := log.RequestID(ctx); got != "req-1" {
		t.Errorf("expected req-1, got %q", got)
	}
}

func TestInit_DoesNotPanic(t *testing.T) {
	configs := []log.ZapConfig{
		{Level: "debug", Mode: log.ModeDevelopment, Encoding: log.EncodingConsole, ColorEnabled: true},
		{Level: "error", Mode: log.ModeProduction, Encoding: log.EncodingJSON},
		{Level: "bogus"},
	}
	for _, cfg := range configs {
		l := log.Init(cfg)
		ctx := log.WithRequestID(context.Background(), "abc")
		l.Info(ctx, "hello")
		l.Warnf(ctx, "value=%d", 1)
	}

	log.NewNop().Error(context.Background(), "discarded")
}
