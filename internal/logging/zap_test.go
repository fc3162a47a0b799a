package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedZap(t *testing.T) (*ZapLogger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return NewZapLogger(zap.New(core)), logs
}

func TestZapLogger_Levels(t *testing.T) {
	log, logs := newObservedZap(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	if got := logs.Len(); got != 4 {
		t.Fatalf("expected 4 entries, got %d", got)
	}

	entries := logs.All()
	wantMsgs := []string{"dbg", "inf", "wrn", "err"}
	for i, want := range wantMsgs {
		if entries[i].Message != want {
			t.Fatalf("entry %d: expected message %q, got %q", i, want, entries[i].Message)
		}
	}
}

func TestZapLogger_With_AddsFields(t *testing.T) {
	log, logs := newObservedZap(t)

	child := log.With("req_id", "123")
	child.Info(context.Background(), "hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["req_id"] != "123" {
		t.Fatalf("expected req_id=123 in fields, got %v", fields)
	}
}

func TestNewProductionZapLogger_Levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		if _, err := NewProductionZapLogger(level); err != nil {
			t.Fatalf("level %q: unexpected error %v", level, err)
		}
	}
}
