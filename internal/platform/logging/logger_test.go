package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	line := strings.TrimSpace(buf.String())
	var out map[string]any
	if err := sonic.UnmarshalString(line, &out); err != nil {
		t.Fatalf("unmarshal log line %q: %v", line, err)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"verbose": LevelInfo,
		"":        LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%v want=%v", in, got, want)
		}
	}
}

func TestLogger_WritesKeyValueFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, LevelInfo).Named("kvstate").With("store", "memory")
	logger.Warn("record skipped", "key", "gameOdds", "index", 2, "error", errors.New("odds must be > 0"), "dangling")

	line := decodeLine(t, &buf)
	if line["msg"] != "record skipped" || line["level"] != "WARN" || line["logger"] != "kvstate" {
		t.Fatalf("unexpected envelope: %v", line)
	}
	if line["store"] != "memory" || line["key"] != "gameOdds" || line["index"] != float64(2) {
		t.Fatalf("unexpected fields: %v", line)
	}
	if line["error"] != "odds must be > 0" {
		t.Fatalf("expected error field, got %v", line["error"])
	}
	if _, ok := line["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept, got %v", line)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, LevelWarn)
	logger.Info("ignored")
	logger.Debug("ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
}

func TestLogger_TraceFields(t *testing.T) {
	t.Parallel()

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	var buf bytes.Buffer
	New(&buf, LevelInfo).InfoContext(ctx, "week advanced", "week", 3)

	line := decodeLine(t, &buf)
	if line["trace_id"] != traceID.String() || line["span_id"] != spanID.String() {
		t.Fatalf("expected trace ids, got %v", line)
	}
}

func TestDefault(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(New(&buf, LevelInfo))
	t.Cleanup(func() { SetDefault(nil) })

	var nilLogger *Logger
	nilLogger.Info("falls back to default")
	if !strings.Contains(buf.String(), "falls back to default") {
		t.Fatalf("expected nil logger to write through default, got %q", buf.String())
	}
}
