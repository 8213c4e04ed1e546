package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"clipforge/internal/services"
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelDebug)
	return slog.New(newPrettyHandler(buf, levelVar, false))
}

func TestPrettyHandlerWritesComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewComponentLogger(newBufferLogger(&buf), "invoker")

	logger.Info("transcode complete", String("output", "/tmp/out.mp4"), Int("exit_code", 0))

	line := buf.String()
	if !strings.Contains(line, "[invoker]") {
		t.Fatalf("expected component tag in %q", line)
	}
	if !strings.Contains(line, "transcode complete") {
		t.Fatalf("expected message in %q", line)
	}
	if !strings.Contains(line, "output=/tmp/out.mp4") || !strings.Contains(line, "exit_code=0") {
		t.Fatalf("expected attrs in %q", line)
	}
}

func TestPrettyHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newPrettyHandler(&buf, levelVar, false))

	logger.Info("should be dropped")
	logger.Warn("should be kept")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Fatalf("info record leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "should be kept") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestWithContextAddsStandardFields(t *testing.T) {
	var buf bytes.Buffer
	base := newBufferLogger(&buf)

	ctx := services.WithVideoID(context.Background(), "vid-123")
	ctx = services.WithStage(ctx, "trim")
	WithContext(ctx, base).Info("stage started")

	line := buf.String()
	if !strings.Contains(line, "video_id=vid-123") {
		t.Fatalf("expected video_id field in %q", line)
	}
	if !strings.Contains(line, "stage=trim") {
		t.Fatalf("expected stage field in %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	// Must not panic and must report disabled for all levels.
	logger.Error("ignored")
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("noop logger should report disabled")
	}
}
