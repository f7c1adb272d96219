package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"hardsub/internal/services"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl, false))

	logger.Info("scan complete",
		String(FieldComponent, "analysis"),
		Int("frames_processed", 6),
		Float64("confidence", 0.875),
	)

	line := buf.String()
	if !strings.Contains(line, "INFO analysis: scan complete") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "frames_processed=6") {
		t.Fatalf("missing int attr in %q", line)
	}
	if !strings.Contains(line, "confidence=0.875") {
		t.Fatalf("missing float attr in %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl, false))

	ctx := services.WithVideo(context.Background(), "movie.mkv")
	ctx = services.WithStrategy(ctx, "tesseract")

	WithContext(ctx, logger).Warn("frame extraction failed")

	line := buf.String()
	if !strings.Contains(line, "video=movie.mkv") || !strings.Contains(line, "strategy=tesseract") {
		t.Fatalf("context fields missing from %q", line)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
