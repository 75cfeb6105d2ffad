package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, level string) *slog.Logger {
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(level))
	return slog.New(newConsoleHandler(buf, levelVar))
}

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, "info")

	logger.Info("matched series", String(FieldQuery, "Breaking Bad"), Int(FieldFileCount, 7))

	line := buf.String()
	if !strings.Contains(line, "INFO") {
		t.Errorf("missing level label: %q", line)
	}
	if !strings.Contains(line, "matched series") {
		t.Errorf("missing message: %q", line)
	}
	if !strings.Contains(line, `query="Breaking Bad"`) {
		t.Errorf("missing quoted attr: %q", line)
	}
	if !strings.Contains(line, "file_count=7") {
		t.Errorf("missing int attr: %q", line)
	}
}

func TestConsoleHandlerComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := NewComponentLogger(newTestLogger(&buf, "info"), "renamer")

	logger.Info("planned 3 renames")

	line := buf.String()
	if !strings.Contains(line, "renamer: planned 3 renames") {
		t.Errorf("component not rendered as prefix: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Errorf("component leaked as key=value: %q", line)
	}
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, "warn")

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info record not filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestConsoleHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, "info")

	logger.WithGroup("tmdb").Info("lookup", String("path", "/search/tv"))

	if !strings.Contains(buf.String(), "tmdb.path=/search/tv") {
		t.Errorf("group prefix not applied: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("no-op logger reports enabled")
	}
}
