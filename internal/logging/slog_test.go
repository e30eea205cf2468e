package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newBufLogger(level slog.Level) (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level})
	return NewSlogLogger(slog.New(h)), buf
}

func decodeLine(t *testing.T, line string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid log line %q: %v", line, err)
	}
	return m
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newBufLogger(slog.LevelDebug)
	ctx := context.Background()

	log.Debug(ctx, "d")
	log.Info(ctx, "i")
	log.Warn(ctx, "w")
	log.Error(ctx, "e")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, want := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
		m := decodeLine(t, lines[i])
		if m["level"] != want {
			t.Errorf("line %d: level = %v, want %s", i, m["level"], want)
		}
	}
}

func TestSlogLogger_WithAddsFields(t *testing.T) {
	log, buf := newBufLogger(slog.LevelInfo)

	child := log.With("document_id", "doc-1")
	child.Info(context.Background(), "processed", "findings", 2)

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["document_id"] != "doc-1" {
		t.Errorf("document_id = %v, want doc-1", m["document_id"])
	}
	if m["findings"] != float64(2) {
		t.Errorf("findings = %v, want 2", m["findings"])
	}
}
