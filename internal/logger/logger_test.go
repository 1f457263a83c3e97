package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/polkiloo/storefront/internal/config"
)

func TestNewProvidesJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelInfo)

	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Errorf("expected info level to be enabled")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("did not expect debug level to be enabled")
	}

	l.Info("hello", slog.Int("n", 1))
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "hello" || record["service"] != "storefront" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestNewFromConfigHonoursLevel(t *testing.T) {
	l := newFromConfig(&config.Config{LogLevel: slog.LevelDebug})
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("expected debug level to be enabled")
	}
}
