package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/polkiloo/storefront/internal/config"
)

// New creates a JSON slog.Logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("service", "storefront"))
}

func newFromConfig(cfg *config.Config) *slog.Logger {
	return New(os.Stdout, cfg.LogLevel)
}
