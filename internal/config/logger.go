package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. Production gets machine-readable JSON
// at info level; anything else gets human-readable text at debug level with
// source locations for easier tracing.
func NewLogger(env string) *slog.Logger {
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
}
