package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New builds the application logger. Diagnostics always go to stderr so
// translated output on stdout stays clean for piping; json switches the
// handler from human-readable text to JSON lines.
func New(lvl string, json bool) *slog.Logger {

	level := parseLevel(lvl)

	opts := &slog.HandlerOptions{
		Level: level,
	}
	var handler slog.Handler

	if json {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {

	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
