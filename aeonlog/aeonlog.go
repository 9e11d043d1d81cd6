// Package aeonlog is the runtime's single logging entry point: a thin
// log/slog wrapper so every component tags its output with the
// component name, without each package reaching for its own handler
// configuration.
package aeonlog

import (
	"log/slog"
	"os"
)

// New returns a logger scoped to component, writing structured text to
// stderr at the given level.
func New(component string, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("component", component)
}

// ParseLevel maps a CLI flag value ("debug", "info", "warn", "error") to a
// slog.Level, defaulting to Info for anything unrecognized.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
