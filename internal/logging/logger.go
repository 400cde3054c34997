// Package logging configures the process-wide slog logger for tasktracker.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// AppName is attached to every record as the "app" attribute.
const AppName = "tasktracker"

// Logger is the application-wide structured logger instance.
var Logger *slog.Logger

// InitLogger builds the logger from the configured log_level and log_format,
// writes it to stderr and installs it as the slog default.
func InitLogger(level, format string) {
	Logger = NewLogger(os.Stderr, level, format)
	slog.SetDefault(Logger)
}

// NewLogger builds a logger writing to w without touching the default.
// format is "json" or "text"; anything else is text.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("app", AppName)
}

// ParseLevel reads a config level name such as "debug" or "WARN". Unknown
// names are info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// WithComponent tags l with the subsystem that logs through it. A nil l
// means the current slog default.
func WithComponent(l *slog.Logger, component string) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", component)
}
