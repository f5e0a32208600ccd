// Package logger configures the process-wide slog logger. Handlers and
// middleware log through slog directly; this package only decides the
// level and output format once at startup.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Init installs the default slog logger with the given level and format.
// Level is one of debug/info/warn/error (case-insensitive); format is
// "json" or "text". Unknown values fall back to info/text.
func Init(level, format string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
