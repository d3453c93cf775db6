package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel maps LOG_LEVEL values to slog levels. Unknown values fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// New builds a logger writing JSON lines (format "json", what CloudWatch
// ingests) or colorized text via tint (format "text", for local runs).
func New(w io.Writer, level, format string) *slog.Logger {
	logLevel := ParseLevel(level)

	var handler slog.Handler
	if format == "text" {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel})
	}

	return slog.New(handler)
}

// Init creates the process logger on stdout and installs it as the slog default.
func Init(level, format string) *slog.Logger {
	logger := New(os.Stdout, level, format)
	slog.SetDefault(logger)
	return logger
}
