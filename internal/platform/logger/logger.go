package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a structured logger writing to stdout: JSON in production or
// when format is "json", human readable text otherwise.
func New(format string, production bool) *slog.Logger {
	return NewWithWriter(os.Stdout, format, production)
}

func NewWithWriter(w io.Writer, format string, production bool) *slog.Logger {
	level := slog.LevelInfo
	if !production {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if production || strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", "skilloncall")
}
