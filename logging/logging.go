// SPDX-License-Identifier: MIT

// Package logging wraps log/slog with the handful of constructors the nhoods
// transforms and the nhoodkit CLI need.
//
// Library code takes a *Logger through options and defaults to Noop(), so
// nothing is printed unless the caller asks for it.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with neighbourhood-specific field helpers.
type Logger struct {
	*slog.Logger
}

// New creates a Logger over handler. A nil handler means text on stderr at Info.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger writes JSON records at level or above to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger writes key=value records at level or above to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Noop returns a Logger that discards everything.
func Noop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))}
}

// ParseLevel maps "debug", "info", "warn" and "error" (any case) to a slog
// level. Anything else yields Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

// Setup builds the CLI logger: format "text" gives key=value output, anything
// else JSON. Debug level also records the source position.
func Setup(w io.Writer, level, format string) *Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{Level: lvl, AddSource: lvl == slog.LevelDebug}

	var h slog.Handler
	if strings.EqualFold(format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return New(h)
}

// WithOp tags records with the operation name.
func (l *Logger) WithOp(op string) *Logger {
	return &Logger{Logger: l.Logger.With("op", op)}
}

// WithShape tags records with a matrix shape.
func (l *Logger) WithShape(rows, cols int) *Logger {
	return &Logger{Logger: l.Logger.With("rows", rows, "cols", cols)}
}
