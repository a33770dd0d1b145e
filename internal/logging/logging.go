// Package logging provides the structured logger used throughout this
// repository. It wraps log/slog rather than calling it directly so call
// sites depend on a small seam instead of the standard library type,
// matching the teacher's general rule of not leaking standard-library
// types into domain code.
package logging

import (
	"log/slog"
	"os"
)

// Logger is a thin wrapper around *slog.Logger.
type Logger struct {
	slog *slog.Logger
}

// New builds a Logger writing text-formatted records to stderr at level.
// debug, when true, lowers the level to slog.LevelDebug regardless of
// level, matching the CLI's -fdebug flag.
func New(level slog.Level, debug bool) *Logger {
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	return &Logger{slog: slog.New(handler)}
}

// Nop returns a Logger that discards everything, for tests that don't care
// about log output.
func Nop() *Logger {
	return &Logger{slog: slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) { l.slog.Info(msg, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) { l.slog.Warn(msg, args...) }

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// With returns a Logger that includes args on every subsequent record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...)}
}
