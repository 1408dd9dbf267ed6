// Package logging provides the levelled, switchable logger used by the
// initializer and the dependency fetcher. A disabled logger does no work at
// all: no formatting, no handler dispatch.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
)

// Level is the severity of a log entry.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// String returns the string representation of the Level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger writes component-tagged entries through slog.
type Logger struct {
	enabled atomic.Bool
	slog    *slog.Logger
}

// New returns an enabled Logger writing text records to w.
func New(w io.Writer, component string) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Timestamps only add noise to CLI output.
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	l := &Logger{slog: slog.New(h).With("component", component)}
	l.enabled.Store(true)
	return l
}

// Discard returns a disabled Logger.
func Discard() *Logger {
	l := &Logger{slog: slog.New(slog.DiscardHandler)}
	return l
}

// Enabled reports whether entries are emitted.
func (l *Logger) Enabled() bool { return l.enabled.Load() }

// SetEnabled switches logging on or off.
func (l *Logger) SetEnabled(on bool) { l.enabled.Store(on) }

// Info logs at LevelInfo.
func (l *Logger) Info(format string, args ...any) { l.log(LevelInfo, format, args) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(format string, args ...any) { l.log(LevelWarn, format, args) }

// Error logs at LevelError.
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args) }

func (l *Logger) log(level Level, format string, args []any) {
	if !l.enabled.Load() {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	l.slog.Log(context.Background(), level.toSlogLevel(), msg)
}
