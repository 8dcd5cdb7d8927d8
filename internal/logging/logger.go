// Package logging provides structured logging functionality using log/slog
package logging

import (
	"io"
	"log/slog"
)

// Logger wraps slog.Logger with generator-specific context helpers
type Logger struct {
	*slog.Logger
	service string
	version string
}

// NewLoggerWithWriter creates a structured logger on w. The CLI passes stderr
// so stdout stays free for the SQL artifact when the output path is "-".
func NewLoggerWithWriter(w io.Writer, level, format, service, version string) *Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With(
		slog.String(FieldService, service),
		slog.String(FieldVersion, version),
	)

	return &Logger{
		Logger:  logger,
		service: service,
		version: version,
	}
}

// Discard returns a logger that drops every record
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ParseLevel maps a configured level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) with(attrs ...any) *Logger {
	return &Logger{
		Logger:  l.Logger.With(attrs...),
		service: l.service,
		version: l.version,
	}
}

// WithRunID adds the run identifier to the logger
func (l *Logger) WithRunID(runID string) *Logger {
	return l.with(slog.String(FieldRunID, runID))
}

// WithPhase adds pipeline phase context to the logger
func (l *Logger) WithPhase(name string, level int) *Logger {
	return l.with(slog.String(FieldPhase, name), slog.Int(FieldLevelNo, level))
}

// WithTable adds table context to the logger
func (l *Logger) WithTable(table string) *Logger {
	return l.with(slog.String(FieldTable, table))
}

// WithError adds error context to the logger
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.with(slog.String(FieldError, err.Error()))
}
