// Package logging provides standard field definitions for structured logging
package logging

import (
	"log/slog"
	"time"
)

// Standard log field values and constants for structured logging
const (
	// Standard field names
	FieldService    = "service"
	FieldVersion    = "version"
	FieldRunID      = "run_id"
	FieldPhase      = "phase"
	FieldLevelNo    = "level_no"
	FieldTable      = "table"
	FieldRequested  = "requested"
	FieldProduced   = "produced"
	FieldAttempts   = "attempts"
	FieldDurationMs = "duration_ms"
	FieldOutput     = "output"
	FieldSeed       = "seed"
	FieldError      = "error"

	// Log levels
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// StandardField provides helper functions for creating structured log fields
type StandardField struct{}

// NewStandardField creates a new StandardField instance
func NewStandardField() *StandardField {
	return &StandardField{}
}

// Table adds table name field
func (sf *StandardField) Table(table string) slog.Attr {
	return slog.String(FieldTable, table)
}

// Requested adds requested row count field
func (sf *StandardField) Requested(n int) slog.Attr {
	return slog.Int(FieldRequested, n)
}

// Produced adds produced row count field
func (sf *StandardField) Produced(n int) slog.Attr {
	return slog.Int(FieldProduced, n)
}

// Attempts adds sampling attempts field
func (sf *StandardField) Attempts(n int) slog.Attr {
	return slog.Int(FieldAttempts, n)
}

// Duration adds elapsed time in milliseconds field
func (sf *StandardField) Duration(d time.Duration) slog.Attr {
	return slog.Int64(FieldDurationMs, d.Milliseconds())
}

// Shortfall groups the fields of a degraded table result
func (sf *StandardField) Shortfall(table string, requested, produced, attempts int) []any {
	return []any{
		sf.Table(table),
		sf.Requested(requested),
		sf.Produced(produced),
		sf.Attempts(attempts),
	}
}
