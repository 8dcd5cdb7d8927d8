// Package errors provides the error taxonomy for busTicketSeed runs.
// Resource shortfalls (fewer unique values than requested) are not errors and
// never reach this package; they are reported as warnings in the run report.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Generation error codes
const (
	// Configuration errors (detected before any row is produced)
	ErrCodeConfigInvalid = "CONFIG_INVALID"

	// Unique value helpers could not produce a fresh value
	ErrCodeUniqueExhausted = "UNIQUE_EXHAUSTED"

	// Pipeline contract violations
	ErrCodeRegistrySealed      = "REGISTRY_SEALED"
	ErrCodePhaseOrderViolation = "PHASE_ORDER_VIOLATION"
	ErrCodePoolEmpty           = "POOL_EMPTY"

	// Output sink failures
	ErrCodeOutputFailed = "OUTPUT_FAILED"
)

// Process exit codes per error category
const (
	ExitOK            = 0
	ExitGeneric       = 1
	ExitConfigInvalid = 2
	ExitGeneration    = 3
	ExitOutput        = 4
)

// GenerationError represents an error that aborts a generation run
type GenerationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Table   string `json:"table,omitempty"`
}

// Error implements the error interface
func (e *GenerationError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s: %s (table %s)", e.Code, e.Message, e.Table)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewConfigError creates configuration errors
func NewConfigError(message string) *GenerationError {
	return &GenerationError{
		Code:    ErrCodeConfigInvalid,
		Message: message,
	}
}

// NewUniqueExhaustedError is returned when a unique value helper gives up
func NewUniqueExhaustedError(table, field string, attempts int) *GenerationError {
	return &GenerationError{
		Code:    ErrCodeUniqueExhausted,
		Message: fmt.Sprintf("could not produce a unique %s after %d attempts", field, attempts),
		Table:   table,
	}
}

// NewRegistrySealedError is returned when a phase writes into an entity owned by an earlier level
func NewRegistrySealedError(table string) *GenerationError {
	return &GenerationError{
		Code:    ErrCodeRegistrySealed,
		Message: "registry is read-only for this entity",
		Table:   table,
	}
}

// NewPhaseOrderError is returned when a phase runs before one of its dependencies is complete
func NewPhaseOrderError(phase, missing string) *GenerationError {
	return &GenerationError{
		Code:    ErrCodePhaseOrderViolation,
		Message: fmt.Sprintf("phase %q requires %s which is not yet populated", phase, missing),
		Table:   missing,
	}
}

// NewPoolEmptyError is returned when a phase must reference an entity that has no rows
func NewPoolEmptyError(table string) *GenerationError {
	return &GenerationError{
		Code:    ErrCodePoolEmpty,
		Message: "no identifiers available to reference",
		Table:   table,
	}
}

// NewOutputError wraps a failure of the output sink
func NewOutputError(err error) *GenerationError {
	return &GenerationError{
		Code:    ErrCodeOutputFailed,
		Message: err.Error(),
	}
}

// IsGenerationError checks if error is a GenerationError
func IsGenerationError(err error) bool {
	_, ok := GetGenerationError(err)
	return ok
}

// GetGenerationError extracts GenerationError from error, following both
// single and joined wrap chains
func GetGenerationError(err error) (*GenerationError, bool) {
	var genErr *GenerationError
	if stderrors.As(err, &genErr) {
		return genErr, true
	}
	return nil, false
}

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	genErr, ok := GetGenerationError(err)
	if !ok {
		return ExitGeneric
	}

	switch genErr.Code {
	case ErrCodeConfigInvalid:
		return ExitConfigInvalid
	case ErrCodeOutputFailed:
		return ExitOutput
	default:
		return ExitGeneration
	}
}
