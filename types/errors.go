package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the groups-assigner library.
//
// These errors provide type-safe error checking using errors.Is() and
// errors.As(). Components use sentinel errors for known conditions and wrap
// external errors with context using fmt.Errorf("...: %w", err).

// Engine errors - Public API errors returned by the Engine.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStrategyRequired is returned when the placement strategy is nil.
	ErrStrategyRequired = errors.New("placement strategy is required")

	// ErrBudgetExhausted is returned when the optimizer's time budget expired
	// before a single placement attempt could complete. The caller must retry
	// with a larger budget.
	ErrBudgetExhausted = errors.New("time budget exhausted before any attempt completed")

	// ErrInvariantViolation indicates a defect: the placement pass produced an
	// incomplete assignment despite passing validation. It is surfaced loudly
	// rather than returning a partial result.
	ErrInvariantViolation = errors.New("placement invariant violated")
)

// Store errors - Returned by dataset/result stores.
var (
	// ErrDatasetNotFound is returned when no dataset exists under a key.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrResultNotFound is returned when no stored result exists under a key.
	ErrResultNotFound = errors.New("result not found")
)

// Service errors - Returned by the transport layer.
var (
	// ErrConnRequired is returned when the NATS connection is nil.
	ErrConnRequired = errors.New("NATS connection is required")

	// ErrEngineRequired is returned when the engine is nil.
	ErrEngineRequired = errors.New("engine is required")

	// ErrStoreRequired is returned when the store is nil.
	ErrStoreRequired = errors.New("store is required")

	// ErrAlreadyStarted is returned when Start is called on a running service.
	ErrAlreadyStarted = errors.New("service already started")

	// ErrNotStarted is returned when Stop is called before Start.
	ErrNotStarted = errors.New("service not started")
)

// ValidationError describes a structural problem in draw inputs: a
// count/capacity mismatch, a pin referencing a missing entity, an invalid
// seat, or a duplicate pin. It is always detected before any placement is
// attempted and is recoverable by correcting the input; the engine never
// retries a failed validation.
type ValidationError struct {
	// Message is the human-readable diagnostic naming the violated check.
	Message string
}

// Error returns the diagnostic message.
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message.
//
// Parameters:
//   - format: fmt-style format string
//   - args: Format arguments
//
// Returns:
//   - *ValidationError: Error carrying the formatted diagnostic
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if a ValidationError is in err's chain
func IsValidationError(err error) bool {
	var ve *ValidationError

	return errors.As(err, &ve)
}
