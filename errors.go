package assigner

import "github.com/xlittlerag/groups-assigner/types"

// Sentinel errors returned by the Engine. These alias the definitions in the
// types package so errors.Is matches across both import paths.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrStrategyRequired is returned when the placement strategy is nil.
	ErrStrategyRequired = types.ErrStrategyRequired

	// ErrBudgetExhausted is returned when the time budget expired before a
	// single placement attempt completed.
	ErrBudgetExhausted = types.ErrBudgetExhausted

	// ErrInvariantViolation indicates an internal placement defect. Inputs
	// that passed validation should never trigger it.
	ErrInvariantViolation = types.ErrInvariantViolation
)
