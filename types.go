package assigner

import "github.com/xlittlerag/groups-assigner/types"

// Re-export types from the internal types package.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the `types`
// subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing internal packages
// to depend on `types` without depending on the root `assigner` package, while
// still providing a convenient `assigner.Competitor`, `assigner.Logger`, etc.
// for users.
type (
	Competitor     = types.Competitor
	Group          = types.Group
	FixedPosition  = types.FixedPosition
	SeatKey        = types.SeatKey
	Assignment     = types.Assignment
	SeatAssignment = types.SeatAssignment
	DrawRequest    = types.DrawRequest
)

// Re-export interfaces from the internal types package for convenience.
type (
	Strategy         = types.Strategy
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
)

// ValidationError is the diagnostic error returned for structurally invalid
// draw inputs. Use IsValidationError or errors.As to distinguish it from
// internal failures.
type ValidationError = types.ValidationError

// IsValidationError reports whether err is (or wraps) a *ValidationError.
func IsValidationError(err error) bool {
	return types.IsValidationError(err)
}
