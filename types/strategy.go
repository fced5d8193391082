package types

import "math/rand/v2"

// Strategy produces one complete assignment of competitors to seats.
//
// Strategy implementations should:
//   - Be deterministic given the same inputs and RNG state
//   - Honor fixed positions unconditionally
//   - Keep all per-pass mutable state local to the call (the engine invokes
//     Assign repeatedly, and concurrent draws may run in parallel)
//   - Return an error only for invariant violations; a high-collision result
//     is a valid result, not an error
//
// The RNG is threaded explicitly rather than read from a process-global
// source so that concurrent draws cannot interleave each other's random
// sequences and break seed reproducibility.
type Strategy interface {
	// Assign places every competitor into a seat.
	//
	// Parameters:
	//   - competitors: All entrants; their count must equal the total capacity
	//   - groups: Target groups (read-only; occupancy state is call-local)
	//   - fixed: Pre-pinned (competitor, group, seat) constraints
	//   - rng: Call-scoped random source for shuffles and tie-breaks
	//
	// Returns:
	//   - *Assignment: Completed assignment with collision counts populated
	//   - error: Invariant violation (inputs that passed validation never
	//     trigger one)
	Assign(competitors []Competitor, groups []Group, fixed []FixedPosition, rng *rand.Rand) (*Assignment, error)
}
