package types

import "time"

// DrawRequest bundles the validated inputs of one draw.
//
// Competitors, Groups and FixedPositions are read-only for the duration of
// the call. Optional fields use pointers so "absent" is distinguishable from
// the zero value: a nil Seed means process-level nondeterminism (the engine
// draws a fresh seed and records it in the result), a nil Minimize means the
// default of true.
type DrawRequest struct {
	// Competitors is the full entrant list. Its length must equal the total
	// group capacity.
	Competitors []Competitor

	// Groups is the target group list.
	Groups []Group

	// FixedPositions pins competitors to seats before placement. May be empty.
	FixedPositions []FixedPosition

	// Seed is the base random seed. Attempt i uses Seed+i. Nil draws a fresh
	// base seed.
	Seed *int64

	// Minimize enables the randomized-restart search. Nil defaults to true;
	// false runs a single placement pass with the given seed.
	Minimize *bool

	// TimeBudget bounds the wall-clock time of the restart search. Zero uses
	// the engine's configured default.
	TimeBudget time.Duration
}
