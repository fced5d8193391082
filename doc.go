// Package assigner provides a Go library for drawing competitors into small
// groups while spreading same-country competitors apart.
//
// The engine assigns a fixed population of competitors to seats inside groups
// of capacity 3 or 4, minimizing "collisions" (same-country pairs sharing a
// group) while honoring pre-pinned (competitor, group, seat) constraints. The
// search is a bounded randomized-restart heuristic, not an exact solver.
//
// # Quick Start
//
// Basic usage with default settings:
//
//	import "github.com/xlittlerag/groups-assigner"
//
//	cfg := assigner.DefaultConfig()
//	eng, err := assigner.NewEngine(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	seed := int64(42)
//	result, err := eng.Run(ctx, assigner.DrawRequest{
//	    Competitors:    competitors,
//	    Groups:         groups,
//	    FixedPositions: pins,
//	    Seed:           &seed,
//	})
//
// # Key Features
//
//   - Country Balancing: Greedy per-country distribution into the groups with
//     the fewest same-country competitors
//   - Randomized Restarts: Up to MaxAttempts seeded passes under a wall-clock
//     budget, keeping the best result and stopping early on zero collisions
//   - Inviolable Pins: Fixed positions survive every placement and reshuffle
//   - Reproducibility: Call-scoped RNG, with the seed that produced a result
//     recorded on it
//
// # Architecture
//
// One draw flows through:
//
//	Validate -> Run -> Strategy.Assign (repeated) -> best Assignment
//
// Validation rejects structurally broken inputs before any placement runs. A
// high-collision assignment is still a valid result; only malformed input or
// an exhausted time budget is an error.
//
// The store and service packages add hash-keyed dataset storage and a NATS
// request/reply API around the engine; neither is required for library use.
//
// See the examples/ directory for complete working examples.
package assigner
