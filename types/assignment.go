package types

// Assignment is the result of one completed placement pass.
//
// A completed Assignment covers every seat of every group exactly once and
// places every competitor exactly once. Assignments are immutable once
// returned by a strategy; the optimizer only compares and discards them.
type Assignment struct {
	// Seats maps every (group, seat) to the occupying competitor's ID.
	Seats map[SeatKey]string

	// CollisionCount is the total number of same-country pairs sharing a
	// group, summed over all groups and countries.
	CollisionCount int

	// PerCountryCollisions breaks CollisionCount down by country. Countries
	// contributing zero pairs are absent.
	PerCountryCollisions map[string]int

	// Seed is the random seed that produced this assignment. When the caller
	// supplied no seed the engine records the fresh seed it drew, so every
	// returned assignment is reproducible after the fact.
	Seed int64
}

// SeatAssignment is one row of the seat-ordered projection produced by
// Engine.FormatSeats. Downstream consumers (export, transports) rely on rows
// being sorted lexicographically by (group, seat).
type SeatAssignment struct {
	GroupID string `json:"group_id"`
	Seat    string `json:"position"`
	Name    string `json:"name"`
	Country string `json:"country"`
}
