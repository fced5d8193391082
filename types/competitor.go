package types

// Competitor is a single entrant in the draw.
//
// Competitors are read-only inputs to the engine: once supplied to a draw they
// are never mutated. The ID is the identity key; the original registration
// system uses the competitor's name as both ID and display name.
type Competitor struct {
	// ID uniquely identifies the competitor within one draw.
	ID string `json:"id"`

	// Name is the display name used in formatted output.
	Name string `json:"name"`

	// Country is the country code used for collision balancing (e.g. "JPN").
	Country string `json:"country"`

	// SeedRank is an optional seeding rank carried through for downstream
	// consumers. Zero means unseeded. The placement algorithm does not use it.
	SeedRank int `json:"seed_id,omitempty"`
}
