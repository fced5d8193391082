package store

import (
	"context"
	"fmt"
	"time"

	"github.com/xlittlerag/groups-assigner/internal/fingerprint"
	"github.com/xlittlerag/groups-assigner/types"
)

// Result is a stored draw outcome: the seat-ordered assignment rows plus a
// summary of the search that produced them.
type Result struct {
	// Assignment holds one row per seat, ordered by (group, seat).
	Assignment []types.SeatAssignment `json:"assignment"`

	// Summary describes the collision metric and the winning seed.
	Summary Summary `json:"summary"`

	// CreatedAt is when the result was stored.
	CreatedAt time.Time `json:"created_at"`
}

// Summary carries the collision metric of a stored result.
type Summary struct {
	// TotalCollisions is the number of same-country pairs sharing a group.
	TotalCollisions int `json:"total_collisions"`

	// PerCountryCollisions breaks TotalCollisions down by country.
	PerCountryCollisions map[string]int `json:"collisions_per_country"`

	// RandomSeed is the seed of the placement attempt that produced the
	// assignment. Replaying a single pass with this seed reproduces it.
	RandomSeed int64 `json:"random_seed"`
}

// Store persists datasets and results under content-derived keys.
//
// Put methods for datasets return the fingerprint key the data was stored
// under. Getters return ErrDatasetNotFound or ErrResultNotFound when nothing
// exists under the key. Implementations must be safe for concurrent use.
type Store interface {
	// PutCompetitors stores a competitor list and returns its key.
	PutCompetitors(ctx context.Context, competitors []types.Competitor) (string, error)

	// Competitors returns the competitor list stored under key.
	Competitors(ctx context.Context, key string) ([]types.Competitor, error)

	// PutGroups stores a group list and returns its key.
	PutGroups(ctx context.Context, groups []types.Group) (string, error)

	// Groups returns the group list stored under key.
	Groups(ctx context.Context, key string) ([]types.Group, error)

	// PutFixedPositions stores a fixed-position list and returns its key.
	PutFixedPositions(ctx context.Context, fixed []types.FixedPosition) (string, error)

	// FixedPositions returns the fixed-position list stored under key.
	FixedPositions(ctx context.Context, key string) ([]types.FixedPosition, error)

	// PutResult stores a draw result under key (see ResultKey).
	PutResult(ctx context.Context, key string, result *Result) error

	// Result returns the draw result stored under key.
	Result(ctx context.Context, key string) (*Result, error)
}

// ResultKey derives the storage key for a draw outcome from the dataset keys
// and the seed that produced it. The same datasets drawn with the same seed
// always map to the same key.
//
// Parameters:
//   - competitorsKey: Key of the competitor dataset
//   - groupsKey: Key of the group dataset
//   - fixedKey: Key of the fixed-position dataset, empty when none was used
//   - seed: Seed of the winning placement attempt
//
// Returns:
//   - string: 32-character hex key
func ResultKey(competitorsKey, groupsKey, fixedKey string, seed int64) string {
	return fingerprint.SumBytes(fmt.Appendf(nil, "%s:%s:%s:%d",
		competitorsKey, groupsKey, fixedKey, seed))
}
