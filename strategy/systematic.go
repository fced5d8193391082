package strategy

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/xlittlerag/groups-assigner/internal/collision"
	"github.com/xlittlerag/groups-assigner/types"
)

// Systematic implements the country-balancing placement algorithm.
//
// The algorithm:
//  1. Commit all fixed positions; pinned seats are never revisited.
//  2. Partition the remaining competitors by country and process countries in
//     descending population order (ties broken by country code ascending so
//     the order is stable across runs).
//  3. Place each competitor of a country into a group with at least one open
//     seat and the fewest competitors of that country so far (pins included),
//     breaking ties uniformly at random; the seat within the chosen group is
//     also picked uniformly among its open seats.
//  4. Reshuffle the non-pinned seats of every group. This permutes seat
//     labels within a group without moving anyone between groups, so the
//     collision count is unchanged; it only removes seat-label bias.
//
// Candidate groups are compared on same-country counts only. A group about to
// fill up is not deprioritized; this local greedy rule is intentional and
// matches the production draw behavior.
type Systematic struct{}

// Compile-time assertion that Systematic implements Strategy.
var _ types.Strategy = (*Systematic)(nil)

// NewSystematic creates a new systematic country-balancing strategy.
//
// Returns:
//   - *Systematic: Initialized strategy
//
// Example:
//
//	st := strategy.NewSystematic()
//	eng, err := assigner.NewEngine(&cfg, assigner.WithStrategy(st))
func NewSystematic() *Systematic {
	return &Systematic{}
}

// Assign places every competitor into a seat, minimizing same-country
// co-location greedily.
//
// Deterministic for a fixed RNG state and fixed input ordering. Inputs are not
// mutated; all occupancy state is call-local, so concurrent calls are safe.
//
// Parameters:
//   - competitors: All entrants; count must equal the total group capacity
//   - groups: Target groups
//   - fixed: Pre-pinned seats, honored unconditionally
//   - rng: Call-scoped random source
//
// Returns:
//   - *types.Assignment: Completed assignment with collision counts populated
//   - error: Wrapped types.ErrInvariantViolation if placement cannot complete
//     (unreachable for inputs that passed validation)
func (s *Systematic) Assign(
	competitors []types.Competitor,
	groups []types.Group,
	fixed []types.FixedPosition,
	rng *rand.Rand,
) (*types.Assignment, error) {
	byID := collision.Index(competitors)

	seats := make(map[types.SeatKey]string, len(competitors))

	// Per-call occupancy: groupID -> seat -> competitorID.
	occupied := make(map[string]map[string]string, len(groups))
	for _, g := range groups {
		occupied[g.ID] = make(map[string]string, g.Capacity)
	}

	// Running same-country counts: country -> groupID -> count.
	countryCounts := make(map[string]map[string]int)
	bump := func(country, groupID string) {
		m, ok := countryCounts[country]
		if !ok {
			m = make(map[string]int)
			countryCounts[country] = m
		}
		m[groupID]++
	}

	// Step 1: commit pins.
	pinnedComps := make(map[string]struct{}, len(fixed))
	pinnedSeats := make(map[types.SeatKey]struct{}, len(fixed))
	for _, f := range fixed {
		key := types.SeatKey{GroupID: f.GroupID, Seat: f.Seat}
		seats[key] = f.CompetitorID
		occupied[f.GroupID][f.Seat] = f.CompetitorID
		pinnedComps[f.CompetitorID] = struct{}{}
		pinnedSeats[key] = struct{}{}
		bump(byID[f.CompetitorID].Country, f.GroupID)
	}

	// Step 2: partition the unpinned competitors by country and order
	// countries by descending population, country code ascending on ties.
	byCountry := make(map[string][]string)
	for _, c := range competitors {
		if _, ok := pinnedComps[c.ID]; ok {
			continue
		}
		byCountry[c.Country] = append(byCountry[c.Country], c.ID)
	}
	countries := make([]string, 0, len(byCountry))
	for country := range byCountry {
		countries = append(countries, country)
	}
	slices.SortFunc(countries, func(a, b string) int {
		if d := len(byCountry[b]) - len(byCountry[a]); d != 0 {
			return d
		}

		return strings.Compare(a, b)
	})

	// Step 3: place country by country.
	for _, country := range countries {
		members := byCountry[country]
		rng.Shuffle(len(members), func(i, j int) {
			members[i], members[j] = members[j], members[i]
		})

		for _, compID := range members {
			group, err := pickGroup(groups, occupied, countryCounts[country], rng)
			if err != nil {
				return nil, fmt.Errorf("placing competitor %q: %w", compID, err)
			}

			seat := pickSeat(group, occupied[group.ID], rng)
			key := types.SeatKey{GroupID: group.ID, Seat: seat}
			seats[key] = compID
			occupied[group.ID][seat] = compID
			bump(country, group.ID)
		}
	}

	// Step 4: reshuffle non-pinned seats within each group.
	for _, g := range groups {
		if err := reshuffleGroup(g, seats, pinnedSeats, rng); err != nil {
			return nil, err
		}
	}

	total, perCountry := collision.Count(seats, byID)

	return &types.Assignment{
		Seats:                seats,
		CollisionCount:       total,
		PerCountryCollisions: perCountry,
	}, nil
}

// pickGroup selects uniformly among the open groups holding the fewest
// competitors of the country being placed.
func pickGroup(
	groups []types.Group,
	occupied map[string]map[string]string,
	counts map[string]int,
	rng *rand.Rand,
) (types.Group, error) {
	minCount := -1
	var candidates []types.Group
	for _, g := range groups {
		if len(occupied[g.ID]) >= g.Capacity {
			continue
		}
		count := counts[g.ID]
		switch {
		case minCount < 0 || count < minCount:
			minCount = count
			candidates = append(candidates[:0], g)
		case count == minCount:
			candidates = append(candidates, g)
		}
	}
	if len(candidates) == 0 {
		// All groups full with competitors left over; validation guarantees
		// this cannot happen.
		return types.Group{}, fmt.Errorf("%w: no open seat remains", types.ErrInvariantViolation)
	}

	return candidates[rng.IntN(len(candidates))], nil
}

// pickSeat selects uniformly among the group's open seats. The caller
// guarantees at least one seat is open.
func pickSeat(group types.Group, taken map[string]string, rng *rand.Rand) string {
	open := make([]string, 0, group.Capacity)
	for _, seat := range group.Seats() {
		if _, ok := taken[seat]; !ok {
			open = append(open, seat)
		}
	}

	return open[rng.IntN(len(open))]
}

// reshuffleGroup permutes the occupants of a group's non-pinned seats in
// place. Group membership is untouched, so the collision count cannot change.
func reshuffleGroup(
	group types.Group,
	seats map[types.SeatKey]string,
	pinnedSeats map[types.SeatKey]struct{},
	rng *rand.Rand,
) error {
	var keys []types.SeatKey
	var occupants []string
	for _, seat := range group.Seats() {
		key := types.SeatKey{GroupID: group.ID, Seat: seat}
		if _, ok := pinnedSeats[key]; ok {
			continue
		}
		compID, ok := seats[key]
		if !ok {
			return fmt.Errorf("%w: seat %s/%s left empty after placement",
				types.ErrInvariantViolation, group.ID, seat)
		}
		keys = append(keys, key)
		occupants = append(occupants, compID)
	}

	rng.Shuffle(len(occupants), func(i, j int) {
		occupants[i], occupants[j] = occupants[j], occupants[i]
	})
	for i, key := range keys {
		seats[key] = occupants[i]
	}

	return nil
}
