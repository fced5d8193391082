package assigner

import (
	"strings"

	"github.com/xlittlerag/groups-assigner/types"
)

// Validate checks competitors, groups and fixed positions for structural
// problems before any placement runs.
//
// Checks run in a fixed order and stop at the first failure, so the returned
// message always names the earliest problem:
//  1. No duplicate competitor or group IDs
//  2. Every group capacity is within the 3..4 bound
//  3. Competitor count equals total group capacity
//  4. Every fixed position names an existing competitor, exactly once
//  5. Every fixed position names an existing group
//  6. Every fixed position's seat is valid for the group's capacity
//  7. No two fixed positions claim the same (group, seat)
//
// Parameters:
//   - competitors: Full entrant list
//   - groups: Target group list
//   - fixed: Pre-pinned seats, may be empty
//
// Returns:
//   - error: nil when the inputs are drawable, *ValidationError otherwise
func (e *Engine) Validate(
	competitors []types.Competitor,
	groups []types.Group,
	fixed []types.FixedPosition,
) error {
	if err := validate(competitors, groups, fixed); err != nil {
		if e.metrics != nil {
			e.metrics.RecordValidationFailure()
		}

		return err
	}

	return nil
}

func validate(
	competitors []types.Competitor,
	groups []types.Group,
	fixed []types.FixedPosition,
) error {
	byID := make(map[string]types.Competitor, len(competitors))
	for _, c := range competitors {
		if _, dup := byID[c.ID]; dup {
			return types.NewValidationError("duplicate competitor id %q", c.ID)
		}
		byID[c.ID] = c
	}

	capacity := 0
	groupByID := make(map[string]types.Group, len(groups))
	for _, g := range groups {
		if _, dup := groupByID[g.ID]; dup {
			return types.NewValidationError("duplicate group id %q", g.ID)
		}
		if g.Capacity < types.MinGroupCapacity || g.Capacity > types.MaxGroupCapacity {
			return types.NewValidationError(
				"group %q has capacity %d, must be %d or %d",
				g.ID, g.Capacity, types.MinGroupCapacity, types.MaxGroupCapacity)
		}
		groupByID[g.ID] = g
		capacity += g.Capacity
	}

	if len(competitors) != capacity {
		return types.NewValidationError(
			"total competitors (%d) does not match total group capacity (%d)",
			len(competitors), capacity)
	}

	pinned := make(map[string]struct{}, len(fixed))
	seatOwners := make(map[types.SeatKey][]string, len(fixed))
	for _, f := range fixed {
		if _, ok := byID[f.CompetitorID]; !ok {
			return types.NewValidationError(
				"fixed position: competitor %q does not exist", f.CompetitorID)
		}
		if _, dup := pinned[f.CompetitorID]; dup {
			return types.NewValidationError(
				"fixed position: competitor %q pinned more than once", f.CompetitorID)
		}
		pinned[f.CompetitorID] = struct{}{}

		group, ok := groupByID[f.GroupID]
		if !ok {
			return types.NewValidationError(
				"fixed position: competitor %q refers to non-existent group %q",
				f.CompetitorID, f.GroupID)
		}
		if !group.ValidSeat(f.Seat) {
			return types.NewValidationError(
				"invalid seat %q for group %q with capacity %d",
				f.Seat, group.ID, group.Capacity)
		}

		key := types.SeatKey{GroupID: f.GroupID, Seat: f.Seat}
		seatOwners[key] = append(seatOwners[key], f.CompetitorID)
		if owners := seatOwners[key]; len(owners) > 1 {
			return types.NewValidationError(
				"duplicate fixed position: group %q seat %q assigned to multiple competitors: %s",
				f.GroupID, f.Seat, strings.Join(owners, ", "))
		}
	}

	return nil
}
