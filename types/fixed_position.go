package types

// FixedPosition pins a competitor to a specific seat before placement runs.
//
// Pins are inviolable: no placement or reshuffle step may relocate or
// overwrite a pinned seat. The Validator rejects pins that reference unknown
// competitors or groups, seats outside the group's capacity, and two pins
// targeting the same seat.
type FixedPosition struct {
	// CompetitorID is the pinned competitor.
	CompetitorID string `json:"competitor_name"`

	// GroupID is the target group.
	GroupID string `json:"group_id"`

	// Seat is the target seat label within the group.
	Seat string `json:"position"`
}

// SeatKey identifies one seat of one group. It is the key of the
// Assignment.Seats mapping.
type SeatKey struct {
	GroupID string
	Seat    string
}

// Compare performs a lexicographic comparison on (GroupID, Seat).
//
// Returns:
//   - int: -1 if k < o, 0 if equal, +1 if k > o
func (k SeatKey) Compare(o SeatKey) int {
	if k.GroupID != o.GroupID {
		if k.GroupID < o.GroupID {
			return -1
		}

		return 1
	}
	if k.Seat == o.Seat {
		return 0
	}
	if k.Seat < o.Seat {
		return -1
	}

	return 1
}
