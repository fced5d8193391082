package types

// Group capacity bounds. Draw pools are built from small groups only.
const (
	MinGroupCapacity = 3
	MaxGroupCapacity = 4
)

// seatLabels is the fixed seat alphabet. A group of capacity N uses the first
// N labels.
var seatLabels = [MaxGroupCapacity]string{"a", "b", "c", "d"}

// Group is a pool of seats that competitors are assigned into.
//
// Groups are read-only inputs to the engine; per-attempt occupancy state is
// kept in fresh structures inside each placement pass, never on the Group
// itself, so attempts and concurrent draws cannot contaminate each other.
type Group struct {
	// ID identifies the group. IDs are compared as strings; callers using
	// numeric identifiers must normalize them to strings.
	ID string `json:"id"`

	// Capacity is the number of seats, 3 or 4.
	Capacity int `json:"capacity"`

	// Label is an optional human-readable name.
	Label string `json:"label,omitempty"`
}

// Seats returns the ordered seat labels for this group, derived from the
// capacity: capacity 3 yields ["a" "b" "c"], capacity 4 adds "d".
//
// Returns:
//   - []string: Seat labels in seat order (nil for out-of-range capacities)
func (g Group) Seats() []string {
	if g.Capacity < 0 || g.Capacity > MaxGroupCapacity {
		return nil
	}

	return seatLabels[:g.Capacity]
}

// ValidSeat reports whether seat is a valid seat label for this group's
// capacity.
func (g Group) ValidSeat(seat string) bool {
	for _, s := range g.Seats() {
		if s == seat {
			return true
		}
	}

	return false
}
