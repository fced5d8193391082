package strategy

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xlittlerag/groups-assigner/types"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0)) //nolint:gosec // test seed
}

func competitorsFromCountries(countries ...string) []types.Competitor {
	comps := make([]types.Competitor, len(countries))
	for i, country := range countries {
		id := string(rune('a' + i))
		comps[i] = types.Competitor{ID: id, Name: id, Country: country}
	}

	return comps
}

func TestSystematic_Assign(t *testing.T) {
	st := NewSystematic()

	t.Run("fills every seat exactly once and places everyone", func(t *testing.T) {
		comps := competitorsFromCountries("JPN", "JPN", "JPN", "USA", "USA", "USA", "GER")
		groups := []types.Group{
			{ID: "1", Capacity: 3},
			{ID: "2", Capacity: 4},
		}

		a, err := st.Assign(comps, groups, nil, newRand(7))

		require.NoError(t, err)
		require.Len(t, a.Seats, 7)

		placed := make(map[string]int)
		for key, compID := range a.Seats {
			placed[compID]++
			found := false
			for _, g := range groups {
				if g.ID == key.GroupID && g.ValidSeat(key.Seat) {
					found = true
				}
			}
			require.True(t, found, "seat %v is not a real seat", key)
		}
		for _, c := range comps {
			require.Equal(t, 1, placed[c.ID], "competitor %s placed %d times", c.ID, placed[c.ID])
		}
	})

	t.Run("honors fixed positions for every seed", func(t *testing.T) {
		comps := competitorsFromCountries("JPN", "JPN", "USA", "USA", "GER", "FRA")
		groups := []types.Group{
			{ID: "1", Capacity: 3},
			{ID: "2", Capacity: 3},
		}
		fixed := []types.FixedPosition{
			{CompetitorID: "a", GroupID: "1", Seat: "a"},
			{CompetitorID: "d", GroupID: "2", Seat: "c"},
		}

		for seed := int64(0); seed < 20; seed++ {
			a, err := st.Assign(comps, groups, fixed, newRand(seed))
			require.NoError(t, err)
			require.Equal(t, "a", a.Seats[types.SeatKey{GroupID: "1", Seat: "a"}])
			require.Equal(t, "d", a.Seats[types.SeatKey{GroupID: "2", Seat: "c"}])
		}
	})

	t.Run("deterministic for a fixed seed", func(t *testing.T) {
		comps := competitorsFromCountries("JPN", "JPN", "JPN", "USA", "USA", "FRA")
		groups := []types.Group{
			{ID: "1", Capacity: 3},
			{ID: "2", Capacity: 3},
		}

		a1, err := st.Assign(comps, groups, nil, newRand(42))
		require.NoError(t, err)
		a2, err := st.Assign(comps, groups, nil, newRand(42))
		require.NoError(t, err)

		require.Equal(t, a1.Seats, a2.Seats)
		require.Equal(t, a1.CollisionCount, a2.CollisionCount)
	})

	t.Run("spreads distinct countries with zero collisions", func(t *testing.T) {
		comps := competitorsFromCountries("JPN", "USA", "GER", "FRA", "ITA", "KOR")
		groups := []types.Group{
			{ID: "1", Capacity: 3},
			{ID: "2", Capacity: 3},
		}

		a, err := st.Assign(comps, groups, nil, newRand(1))

		require.NoError(t, err)
		require.Zero(t, a.CollisionCount)
		require.Empty(t, a.PerCountryCollisions)
	})

	t.Run("balances an oversized country across groups", func(t *testing.T) {
		// Five JPN competitors over two groups: the greedy rule must split
		// them 3/2 (or 2/3), never 4/1.
		comps := competitorsFromCountries("JPN", "JPN", "JPN", "JPN", "JPN", "USA")
		groups := []types.Group{
			{ID: "1", Capacity: 3},
			{ID: "2", Capacity: 3},
		}

		for seed := int64(0); seed < 10; seed++ {
			a, err := st.Assign(comps, groups, nil, newRand(seed))
			require.NoError(t, err)

			perGroup := make(map[string]int)
			for key, compID := range a.Seats {
				if compID != "f" { // "f" is the USA competitor
					perGroup[key.GroupID]++
				}
			}
			require.LessOrEqual(t, perGroup["1"], 3)
			require.GreaterOrEqual(t, perGroup["1"], 2)
			// C(3,2)+C(2,2) = 4 collisions is the floor for a 3/2 split.
			require.Equal(t, 4, a.CollisionCount)
		}
	})

	t.Run("collision counts match the evaluator invariant", func(t *testing.T) {
		comps := competitorsFromCountries("JPN", "JPN", "USA", "USA", "USA", "GER", "GER", "FRA")
		groups := []types.Group{
			{ID: "1", Capacity: 4},
			{ID: "2", Capacity: 4},
		}

		a, err := st.Assign(comps, groups, nil, newRand(3))

		require.NoError(t, err)
		sum := 0
		for _, n := range a.PerCountryCollisions {
			sum += n
		}
		require.Equal(t, a.CollisionCount, sum)
	})

	t.Run("pins of the same country count toward balancing", func(t *testing.T) {
		// Two JPN pinned in group 1; the remaining JPN must land in group 2.
		comps := competitorsFromCountries("JPN", "JPN", "JPN", "USA", "USA", "USA")
		groups := []types.Group{
			{ID: "1", Capacity: 3},
			{ID: "2", Capacity: 3},
		}
		fixed := []types.FixedPosition{
			{CompetitorID: "a", GroupID: "1", Seat: "a"},
			{CompetitorID: "b", GroupID: "1", Seat: "b"},
		}

		for seed := int64(0); seed < 10; seed++ {
			a, err := st.Assign(comps, groups, fixed, newRand(seed))
			require.NoError(t, err)

			var thirdJPNGroup string
			for key, compID := range a.Seats {
				if compID == "c" {
					thirdJPNGroup = key.GroupID
				}
			}
			require.Equal(t, "2", thirdJPNGroup)
		}
	})
}
