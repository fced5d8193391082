package assigner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xlittlerag/groups-assigner/types"
)

func testEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	cfg := TestConfig()
	eng, err := NewEngine(&cfg, opts...)
	require.NoError(t, err)

	return eng
}

func namedCompetitors(countries ...string) []types.Competitor {
	comps := make([]types.Competitor, len(countries))
	for i, country := range countries {
		id := string(rune('a' + i))
		comps[i] = types.Competitor{ID: id, Name: "competitor " + id, Country: country}
	}

	return comps
}

func TestEngine_Validate(t *testing.T) {
	eng := testEngine(t)

	groups := []types.Group{
		{ID: "1", Capacity: 3},
		{ID: "2", Capacity: 3},
	}

	t.Run("accepts a drawable input set", func(t *testing.T) {
		comps := namedCompetitors("JPN", "JPN", "USA", "USA", "GER", "FRA")
		fixed := []types.FixedPosition{{CompetitorID: "a", GroupID: "1", Seat: "a"}}

		require.NoError(t, eng.Validate(comps, groups, fixed))
	})

	t.Run("rejects a count and capacity mismatch", func(t *testing.T) {
		comps := namedCompetitors("JPN", "JPN", "USA", "USA", "GER")

		err := eng.Validate(comps, groups, nil)

		require.Error(t, err)
		require.True(t, IsValidationError(err))
		require.ErrorContains(t, err, "total competitors (5)")
		require.ErrorContains(t, err, "total group capacity (6)")
	})

	t.Run("rejects duplicate competitor ids", func(t *testing.T) {
		comps := namedCompetitors("JPN", "USA", "GER", "FRA", "ITA", "KOR")
		comps[5].ID = comps[0].ID

		err := eng.Validate(comps, groups, nil)

		require.True(t, IsValidationError(err))
		require.ErrorContains(t, err, `duplicate competitor id "a"`)
	})

	t.Run("rejects duplicate group ids", func(t *testing.T) {
		comps := namedCompetitors("JPN", "USA", "GER", "FRA", "ITA", "KOR")
		dupGroups := []types.Group{
			{ID: "1", Capacity: 3},
			{ID: "1", Capacity: 3},
		}

		err := eng.Validate(comps, dupGroups, nil)

		require.True(t, IsValidationError(err))
		require.ErrorContains(t, err, `duplicate group id "1"`)
	})

	t.Run("rejects group capacities outside the seat alphabet", func(t *testing.T) {
		comps := namedCompetitors("JPN", "USA", "GER", "FRA", "ITA")
		badGroups := []types.Group{{ID: "1", Capacity: 5}}

		err := eng.Validate(comps, badGroups, nil)

		require.True(t, IsValidationError(err))
		require.ErrorContains(t, err, `group "1" has capacity 5, must be 3 or 4`)

		badGroups = []types.Group{{ID: "1", Capacity: 2}}
		err = eng.Validate(namedCompetitors("JPN", "USA"), badGroups, nil)
		require.True(t, IsValidationError(err))
		require.ErrorContains(t, err, "capacity 2")
	})

	t.Run("rejects a pin for an unknown competitor", func(t *testing.T) {
		comps := namedCompetitors("JPN", "USA", "GER", "FRA", "ITA", "KOR")
		fixed := []types.FixedPosition{{CompetitorID: "zz", GroupID: "1", Seat: "a"}}

		err := eng.Validate(comps, groups, fixed)

		require.True(t, IsValidationError(err))
		require.ErrorContains(t, err, `competitor "zz" does not exist`)
	})

	t.Run("rejects a competitor pinned twice", func(t *testing.T) {
		comps := namedCompetitors("JPN", "USA", "GER", "FRA", "ITA", "KOR")
		fixed := []types.FixedPosition{
			{CompetitorID: "a", GroupID: "1", Seat: "a"},
			{CompetitorID: "a", GroupID: "2", Seat: "b"},
		}

		err := eng.Validate(comps, groups, fixed)

		require.True(t, IsValidationError(err))
		require.ErrorContains(t, err, `competitor "a" pinned more than once`)
	})

	t.Run("rejects a pin into an unknown group", func(t *testing.T) {
		comps := namedCompetitors("JPN", "USA", "GER", "FRA", "ITA", "KOR")
		fixed := []types.FixedPosition{{CompetitorID: "a", GroupID: "9", Seat: "a"}}

		err := eng.Validate(comps, groups, fixed)

		require.True(t, IsValidationError(err))
		require.ErrorContains(t, err, `refers to non-existent group "9"`)
	})

	t.Run("rejects a seat beyond the group capacity", func(t *testing.T) {
		comps := namedCompetitors("JPN", "USA", "GER", "FRA", "ITA", "KOR")
		fixed := []types.FixedPosition{{CompetitorID: "a", GroupID: "1", Seat: "d"}}

		err := eng.Validate(comps, groups, fixed)

		require.True(t, IsValidationError(err))
		require.ErrorContains(t, err, `invalid seat "d" for group "1" with capacity 3`)
	})

	t.Run("rejects two pins on the same seat", func(t *testing.T) {
		comps := namedCompetitors("JPN", "USA", "GER", "FRA", "ITA", "KOR")
		fixed := []types.FixedPosition{
			{CompetitorID: "a", GroupID: "1", Seat: "a"},
			{CompetitorID: "b", GroupID: "1", Seat: "a"},
		}

		err := eng.Validate(comps, groups, fixed)

		require.True(t, IsValidationError(err))
		require.ErrorContains(t, err, `duplicate fixed position: group "1" seat "a"`)
		require.ErrorContains(t, err, "a, b")
	})
}
