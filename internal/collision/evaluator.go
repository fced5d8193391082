// Package collision computes the collision metric for completed assignments.
//
// A collision is a pair of competitors from the same country placed in the
// same group. For a country with n competitors in one group the pair count is
// n*(n-1)/2. Evaluation is deterministic and pure; a nonzero count is a valid
// result, never an error.
package collision

import "github.com/xlittlerag/groups-assigner/types"

// Count computes the total and per-country collision counts for an
// assignment.
//
// Parameters:
//   - seats: Seat to competitor-ID mapping of a completed assignment
//   - byID: Competitor lookup by ID
//
// Returns:
//   - int: Total same-country pairs across all groups
//   - map[string]int: Pairs contributed per country (zero-pair countries absent)
func Count(seats map[types.SeatKey]string, byID map[string]types.Competitor) (int, map[string]int) {
	// country counts per group
	groupCountries := make(map[string]map[string]int)
	for key, compID := range seats {
		counts, ok := groupCountries[key.GroupID]
		if !ok {
			counts = make(map[string]int)
			groupCountries[key.GroupID] = counts
		}
		counts[byID[compID].Country]++
	}

	total := 0
	perCountry := make(map[string]int)
	for _, counts := range groupCountries {
		for country, n := range counts {
			if n < 2 {
				continue
			}
			pairs := n * (n - 1) / 2
			total += pairs
			perCountry[country] += pairs
		}
	}

	return total, perCountry
}

// Index builds a competitor lookup by ID.
//
// Parameters:
//   - competitors: Competitor list
//
// Returns:
//   - map[string]types.Competitor: Lookup keyed by Competitor.ID
func Index(competitors []types.Competitor) map[string]types.Competitor {
	byID := make(map[string]types.Competitor, len(competitors))
	for _, c := range competitors {
		byID[c.ID] = c
	}

	return byID
}
