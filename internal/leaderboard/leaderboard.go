// Package leaderboard orders profiles by trees planted.
package leaderboard

import (
	"sort"

	"github.com/google/uuid"

	"github.com/rahul-gound/fera-naturehelp/internal/model"
)

// Rank returns the profiles sorted by TreesPlanted, highest first. Ties keep
// their input order; there is no secondary key.
func Rank(profiles []model.Profile) []model.Profile {
	ranked := make([]model.Profile, len(profiles))
	copy(ranked, profiles)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TreesPlanted > ranked[j].TreesPlanted
	})
	return ranked
}

// RankOf returns the 1-based position of userID in Rank(profiles), or false
// when the user is not in the set.
func RankOf(profiles []model.Profile, userID uuid.UUID) (int, bool) {
	for i, p := range Rank(profiles) {
		if p.ID == userID {
			return i + 1, true
		}
	}
	return 0, false
}

// TopN returns at most n profiles of Rank(profiles).
func TopN(profiles []model.Profile, n int) []model.Profile {
	if n <= 0 {
		return []model.Profile{}
	}
	ranked := Rank(profiles)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
