// Package affinity scores how well a person's declared roles fit a slot role.
package affinity

import "github.com/okian/lineup/internal/domain/model"

// Score values, highest fit first.
const (
	ScorePrimary   = 10
	ScoreSecondary = 7
	ScoreCategory  = 4
	ScoreAdjacent  = 2
	ScoreNone      = 0
)

// MatchScore rates primary/secondary roles against target. Category and
// adjacency are judged from the primary role only.
func MatchScore(primary, secondary, target model.Role) int {
	switch {
	case primary == target:
		return ScorePrimary
	case secondary != model.RoleNone && secondary == target:
		return ScoreSecondary
	case !primary.Valid() || !target.Valid():
		return ScoreNone
	}
	pc, tc := primary.Category(), target.Category()
	switch {
	case pc == tc:
		return ScoreCategory
	case pc.Adjacent(tc):
		return ScoreAdjacent
	}
	return ScoreNone
}

// For scores person p against target.
func For(p model.Person, target model.Role) int {
	return MatchScore(p.Primary, p.Secondary, target)
}
