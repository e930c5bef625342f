// Package ranking scores an extracted skill set against every role in the catalog.
package ranking

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-fit/internal/types"
)

// Skill weights used by the role score
const (
	criticalWeight    = 2
	recommendedWeight = 1
)

// Scorer ranks roles by how many of their skills were found. It is immutable.
type Scorer struct {
	roles []types.RoleRequirement
}

// NewScorer returns a scorer over roles, which are kept in the given order for tie-breaking.
func NewScorer(roles []types.RoleRequirement) *Scorer {
	return &Scorer{roles: roles}
}

// Score computes the fit percentage for every role and returns them best first.
// A role scores 2 points per matched critical skill and 1 per matched recommended skill,
// divided by the maximum possible (treated as 1 when the role lists no skills).
// Equal scores keep catalog order.
func (s *Scorer) Score(extracted types.ExtractedSkillSet) types.RankedRoleList {
	have := flatten(extracted)

	ranked := make(types.RankedRoleList, 0, len(s.roles))
	for _, role := range s.roles {
		ranked = append(ranked, scoreRole(role, have))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func scoreRole(role types.RoleRequirement, have map[string]bool) types.RoleScore {
	matched := []string{}
	missing := []string{}
	raw := 0

	for _, skill := range role.CriticalSkills {
		if have[strings.ToLower(skill)] {
			raw += criticalWeight
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	for _, skill := range role.RecommendedSkills {
		if have[strings.ToLower(skill)] {
			raw += recommendedWeight
			matched = append(matched, skill)
		}
	}

	maxScore := criticalWeight*len(role.CriticalSkills) + recommendedWeight*len(role.RecommendedSkills)
	if maxScore == 0 {
		maxScore = 1
	}

	return types.RoleScore{
		Role:                  role.Role,
		Score:                 Round1(100 * float64(raw) / float64(maxScore)),
		MissingCriticalSkills: missing,
		MatchedSkills:         matched,
	}
}

// flatten collects every extracted skill, lowercased, ignoring categories.
func flatten(extracted types.ExtractedSkillSet) map[string]bool {
	have := make(map[string]bool, extracted.Count())
	for _, skills := range extracted {
		for _, skill := range skills {
			have[strings.ToLower(skill)] = true
		}
	}
	return have
}

// Round1 rounds to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
