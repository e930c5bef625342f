//nolint:revive // types is a standard Go package name pattern
package types

// RoleRequirement lists the skills a role needs. Critical skills weigh double.
type RoleRequirement struct {
	Role              string   `json:"role"`
	CriticalSkills    []string `json:"critical_skills"`
	RecommendedSkills []string `json:"recommended_skills"`
}

// RoleScore is the fit of one extracted skill set against one role, as a percentage.
type RoleScore struct {
	Role                  string   `json:"role"`
	Score                 float64  `json:"score"`
	MissingCriticalSkills []string `json:"missing_critical_skills"`
	MatchedSkills         []string `json:"matched_skills"`
}

// RankedRoleList is ordered by descending score; ties keep catalog order.
type RankedRoleList []RoleScore

// Find returns the entry for the named role, matched exactly.
func (l RankedRoleList) Find(role string) (RoleScore, bool) {
	for _, r := range l {
		if r.Role == role {
			return r, true
		}
	}
	return RoleScore{}, false
}

// Best returns the highest-scoring entry.
func (l RankedRoleList) Best() (RoleScore, bool) {
	if len(l) == 0 {
		return RoleScore{}, false
	}
	return l[0], true
}

// Roadmap is the ordered list of learning steps for one role.
type Roadmap struct {
	Role  string   `json:"role"`
	Steps []string `json:"steps"`
}
