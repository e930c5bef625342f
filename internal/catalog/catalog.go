// Package catalog loads the read-only skills taxonomy, role requirements and learning roadmaps.
//
// A Store is built once at startup and shared by every request. Loading never fails: a missing
// or malformed document leaves that part of the catalog empty and records a warning.
package catalog

import (
	"fmt"

	"github.com/jonathan/resume-fit/internal/types"
)

// Catalog file names inside the data directory.
const (
	SkillsFile   = "skills_database.json"
	RolesFile    = "role_requirements.json"
	RoadmapsFile = "learning_roadmaps.json"
)

// Taxonomy is the ordered list of skill categories.
type Taxonomy []types.SkillCategory

// Names returns the category names in catalog order.
func (t Taxonomy) Names() []string {
	names := make([]string, 0, len(t))
	for _, c := range t {
		names = append(names, c.Name)
	}
	return names
}

// SkillCount returns the number of skills across all categories.
func (t Taxonomy) SkillCount() int {
	n := 0
	for _, c := range t {
		n += len(c.Skills)
	}
	return n
}

// Store holds the three catalogs. It is immutable after construction.
type Store struct {
	taxonomy     Taxonomy
	roles        []types.RoleRequirement
	roadmaps     map[string][]string
	roadmapOrder []string
	warnings     []string
}

// New builds a Store from in-memory catalogs, applying the same clean-up as LoadDir.
// Roadmaps are looked up by role name; use NewOrdered when listing order matters.
func New(taxonomy []types.SkillCategory, roles []types.RoleRequirement, roadmaps map[string][]string) *Store {
	order := make([]string, 0, len(roadmaps))
	for _, r := range roles {
		if _, ok := roadmaps[r.Role]; ok {
			order = append(order, r.Role)
		}
	}
	seen := make(map[string]bool, len(order))
	for _, name := range order {
		seen[name] = true
	}
	for name := range roadmaps {
		if !seen[name] {
			order = append(order, name)
		}
	}
	rm := make([]types.Roadmap, 0, len(order))
	for _, name := range order {
		rm = append(rm, types.Roadmap{Role: name, Steps: roadmaps[name]})
	}
	return NewOrdered(taxonomy, roles, rm)
}

// NewOrdered builds a Store keeping roadmap order as given.
func NewOrdered(taxonomy []types.SkillCategory, roles []types.RoleRequirement, roadmaps []types.Roadmap) *Store {
	s := &Store{}
	s.taxonomy = s.cleanTaxonomy(taxonomy)
	s.roles = s.cleanRoles(roles)
	s.roadmaps, s.roadmapOrder = s.cleanRoadmaps(roadmaps)
	return s
}

// Taxonomy returns the skill categories in catalog order.
func (s *Store) Taxonomy() Taxonomy {
	return s.taxonomy
}

// Roles returns the role requirements in catalog order.
func (s *Store) Roles() []types.RoleRequirement {
	return s.roles
}

// Roadmap returns the learning steps for role, or an empty slice for an unknown role.
func (s *Store) Roadmap(role string) []string {
	steps, ok := s.roadmaps[role]
	if !ok {
		return []string{}
	}
	out := make([]string, len(steps))
	copy(out, steps)
	return out
}

// Roadmaps returns every roadmap in catalog order.
func (s *Store) Roadmaps() []types.Roadmap {
	out := make([]types.Roadmap, 0, len(s.roadmapOrder))
	for _, role := range s.roadmapOrder {
		out = append(out, types.Roadmap{Role: role, Steps: s.Roadmap(role)})
	}
	return out
}

// Warnings returns the problems found while loading, in the order they were found.
func (s *Store) Warnings() []string {
	return s.warnings
}

// Empty reports whether no catalog has any content.
func (s *Store) Empty() bool {
	return len(s.taxonomy) == 0 && len(s.roles) == 0 && len(s.roadmaps) == 0
}

func (s *Store) warn(format string, args ...any) {
	s.warnings = append(s.warnings, fmt.Sprintf(format, args...))
}
