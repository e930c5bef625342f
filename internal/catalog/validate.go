package catalog

import (
	"strings"

	"github.com/jonathan/resume-fit/internal/types"
)

func (s *Store) cleanTaxonomy(in []types.SkillCategory) Taxonomy {
	out := make(Taxonomy, 0, len(in))
	owner := make(map[string]string)
	seenCategory := make(map[string]bool, len(in))

	for _, c := range in {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			s.warn("skills taxonomy: dropped category with empty name")
			continue
		}
		if seenCategory[name] {
			s.warn("skills taxonomy: duplicate category %q ignored", name)
			continue
		}
		seenCategory[name] = true

		skills := make([]string, 0, len(c.Skills))
		for _, skill := range c.Skills {
			skill = strings.TrimSpace(skill)
			if skill == "" {
				s.warn("skills taxonomy: dropped empty skill in category %q", name)
				continue
			}
			key := strings.ToLower(skill)
			if first, ok := owner[key]; ok {
				if first == name {
					s.warn("skills taxonomy: duplicate skill %q in category %q ignored", skill, name)
				} else {
					s.warn("skills taxonomy: skill %q already in category %q, ignored in %q", skill, first, name)
				}
				continue
			}
			owner[key] = name
			skills = append(skills, skill)
		}
		out = append(out, types.SkillCategory{Name: name, Skills: skills})
	}
	return out
}

func (s *Store) cleanRoles(in []types.RoleRequirement) []types.RoleRequirement {
	known := make(map[string]bool)
	for _, c := range s.taxonomy {
		for _, skill := range c.Skills {
			known[strings.ToLower(skill)] = true
		}
	}

	out := make([]types.RoleRequirement, 0, len(in))
	seen := make(map[string]bool, len(in))
	unknown := make(map[string]bool)

	for _, r := range in {
		role := strings.TrimSpace(r.Role)
		if role == "" {
			s.warn("role requirements: dropped role with empty name")
			continue
		}
		if seen[role] {
			s.warn("role requirements: duplicate role %q ignored", role)
			continue
		}
		seen[role] = true

		critical := cleanSkillList(r.CriticalSkills)
		recommended := cleanSkillList(r.RecommendedSkills)

		// Unknown skills are kept; the taxonomy can lag behind the role catalog.
		if len(s.taxonomy) > 0 {
			for _, skill := range append(append([]string{}, critical...), recommended...) {
				key := strings.ToLower(skill)
				if !known[key] && !unknown[key] {
					unknown[key] = true
					s.warn("role requirements: skill %q of role %q is not in the skills taxonomy", skill, role)
				}
			}
		}

		out = append(out, types.RoleRequirement{
			Role:              role,
			CriticalSkills:    critical,
			RecommendedSkills: recommended,
		})
	}
	return out
}

func (s *Store) cleanRoadmaps(in []types.Roadmap) (map[string][]string, []string) {
	roadmaps := make(map[string][]string, len(in))
	order := make([]string, 0, len(in))

	for _, rm := range in {
		role := strings.TrimSpace(rm.Role)
		if role == "" {
			s.warn("learning roadmaps: dropped roadmap with empty role name")
			continue
		}
		if _, ok := roadmaps[role]; ok {
			s.warn("learning roadmaps: duplicate roadmap for %q ignored", role)
			continue
		}
		steps := make([]string, 0, len(rm.Steps))
		for _, step := range rm.Steps {
			if step = strings.TrimSpace(step); step != "" {
				steps = append(steps, step)
			}
		}
		roadmaps[role] = steps
		order = append(order, role)
	}
	return roadmaps, order
}

// cleanSkillList trims names, drops empties and case-insensitive repeats. Never returns nil.
func cleanSkillList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, skill := range in {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if skill == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, skill)
	}
	return out
}
