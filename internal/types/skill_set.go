// Package types provides type definitions for structured data used throughout the resume-fit system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// SkillCategory is a named grouping of canonical skill names from the taxonomy.
type SkillCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// ExtractedSkillSet maps a taxonomy category to the skills found for it in one document.
// Every taxonomy category is present as a key, with an empty list when nothing matched.
type ExtractedSkillSet map[string][]string

// NewExtractedSkillSet returns a set with an empty list for every named category.
func NewExtractedSkillSet(categories []string) ExtractedSkillSet {
	set := make(ExtractedSkillSet, len(categories))
	for _, name := range categories {
		set[name] = []string{}
	}
	return set
}

// Count returns the total number of matched skills across all categories.
func (s ExtractedSkillSet) Count() int {
	total := 0
	for _, skills := range s {
		total += len(skills)
	}
	return total
}

// Categories returns the category names of the set. Names listed in order come first, in that
// order; the rest follow in lexical order.
func (s ExtractedSkillSet) Categories(order []string) []string {
	names := make([]string, 0, len(s))
	listed := make(map[string]bool, len(order))
	for _, name := range order {
		if _, ok := s[name]; ok && !listed[name] {
			listed[name] = true
			names = append(names, name)
		}
	}

	var rest []string
	for name := range s {
		if !listed[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
