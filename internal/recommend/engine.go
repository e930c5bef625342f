// Package recommend turns ranked roles into prioritized advice and a learning roadmap.
package recommend

import (
	"strings"

	"github.com/jonathan/resume-fit/internal/messages"
	"github.com/jonathan/resume-fit/internal/types"
)

// Rule thresholds
const (
	WeakMatchThreshold     = 50.0
	StrongMatchThreshold   = 80.0
	MaxMissingSkillsListed = 3
)

const messageFile = "recommendations.json"

// Fallback texts used when the embedded templates cannot be read.
const (
	fallbackCriticalSkill = "You are missing critical skills for {{.Role}}: {{.Skills}}."
	fallbackWeakMatch     = "Your profile is a weak match for {{.Role}}. Focus on building the foundational projects listed in the roadmap."
	fallbackStrongMatch   = "Excellent match! Focus on advanced system design and interview prep."
)

// RoadmapSource looks up learning steps by role name.
type RoadmapSource interface {
	Roadmap(role string) []string
}

// Engine produces recommendations. It is stateless apart from the read-only roadmaps.
type Engine struct {
	roadmaps RoadmapSource
}

// NewEngine returns an engine reading roadmaps from src. src may be nil.
func NewEngine(src RoadmapSource) *Engine {
	return &Engine{roadmaps: src}
}

// SelectTarget returns the entry named targetRole, or the best-ranked role when targetRole
// is empty or not in the list. ok is false only for an empty list.
func SelectTarget(ranked types.RankedRoleList, targetRole string) (types.RoleScore, bool) {
	if targetRole != "" {
		if r, ok := ranked.Find(targetRole); ok {
			return r, true
		}
	}
	return ranked.Best()
}

// Recommend evaluates every rule against the target role. An empty list yields no advice.
func (e *Engine) Recommend(ranked types.RankedRoleList, targetRole string) []types.Recommendation {
	recs := []types.Recommendation{}

	target, ok := SelectTarget(ranked, targetRole)
	if !ok {
		return recs
	}

	if missing := target.MissingCriticalSkills; len(missing) > 0 {
		if len(missing) > MaxMissingSkillsListed {
			missing = missing[:MaxMissingSkillsListed]
		}
		recs = append(recs, types.Recommendation{
			Type: types.RecommendationCriticalSkill,
			Text: messages.Format(messages.GetOr(messageFile, "critical_skill", fallbackCriticalSkill), map[string]string{
				"Role":   target.Role,
				"Skills": strings.Join(missing, ", "),
			}),
			Priority: types.PriorityHigh,
		})
	}

	switch {
	case target.Score < WeakMatchThreshold:
		recs = append(recs, types.Recommendation{
			Type: types.RecommendationStrategy,
			Text: messages.Format(messages.GetOr(messageFile, "weak_match", fallbackWeakMatch), map[string]string{
				"Role": target.Role,
			}),
			Priority: types.PriorityHigh,
		})
	case target.Score > StrongMatchThreshold:
		recs = append(recs, types.Recommendation{
			Type:     types.RecommendationStrategy,
			Text:     messages.GetOr(messageFile, "strong_match", fallbackStrongMatch),
			Priority: types.PriorityMedium,
		})
	}

	return recs
}

// Roadmap returns the learning steps for role, empty for an unknown role.
func (e *Engine) Roadmap(role string) []string {
	if e.roadmaps == nil {
		return []string{}
	}
	steps := e.roadmaps.Roadmap(role)
	if steps == nil {
		return []string{}
	}
	return steps
}
