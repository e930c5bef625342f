//nolint:revive // types is a standard Go package name pattern
package types

// Priority ranks how urgently a recommendation should be acted on.
type Priority string

// Priority levels
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Recommendation type tags
const (
	RecommendationCriticalSkill = "Critical Skill"
	RecommendationStrategy      = "Strategy"
)

// Recommendation is one piece of advice derived from the ranked roles.
type Recommendation struct {
	Type     string   `json:"type"`
	Text     string   `json:"text"`
	Priority Priority `json:"priority"`
}
