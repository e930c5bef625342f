//nolint:revive // types is a standard Go package name pattern
package types

// Outcome is a sub-score in [0,1] that remembers whether it was computed or defaulted.
type Outcome struct {
	Value    float64 `json:"value"`
	Degraded bool    `json:"degraded,omitempty"`
	Reason   string  `json:"reason,omitempty"`
}

// Computed wraps a successfully computed value.
func Computed(v float64) Outcome {
	return Outcome{Value: v}
}

// DegradedOutcome is the neutral 0.0 substituted for a failed computation.
func DegradedOutcome(reason string) Outcome {
	return Outcome{Value: 0, Degraded: true, Reason: reason}
}

// MatchResult holds the fused resume/job-description similarity, each field a percentage
// rounded to one decimal.
type MatchResult struct {
	OverallScore  float64 `json:"overall_score"`
	KeywordMatch  float64 `json:"keyword_match"`
	SemanticMatch float64 `json:"semantic_match"`
	// Degraded names the sub-scores ("keyword", "semantic") that failed and were set to 0.
	Degraded []string `json:"degraded,omitempty"`
}
