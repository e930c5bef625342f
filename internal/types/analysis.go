//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// AnalyzeRequest is the JSON body accepted by the analyze endpoints.
type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description,omitempty" validate:"excluded_with=JobURL"`
	JobURL         string `json:"job_url,omitempty" validate:"omitempty,url"`
	TargetRole     string `json:"target_role,omitempty" validate:"max=200"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// MatchRequest is the JSON body accepted by the match endpoint.
type MatchRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

// AnalysisInput is the pipeline input once documents have been turned into text.
type AnalysisInput struct {
	ResumeText     string
	JobDescription string
	TargetRole     string
	// Warnings carries ingestion problems (unreadable upload, failed URL fetch) into the result.
	Warnings []string
}

// Analysis is the combined output of the skills path and the matching path.
type Analysis struct {
	ID              string            `json:"id"`
	Skills          ExtractedSkillSet `json:"skills"`
	Roles           RankedRoleList    `json:"roles"`
	Match           MatchResult       `json:"match"`
	Recommendations []Recommendation  `json:"recommendations"`
	Roadmap         []string          `json:"roadmap"`

	// TargetRole is the role the roadmap was built for: the requested role, or the best fit.
	TargetRole string   `json:"target_role,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}
