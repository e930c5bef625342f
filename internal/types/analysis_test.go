//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request AnalyzeRequest
		wantErr bool
		errMsg  string
	}{
		{
			name:    "resume only",
			request: AnalyzeRequest{ResumeText: "Python developer"},
		},
		{
			name: "resume with job description and target",
			request: AnalyzeRequest{
				ResumeText:     "Python developer",
				JobDescription: "Looking for Python",
				TargetRole:     "Data Scientist",
			},
		},
		{
			name: "resume with job url",
			request: AnalyzeRequest{
				ResumeText: "Python developer",
				JobURL:     "https://boards.greenhouse.io/acme/jobs/1",
			},
		},
		{
			name:    "missing resume",
			request: AnalyzeRequest{JobDescription: "Looking for Python"},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "malformed url",
			request: AnalyzeRequest{ResumeText: "x", JobURL: "not a url"},
			wantErr: true,
			errMsg:  "url",
		},
		{
			name: "description and url are mutually exclusive",
			request: AnalyzeRequest{
				ResumeText:     "x",
				JobDescription: "Looking for Python",
				JobURL:         "https://example.com/job",
			},
			wantErr: true,
			errMsg:  "excluded_with",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExtractedSkillSet_CategoriesFollowOrder(t *testing.T) {
	set := ExtractedSkillSet{"Web": {"Flask"}, "Cloud": {}, "Languages": {"Go"}, "Data": {}}

	got := set.Categories([]string{"Languages", "Web", "Unknown", "Web"})
	assert.Equal(t, []string{"Languages", "Web", "Cloud", "Data"}, got)
}

func TestNewExtractedSkillSet_AllCategoriesPresent(t *testing.T) {
	set := NewExtractedSkillSet([]string{"Databases", "Cloud"})

	require.Len(t, set, 2)
	assert.Empty(t, set["Databases"])
	assert.NotNil(t, set["Cloud"])
	assert.Equal(t, []string{"Cloud", "Databases"}, set.Categories(nil))
	assert.Equal(t, []string{"Databases", "Cloud"}, set.Categories([]string{"Databases", "Cloud"}))
	assert.Equal(t, 0, set.Count())

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Cloud":[],"Databases":[]}`, string(data))
}

func TestRankedRoleList_FindAndBest(t *testing.T) {
	list := RankedRoleList{
		{Role: "Data Scientist", Score: 90},
		{Role: "Backend Developer", Score: 40},
	}

	best, ok := list.Best()
	require.True(t, ok)
	assert.Equal(t, "Data Scientist", best.Role)

	found, ok := list.Find("Backend Developer")
	require.True(t, ok)
	assert.Equal(t, 40.0, found.Score)

	_, ok = list.Find("backend developer")
	assert.False(t, ok, "role lookup is exact")

	_, ok = RankedRoleList{}.Best()
	assert.False(t, ok)
}

func TestMatchResult_DegradedOmittedWhenEmpty(t *testing.T) {
	data, err := json.Marshal(MatchResult{OverallScore: 12.5, KeywordMatch: 10, SemanticMatch: 14.2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"overall_score":12.5,"keyword_match":10,"semantic_match":14.2}`, string(data))

	o := DegradedOutcome("embedder unavailable")
	assert.True(t, o.Degraded)
	assert.Zero(t, o.Value)
	assert.False(t, Computed(0).Degraded)
}
