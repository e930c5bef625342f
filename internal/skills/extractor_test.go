package skills

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/parsing"
	"github.com/jonathan/resume-fit/internal/types"
)

func testTaxonomy() []types.SkillCategory {
	return []types.SkillCategory{
		{Name: "Programming Languages", Skills: []string{"Python", "Go", "C++", "C#", "R"}},
		{Name: "Web Development", Skills: []string{"Node.js", "Flask", "REST APIs"}},
		{Name: "Data Science", Skills: []string{"Machine Learning", "Scikit-learn", "Pandas"}},
		{Name: "Cloud & DevOps", Skills: []string{"Kubernetes", "CI/CD"}},
		{Name: "Design", Skills: []string{"Figma"}},
	}
}

func extract(t *testing.T, text string) types.ExtractedSkillSet {
	t.Helper()
	e := NewExtractor(testTaxonomy(), zap.NewNop())
	return e.ExtractText(parsing.NewNormalizer(), text)
}

func TestExtract_AllCategoriesPresent(t *testing.T) {
	got := extract(t, "")
	require.Len(t, got, 5)
	for _, skills := range got {
		assert.NotNil(t, skills)
		assert.Empty(t, skills)
	}
}

func TestExtract_Matching(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		category string
		expected []string
	}{
		{"token match", "Senior Python engineer", "Programming Languages", []string{"Python"}},
		{"case insensitive", "PYTHON and go", "Programming Languages", []string{"Python", "Go"}},
		{"symbol skills via substring", "Wrote C++ and C# services", "Programming Languages", []string{"C++", "C#"}},
		{"multi word phrase", "Applied machine learning daily", "Data Science", []string{"Machine Learning"}},
		{"hyphenated", "Models built with scikit-learn", "Data Science", []string{"Scikit-learn"}},
		{"dotted", "Backend in Node.js", "Web Development", []string{"Node.js"}},
		{"phrase with plural", "Designed REST APIs for partners", "Web Development", []string{"REST APIs"}},
		{"slash skill", "Owned the CI/CD pipeline", "Cloud & DevOps", []string{"CI/CD"}},
		{"catalog order not text order", "Pandas first, then scikit-learn and machine learning", "Data Science",
			[]string{"Machine Learning", "Scikit-learn", "Pandas"}},
		{"no partial word match", "Figmaster is not a design tool", "Design", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract(t, tt.text)
			assert.Equal(t, tt.expected, got[tt.category])
		})
	}
}

func TestExtract_DuplicatesCollapsed(t *testing.T) {
	got := extract(t, "Python, python and more Python")
	assert.Equal(t, []string{"Python"}, got["Programming Languages"])
}

func TestExtract_ShortSkillFalsePositive(t *testing.T) {
	// The "r" in "R&D" counts as the R language; short skills trade precision for recall.
	got := extract(t, "Led the R&D team")
	assert.Contains(t, got["Programming Languages"], "R")
}

func TestExtract_NoAbbreviationOrStemMatches(t *testing.T) {
	e := NewExtractor([]types.SkillCategory{
		{Name: "Web", Skills: []string{"Node.js", "TypeScript", "Machine Learning", "TensorFlow"}},
		{Name: "Analytics & BI", Skills: []string{"Excel"}},
		{Name: "Programming Languages", Skills: []string{"Swift"}},
		{Name: "Frameworks", Skills: []string{"Express"}},
	}, zap.NewNop())
	n := parsing.NewNormalizer()

	tests := []struct {
		name string
		text string
	}{
		{"abbreviations", "Maintained each node of the on-prem cluster. Held a TS/SCI clearance. Wrote TF state files. Ran ML ops reviews."},
		{"derived words", "Excellent communicator with an expressive, sparkling personality who swiftly delivers."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ExtractText(n, tt.text)
			assert.Equal(t, 0, got.Count(), "unexpected skills: %v", got)
		})
	}
}

func TestExtract_TokensOnly(t *testing.T) {
	e := NewExtractor(testTaxonomy(), nil)
	got := e.Extract(map[string]struct{}{"figma": {}}, "")
	assert.Equal(t, []string{"Figma"}, got["Design"])
}

func TestNewExtractor_SkipsBrokenPatterns(t *testing.T) {
	orig := compilePattern
	t.Cleanup(func() { compilePattern = orig })
	compilePattern = func(lower string) (*regexp.Regexp, error) {
		if lower == "flask" {
			return nil, errors.New("boom")
		}
		return orig(lower)
	}

	e := NewExtractor(testTaxonomy(), zap.NewNop())
	assert.Equal(t, []string{"Flask"}, e.Skipped())

	// Token matching still works for the skipped skill; the rest of the document is unaffected.
	got := e.ExtractText(parsing.NewNormalizer(), "Flask and Python")
	assert.Equal(t, []string{"Flask"}, got["Web Development"])
	assert.Equal(t, []string{"Python"}, got["Programming Languages"])
}

func TestExtract_EmptyTaxonomy(t *testing.T) {
	e := NewExtractor(nil, nil)
	assert.Empty(t, e.ExtractText(parsing.NewNormalizer(), "Python"))
}
