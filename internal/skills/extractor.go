// Package skills finds taxonomy skills mentioned in free text.
package skills

import (
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resume-fit/internal/logger"
	"github.com/jonathan/resume-fit/internal/parsing"
	"github.com/jonathan/resume-fit/internal/types"
)

// compilePattern builds the whole-word pattern for a lowercased skill.
var compilePattern = func(lower string) (*regexp.Regexp, error) {
	return regexp.Compile(`\b` + regexp.QuoteMeta(lower) + `\b`)
}

type matcher struct {
	category string
	skill    string
	lower    string
	pattern  *regexp.Regexp // nil when the pattern could not be built
	symbolic bool           // contains a space, digit or symbol
}

// Extractor matches text against a skills taxonomy. It is immutable and safe for concurrent use.
type Extractor struct {
	categories []string
	matchers   []matcher
	skipped    []string
}

// NewExtractor precompiles one pattern per taxonomy skill.
// Skills whose pattern cannot be built are reported by Skipped and matched by token or substring only.
func NewExtractor(taxonomy []types.SkillCategory, log *zap.Logger) *Extractor {
	log = logger.Named(log, "skills")

	e := &Extractor{categories: make([]string, 0, len(taxonomy))}
	for _, c := range taxonomy {
		e.categories = append(e.categories, c.Name)
		for _, skill := range c.Skills {
			lower := strings.ToLower(skill)
			m := matcher{
				category: c.Name,
				skill:    skill,
				lower:    lower,
				symbolic: !isAlpha(lower),
			}
			pattern, err := compilePattern(lower)
			if err != nil {
				log.Warn("skipping skill pattern", zap.String("skill", skill), zap.Error(err))
				e.skipped = append(e.skipped, skill)
			} else {
				m.pattern = pattern
			}
			e.matchers = append(e.matchers, m)
		}
	}

	log.Debug("skill extractor ready",
		zap.Int("categories", len(e.categories)),
		zap.Int("skills", len(e.matchers)),
		zap.Int("skipped", len(e.skipped)))

	return e
}

// Skipped lists skills whose whole-word pattern could not be built.
func (e *Extractor) Skipped() []string {
	return e.skipped
}

// Extract returns the skills found in rawText. tokens is the normalized token set of the same text.
// A skill matches when its lowercase form is a token, when it occurs as a whole word or phrase,
// or, for skills with non-letter characters such as "C++", when it occurs as a substring.
// Every category is present in the result.
func (e *Extractor) Extract(tokens map[string]struct{}, rawText string) types.ExtractedSkillSet {
	result := types.NewExtractedSkillSet(e.categories)
	if len(tokens) == 0 && strings.TrimSpace(rawText) == "" {
		return result
	}

	text := cases.Lower(language.English).String(rawText)
	seen := make(map[string]bool)

	for _, m := range e.matchers {
		key := m.category + "\x00" + m.lower
		if seen[key] || !m.matches(tokens, text) {
			continue
		}
		seen[key] = true
		result[m.category] = append(result[m.category], m.skill)
	}
	return result
}

// ExtractText normalizes rawText with n and extracts skills from it.
func (e *Extractor) ExtractText(n parsing.Normalizer, rawText string) types.ExtractedSkillSet {
	return e.Extract(parsing.TokenSet(n.Tokenize(rawText)), rawText)
}

func (m matcher) matches(tokens map[string]struct{}, text string) bool {
	if _, ok := tokens[m.lower]; ok {
		return true
	}
	if m.pattern != nil && m.pattern.MatchString(text) {
		return true
	}
	return m.symbolic && strings.Contains(text, m.lower)
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
