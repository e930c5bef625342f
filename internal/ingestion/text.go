// Package ingestion turns resume files and job posting URLs into clean plain text.
package ingestion

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanText collapses every whitespace run (newlines and tabs included) into a single space
// and trims the result. Scoring works on a continuous stream of words, so layout is not kept.
func CleanText(content string) string {
	if content == "" {
		return ""
	}
	content = strings.ToValidUTF8(content, " ")
	content = strings.Map(dropControl, content)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(content, " "))
}

// dropControl maps non-printing control runes to spaces so they collapse with the surrounding whitespace.
func dropControl(r rune) rune {
	switch {
	case r == '\n' || r == '\t' || r == '\r':
		return r
	case r < 0x20 || r == 0x7f:
		return ' '
	default:
		return r
	}
}
