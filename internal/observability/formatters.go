// Package observability provides formatted output utilities for human-readable CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-fit/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out        io.Writer
	categories []string
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// WithCategoryOrder makes PrintSkills list categories in the given order, usually the taxonomy's.
func (p *Printer) WithCategoryOrder(names []string) *Printer {
	p.categories = names
	return p
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most width runes.
func clip(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// PrintAnalysis prints every section of an analysis in pipeline order.
func (p *Printer) PrintAnalysis(a *types.Analysis) {
	if a == nil {
		return
	}
	p.PrintSkills(a.Skills)
	p.PrintRoles(a.Roles)
	p.PrintMatch(a.Match)
	p.PrintRecommendations(a.Recommendations)
	p.PrintRoadmap(a.TargetRole, a.Roadmap)
	p.PrintWarnings(a.Warnings)
}

// PrintSkills outputs the matched skills grouped by category. Empty categories are omitted.
func (p *Printer) PrintSkills(set types.ExtractedSkillSet) {
	if set == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills found: %d\n", set.Count()))

	for _, category := range set.Categories(p.categories) {
		skills := set[category]
		if len(skills) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s:\n", category))
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Join(skills, ", ")))
	}

	p.printBox("EXTRACTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoles outputs the top ranked roles with their missing critical skills.
func (p *Printer) PrintRoles(roles types.RankedRoleList) {
	if len(roles) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Roles ranked: %d\n\n", len(roles)))

	count := min(len(roles), maxItemsToShow)
	for i := 0; i < count; i++ {
		role := roles[i]
		sb.WriteString(fmt.Sprintf("#%d  %-30s %5.1f%%\n", i+1, role.Role, role.Score))
		if len(role.MissingCriticalSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Missing: %s\n", strings.Join(role.MissingCriticalSkills, ", ")))
		}
	}

	if len(roles) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more roles", len(roles)-maxItemsToShow))
	}

	p.printBox("ROLE FIT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatch outputs the resume/job description similarity scores.
func (p *Printer) PrintMatch(m types.MatchResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:   %5.1f%%\n", m.OverallScore))
	sb.WriteString(fmt.Sprintf("Keyword:   %5.1f%%\n", m.KeywordMatch))
	sb.WriteString(fmt.Sprintf("Semantic:  %5.1f%%", m.SemanticMatch))
	if len(m.Degraded) > 0 {
		sb.WriteString(fmt.Sprintf("\n\n⚠ unavailable: %s", strings.Join(m.Degraded, ", ")))
	}

	p.printBox("JOB MATCH", sb.String())
}

// PrintRecommendations outputs each recommendation with its priority.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		return
	}

	var sb strings.Builder
	for i, rec := range recs {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", rec.Priority, rec.Type))
		for _, line := range wrap(rec.Text, boxWidth-6) {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
		if i < len(recs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoadmap outputs the numbered learning steps for a role.
func (p *Printer) PrintRoadmap(role string, steps []string) {
	if len(steps) == 0 {
		return
	}

	var sb strings.Builder
	for i, step := range steps {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
	}

	title := "LEARNING ROADMAP"
	if role != "" {
		title += ": " + role
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs problems that did not stop the analysis.
func (p *Printer) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	var sb strings.Builder
	for _, w := range warnings {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", w))
	}

	p.printBox("WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap splits text into lines no wider than width runes, breaking on spaces.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		if len([]rune(current))+1+len([]rune(w)) > width {
			lines = append(lines, current)
			current = w
			continue
		}
		current += " " + w
	}
	return append(lines, current)
}
