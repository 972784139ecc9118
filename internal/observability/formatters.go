// Package observability provides formatted output utilities for CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/skillsense/ai-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for CLI analysis runs
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
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
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintATSScore outputs the overall score and its breakdown.
func (p *Printer) PrintATSScore(score types.ATSScore) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Overall:     %3d / 100\n", score.Overall))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Formatting:  %3d\n", score.Breakdown.Formatting))
	sb.WriteString(fmt.Sprintf("Keywords:    %3d\n", score.Breakdown.Keywords))
	sb.WriteString(fmt.Sprintf("Experience:  %3d\n", score.Breakdown.Experience))
	sb.WriteString(fmt.Sprintf("Education:   %3d\n", score.Breakdown.Education))
	sb.WriteString(fmt.Sprintf("Skills:      %3d", score.Breakdown.Skills))

	p.printBox("ATS SCORE", sb.String())
}

// PrintSkillGap outputs the skill gap analysis summary.
func (p *Printer) PrintSkillGap(gap types.SkillGapAnalysis) {
	var sb strings.Builder

	if len(gap.MissingSkills) > 0 {
		sb.WriteString("Missing Skills:\n")
		count := min(len(gap.MissingSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", gap.MissingSkills[i]))
		}
		if len(gap.MissingSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(gap.MissingSkills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(gap.SkillsToImprove) > 0 {
		sb.WriteString("Skills to Improve:\n")
		count := min(len(gap.SkillsToImprove), maxItemsToShow)
		for i := 0; i < count; i++ {
			s := gap.SkillsToImprove[i]
			sb.WriteString(fmt.Sprintf("  • %s: %s → %s (%s)\n", s.Skill, s.CurrentLevel, s.TargetLevel, s.Priority))
		}
		if len(gap.SkillsToImprove) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(gap.SkillsToImprove)-maxItemsToShow))
		}
	}

	if sb.Len() == 0 {
		sb.WriteString("No gaps identified")
	}

	p.printBox("SKILL GAP ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs the top improvement suggestions.
func (p *Printer) PrintSuggestions(suggestions []types.Suggestion) {
	if len(suggestions) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total suggestions: %d\n\n", len(suggestions)))

	count := min(len(suggestions), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := suggestions[i]
		sb.WriteString(fmt.Sprintf("#%d  [%s/%s]\n", i+1, s.Category, s.Priority))

		issue := s.Issue
		if len(issue) > 50 {
			issue = issue[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("    %s\n", issue))

		rec := s.Recommendation
		if len(rec) > 50 {
			rec = rec[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("    → %s\n", rec))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(suggestions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more suggestions", len(suggestions)-maxItemsToShow))
	}

	p.printBox("SUGGESTIONS", sb.String())
}

// PrintAnalysis outputs the complete resume analysis.
func (p *Printer) PrintAnalysis(result *types.ResumeAnalysisResult) {
	if result == nil {
		return
	}
	p.PrintATSScore(result.ATSScore)
	p.PrintSkillGap(result.SkillGap)
	p.PrintSuggestions(result.Suggestions)
}

// PrintRoadmap outputs the weekly milestones of a learning roadmap.
func (p *Printer) PrintRoadmap(result *types.RoadmapResult) {
	if result == nil || len(result.Milestones) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Plan length: %d weeks\n", len(result.Milestones)))

	for i, m := range result.Milestones {
		sb.WriteString("\n")
		title := m.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("%s\n", title))
		for _, task := range m.Tasks {
			desc := task.Description
			if len(desc) > 48 {
				desc = desc[:45] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", desc))
		}
		if i == len(result.Milestones)-1 {
			break
		}
	}

	p.printBox("LEARNING ROADMAP", strings.TrimSuffix(sb.String(), "\n"))
}
