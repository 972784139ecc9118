package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillsense/ai-engine/internal/types"
)

func TestPrintATSScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintATSScore(types.ATSScore{
		Overall: 78,
		Breakdown: types.ATSScoreBreakdown{
			Formatting: 85, Keywords: 72, Experience: 80, Education: 90, Skills: 65,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "ATS SCORE")
	assert.Contains(t, out, "78 / 100")
	assert.Contains(t, out, "Keywords:     72")
}

func TestPrintSkillGap_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	gap := types.SkillGapAnalysis{
		MissingSkills: []string{"A", "B", "C", "D", "E", "F", "G"},
	}
	p.PrintSkillGap(gap)

	out := buf.String()
	assert.Contains(t, out, "Missing Skills:")
	assert.Contains(t, out, "... and 2 more")
}

func TestPrintSkillGap_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSkillGap(types.SkillGapAnalysis{})
	assert.Contains(t, buf.String(), "No gaps identified")
}

func TestPrintSuggestions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSuggestions([]types.Suggestion{
		{
			Category:       "keywords",
			Priority:       "critical",
			Issue:          "Missing cloud keywords",
			Recommendation: "Name specific technologies",
		},
	})

	out := buf.String()
	assert.Contains(t, out, "SUGGESTIONS")
	assert.Contains(t, out, "[keywords/critical]")
	assert.Contains(t, out, "Missing cloud keywords")
}

func TestPrintRoadmap(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRoadmap(&types.RoadmapResult{
		Milestones: []types.RoadmapMilestone{
			{Title: "Week 1: Basics", Tasks: []types.RoadmapTask{{Description: "Read docs"}}},
			{Title: "Week 2: Practice", Tasks: []types.RoadmapTask{{Description: "Build a project"}}},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "LEARNING ROADMAP")
	assert.Contains(t, out, "Plan length: 2 weeks")
	assert.Contains(t, out, "Week 1: Basics")
	assert.Contains(t, out, "Build a project")
}

func TestPrintAnalysis_NilSafe(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(nil)
	p.PrintRoadmap(nil)
	assert.Empty(t, buf.String())
}
