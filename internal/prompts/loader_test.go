package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownKeys(t *testing.T) {
	persona, err := Get("analysis.json", "system_persona")
	require.NoError(t, err)
	assert.Contains(t, persona, "ATS")

	roadmap, err := Get("roadmap.json", "generate")
	require.NoError(t, err)
	assert.Contains(t, roadmap, "8-week")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("analysis.json", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "system_persona")
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := Format("role: {{.TargetRole}} / skills: {{.Skills}}", map[string]string{
		"TargetRole": "Data Engineer",
		"Skills":     "Spark, Airflow",
	})
	assert.Equal(t, "role: Data Engineer / skills: Spark, Airflow", out)
}

func TestResumeAnalysis_InterpolatesVerbatim(t *testing.T) {
	resume := `John "JD" Doe — 10 years of {unusual} text`
	prompt := ResumeAnalysis(resume, "Senior Backend Engineer")

	assert.Contains(t, prompt, resume)
	assert.Equal(t, 2, strings.Count(prompt, `"Senior Backend Engineer"`))
	assert.NotContains(t, prompt, "{{.ResumeText}}")
	assert.NotContains(t, prompt, "{{.TargetRole}}")
}

func TestRoadmap_JoinsSkills(t *testing.T) {
	prompt := Roadmap([]string{"Docker", "Kubernetes"}, "Platform Engineer")

	assert.Contains(t, prompt, "Docker, Kubernetes")
	assert.Contains(t, prompt, "Platform Engineer")
	assert.Contains(t, prompt, "EXACTLY 8 weekly milestones")
}

func TestSkillGap_EmptySkills(t *testing.T) {
	prompt := SkillGap(nil, "Data Scientist")
	assert.Contains(t, prompt, "None identified")
}
