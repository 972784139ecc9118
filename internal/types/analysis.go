package types

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SkillLevel is a skill proficiency level. Values decode case-insensitively
// and are normalized to lowercase.
type SkillLevel string

// Skill proficiency levels.
const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
)

// UnmarshalJSON lowercases the value so model output like "Beginner" decodes
// to the canonical form before enum validation.
func (l *SkillLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = SkillLevel(strings.ToLower(strings.TrimSpace(s)))
	return nil
}

// SkillPriority is the learning priority for a skill to improve.
type SkillPriority string

// Skill priorities.
const (
	PriorityHigh   SkillPriority = "high"
	PriorityMedium SkillPriority = "medium"
	PriorityLow    SkillPriority = "low"
)

// UnmarshalJSON normalizes the value to lowercase.
func (p *SkillPriority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = SkillPriority(strings.ToLower(strings.TrimSpace(s)))
	return nil
}

// SuggestionCategory classifies a resume improvement suggestion.
type SuggestionCategory string

// UnmarshalJSON normalizes the value to lowercase.
func (c *SuggestionCategory) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = SuggestionCategory(strings.ToLower(strings.TrimSpace(s)))
	return nil
}

// SuggestionPriority is the impact level of a suggestion.
type SuggestionPriority string

// UnmarshalJSON normalizes the value to lowercase.
func (p *SuggestionPriority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = SuggestionPriority(strings.ToLower(strings.TrimSpace(s)))
	return nil
}

// ATSScoreBreakdown is the per-component breakdown of the ATS score.
type ATSScoreBreakdown struct {
	Formatting int `json:"formatting" validate:"min=0,max=100"`
	Keywords   int `json:"keywords" validate:"min=0,max=100"`
	Experience int `json:"experience" validate:"min=0,max=100"`
	Education  int `json:"education" validate:"min=0,max=100"`
	Skills     int `json:"skills" validate:"min=0,max=100"`
}

// ATSScore is the overall ATS compatibility score with its breakdown.
type ATSScore struct {
	Overall   int               `json:"overall" validate:"min=0,max=100"`
	Breakdown ATSScoreBreakdown `json:"breakdown"`
}

// SkillToImprove is a skill present on the resume that needs improvement.
type SkillToImprove struct {
	Skill        string        `json:"skill" validate:"required"`
	CurrentLevel SkillLevel    `json:"current_level" validate:"required,oneof=beginner intermediate advanced"`
	TargetLevel  SkillLevel    `json:"target_level" validate:"required,oneof=beginner intermediate advanced"`
	Priority     SkillPriority `json:"priority" validate:"required,oneof=high medium low"`
}

// SkillGapAnalysis compares resume skills against the target role.
type SkillGapAnalysis struct {
	CurrentSkills   []string         `json:"current_skills"`
	RequiredSkills  []string         `json:"required_skills"`
	MissingSkills   []string         `json:"missing_skills"`
	SkillsToImprove []SkillToImprove `json:"skills_to_improve"`
}

// Suggestion is one actionable resume improvement.
type Suggestion struct {
	Category       SuggestionCategory `json:"category" validate:"required,oneof=formatting content keywords experience education"`
	Priority       SuggestionPriority `json:"priority" validate:"required,oneof=critical important optional"`
	Issue          string             `json:"issue" validate:"required"`
	Recommendation string             `json:"recommendation" validate:"required"`
	ExampleBefore  string             `json:"example_before"`
	ExampleAfter   string             `json:"example_after"`
}

// ResumeAnalysisResult is the complete validated analysis returned to the
// caller. Every enum field must take one of its closed values or the whole
// result is rejected.
type ResumeAnalysisResult struct {
	ATSScore     ATSScore         `json:"ats_score"`
	SkillGap     SkillGapAnalysis `json:"skill_gap_analysis"`
	Suggestions  []Suggestion     `json:"suggestions" validate:"required,min=1"`
	AnalyzedAt   string           `json:"analyzed_at" validate:"required"`
	ModelVersion string           `json:"model_version" validate:"required"`
}

// Validate validates the decoded result using the validator.
func (r *ResumeAnalysisResult) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SkillGapResult is the standalone skill gap analysis payload.
type SkillGapResult struct {
	CurrentSkills   []string         `json:"current_skills"`
	RequiredSkills  []string         `json:"required_skills"`
	MissingSkills   []string         `json:"missing_skills"`
	SkillsToImprove []SkillToImprove `json:"skills_to_improve"`
	AnalyzedAt      string           `json:"analyzed_at,omitempty"`
	ModelVersion    string           `json:"model_version,omitempty"`
}

// Validate validates the decoded result using the validator.
func (r *SkillGapResult) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
