// Package types defines the request and response types exchanged over the
// REST API, including the structured results decoded from model output.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ResumeAnalysisRequest is the body of POST /analyze-resume.
type ResumeAnalysisRequest struct {
	ResumeText string `json:"resume_text" validate:"required,min=100,max=50000"`
	TargetRole string `json:"target_role" validate:"required,min=2,max=200"`
}

// Validate validates the request using the validator. Fields are trimmed
// before length checks so whitespace padding cannot satisfy the minimums.
func (r *ResumeAnalysisRequest) Validate() error {
	r.ResumeText = strings.TrimSpace(r.ResumeText)
	r.TargetRole = strings.TrimSpace(r.TargetRole)
	validate := validator.New()
	return validate.Struct(r)
}

// RoadmapRequest is the body of POST /generate-roadmap.
type RoadmapRequest struct {
	MissingSkills []string `json:"missing_skills" validate:"required,min=1,dive,required"`
	TargetRole    string   `json:"target_role" validate:"required,min=2,max=200"`
}

// Validate validates the request using the validator.
func (r *RoadmapRequest) Validate() error {
	r.TargetRole = strings.TrimSpace(r.TargetRole)
	validate := validator.New()
	return validate.Struct(r)
}

// SkillGapRequest is the body of POST /skill-gap.
type SkillGapRequest struct {
	CurrentSkills []string `json:"current_skills"`
	TargetRole    string   `json:"target_role" validate:"required,min=2,max=200"`
}

// Validate validates the request using the validator.
func (r *SkillGapRequest) Validate() error {
	r.TargetRole = strings.TrimSpace(r.TargetRole)
	validate := validator.New()
	return validate.Struct(r)
}
