// Package service orchestrates prompt rendering, provider invocation and
// response validation for resume analysis and roadmap generation.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/skillsense/ai-engine/internal/config"
	"github.com/skillsense/ai-engine/internal/prompts"
	"github.com/skillsense/ai-engine/internal/provider"
	"github.com/skillsense/ai-engine/internal/schemas"
	"github.com/skillsense/ai-engine/internal/types"
)

// Service runs analysis operations against a single bound provider.
// Upstream calls share a weighted semaphore so a traffic spike cannot open
// an unbounded number of in-flight vendor requests.
type Service struct {
	provider provider.Provider
	cfg      *config.Config
	limiter  *semaphore.Weighted
}

// New creates a service bound to the given provider and configuration.
func New(p provider.Provider, cfg *config.Config) *Service {
	return &Service{
		provider: p,
		cfg:      cfg,
		limiter:  semaphore.NewWeighted(int64(cfg.MaxConcurrentCalls)),
	}
}

// Provider returns the bound provider.
func (s *Service) Provider() provider.Provider {
	return s.provider
}

// AnalyzeResume analyzes a resume against a target role and returns the
// validated result. Analysis is a single upstream call with no retries;
// transient failures surface to the caller as retryable provider errors.
func (s *Service) AnalyzeResume(ctx context.Context, req types.ResumeAnalysisRequest) (*types.ResumeAnalysisResult, error) {
	start := time.Now()
	log.Printf("[service] analyzing resume for role %q (resume: %d chars)", req.TargetRole, len(req.ResumeText))

	raw, err := s.complete(ctx, prompts.SystemPersona(), prompts.ResumeAnalysis(req.ResumeText, req.TargetRole))
	if err != nil {
		return nil, s.classify(err)
	}

	if err := schemas.ValidateAnalysis(raw); err != nil {
		log.Printf("[service] analysis response failed schema validation: %v", err)
		return nil, provider.NewError(provider.KindInvalidResponse, s.provider.Name(), "analysis response failed schema validation", err)
	}

	var result types.ResumeAnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, provider.NewError(provider.KindInvalidResponse, s.provider.Name(), "failed to decode analysis response", err)
	}

	result.AnalyzedAt = timestamp()
	result.ModelVersion = s.provider.Model()

	if err := result.Validate(); err != nil {
		log.Printf("[service] analysis response failed field validation: %v", err)
		return nil, provider.NewError(provider.KindInvalidResponse, s.provider.Name(), "analysis response failed validation", err)
	}

	log.Printf("[service] resume analysis completed in %v (score: %d)", time.Since(start), result.ATSScore.Overall)
	return &result, nil
}

// GenerateRoadmap generates a learning roadmap for the given missing skills.
// Per-milestone shape is enforced strictly; the 8-week count is requested by
// prompt and only logged when the model deviates.
func (s *Service) GenerateRoadmap(ctx context.Context, req types.RoadmapRequest) (*types.RoadmapResult, error) {
	start := time.Now()
	log.Printf("[service] generating roadmap for role %q (%d skills)", req.TargetRole, len(req.MissingSkills))

	raw, err := s.complete(ctx, prompts.RoadmapSystem(), prompts.Roadmap(req.MissingSkills, req.TargetRole))
	if err != nil {
		return nil, s.classify(err)
	}

	if err := schemas.ValidateRoadmap(raw); err != nil {
		log.Printf("[service] roadmap response failed schema validation: %v", err)
		return nil, provider.NewError(provider.KindInvalidResponse, s.provider.Name(), "roadmap response failed schema validation", err)
	}

	var result types.RoadmapResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, provider.NewError(provider.KindInvalidResponse, s.provider.Name(), "failed to decode roadmap response", err)
	}

	if len(result.Milestones) != types.ExpectedMilestones {
		log.Printf("[service] roadmap has %d milestones, expected %d", len(result.Milestones), types.ExpectedMilestones)
	}

	result.GeneratedAt = timestamp()
	result.ModelVersion = s.provider.Model()

	log.Printf("[service] roadmap generated in %v (%d milestones)", time.Since(start), len(result.Milestones))
	return &result, nil
}

// AnalyzeSkillGap compares current skills against a target role without a
// full resume.
func (s *Service) AnalyzeSkillGap(ctx context.Context, req types.SkillGapRequest) (*types.SkillGapResult, error) {
	start := time.Now()
	log.Printf("[service] analyzing skill gap for role %q (%d skills)", req.TargetRole, len(req.CurrentSkills))

	raw, err := s.complete(ctx, prompts.SystemPersona(), prompts.SkillGap(req.CurrentSkills, req.TargetRole))
	if err != nil {
		return nil, s.classify(err)
	}

	if err := schemas.ValidateSkillGap(raw); err != nil {
		log.Printf("[service] skill gap response failed schema validation: %v", err)
		return nil, provider.NewError(provider.KindInvalidResponse, s.provider.Name(), "skill gap response failed schema validation", err)
	}

	var result types.SkillGapResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, provider.NewError(provider.KindInvalidResponse, s.provider.Name(), "failed to decode skill gap response", err)
	}

	result.AnalyzedAt = timestamp()
	result.ModelVersion = s.provider.Model()

	if err := result.Validate(); err != nil {
		log.Printf("[service] skill gap response failed field validation: %v", err)
		return nil, provider.NewError(provider.KindInvalidResponse, s.provider.Name(), "skill gap response failed validation", err)
	}

	log.Printf("[service] skill gap analysis completed in %v", time.Since(start))
	return &result, nil
}

// HealthCheck reports overall service health. It never returns an error; a
// failing provider downgrades the status instead.
func (s *Service) HealthCheck(ctx context.Context) types.HealthCheckResponse {
	health := s.provider.HealthCheck(ctx)

	status := "healthy"
	if !health.Status.OK() {
		status = "degraded"
	}

	return types.HealthCheckResponse{
		Status:           status,
		Service:          s.cfg.ServiceName,
		Version:          s.cfg.ServiceVersion,
		Timestamp:        timestamp(),
		AIProvider:       s.provider.Name(),
		AIProviderStatus: string(health.Status),
	}
}

// complete runs one JSON-mode completion under the concurrency cap and the
// configured per-call deadline.
func (s *Service) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := s.limiter.Acquire(ctx, 1); err != nil {
		return "", provider.NewError(provider.KindConnection, s.provider.Name(), "request canceled while waiting for capacity", err)
	}
	defer s.limiter.Release(1)

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	return s.provider.GenerateCompletion(callCtx, provider.CompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		JSONMode:     true,
	})
}

// classify guarantees callers always see a classified provider error, even
// if an implementation returned a bare one.
func (s *Service) classify(err error) error {
	if _, ok := provider.AsError(err); ok {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return provider.NewError(provider.KindConnection, s.provider.Name(), "request deadline exceeded", err)
	}
	return provider.NewError(provider.KindGeneric, s.provider.Name(), "completion failed", err)
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
