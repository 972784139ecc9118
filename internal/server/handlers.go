package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/skillsense/ai-engine/internal/provider"
	"github.com/skillsense/ai-engine/internal/types"
)

// maxBodyBytes caps request bodies well above the largest accepted resume.
const maxBodyBytes = 1 << 20

// handleAnalyzeResume runs a full resume analysis.
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	var req types.ResumeAnalysisRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.validationError(w, err)
		return
	}

	result, err := s.svc.AnalyzeResume(r.Context(), req)
	if err != nil {
		s.providerError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleGenerateRoadmap generates a learning roadmap for missing skills.
func (s *Server) handleGenerateRoadmap(w http.ResponseWriter, r *http.Request) {
	var req types.RoadmapRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.validationError(w, err)
		return
	}

	result, err := s.svc.GenerateRoadmap(r.Context(), req)
	if err != nil {
		s.providerError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleSkillGap compares current skills against a target role.
func (s *Server) handleSkillGap(w http.ResponseWriter, r *http.Request) {
	var req types.SkillGapRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.validationError(w, err)
		return
	}

	result, err := s.svc.AnalyzeSkillGap(r.Context(), req)
	if err != nil {
		s.providerError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleHealth reports service and provider health. It always returns 200;
// orchestrators read the status field, not the status code.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.svc.HealthCheck(r.Context()))
}

// providerInfo describes one supported vendor in the discovery response.
type providerInfo struct {
	Name         string `json:"name"`
	DefaultModel string `json:"default_model"`
	Active       bool   `json:"active"`
}

// handleProviders lists the supported vendors and which one is active.
func (s *Server) handleProviders(w http.ResponseWriter, _ *http.Request) {
	active := s.svc.Provider().Name()

	infos := make([]providerInfo, 0, len(provider.Vendors()))
	for _, name := range provider.Vendors() {
		model, err := provider.DefaultModel(name)
		if err != nil {
			continue
		}
		infos = append(infos, providerInfo{
			Name:         name,
			DefaultModel: model,
			Active:       name == active,
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"providers":    infos,
		"active":       active,
		"active_model": s.svc.Provider().Model(),
	})
}

// handleRoot returns service metadata.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"service": s.cfg.ServiceName,
		"version": s.cfg.ServiceVersion,
		"status":  "running",
	})
}

// decodeRequest parses a JSON body into dst, writing a 400 on failure.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, types.ErrorResponse{
			Error:   codeInvalidRequest,
			Message: "request body must be valid JSON",
		})
		return false
	}
	return true
}

// validationError writes a 400 with the validation failure message.
func (s *Server) validationError(w http.ResponseWriter, err error) {
	s.jsonResponse(w, http.StatusBadRequest, types.ErrorResponse{
		Error:   codeValidationError,
		Message: err.Error(),
	})
}

// providerError maps a classified provider error to its HTTP response.
// Clients get a stable message per kind; the raw upstream error is attached
// only in development mode.
func (s *Server) providerError(w http.ResponseWriter, err error) {
	perr, ok := provider.AsError(err)
	if !ok {
		log.Printf("[server] unclassified error: %v", err)
		s.jsonResponse(w, http.StatusInternalServerError, types.ErrorResponse{
			Error:   codeInternalError,
			Message: "internal error",
		})
		return
	}

	log.Printf("[server] provider error (kind=%s vendor=%s): %v", perr.Kind, perr.Vendor, perr)

	resp := types.ErrorResponse{
		Error:   codeForKind(perr.Kind),
		Message: messageForKind(perr.Kind),
		Detail: map[string]any{
			"provider":  perr.Vendor,
			"kind":      string(perr.Kind),
			"retryable": perr.Retryable(),
		},
	}
	if s.cfg.IsDevelopment() {
		resp.Detail["error"] = perr.Error()
	}

	s.jsonResponse(w, statusForKind(perr.Kind), resp)
}
