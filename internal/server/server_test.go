package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsense/ai-engine/internal/config"
	"github.com/skillsense/ai-engine/internal/provider"
	"github.com/skillsense/ai-engine/internal/service"
	"github.com/skillsense/ai-engine/internal/types"
)

const testAnalysisJSON = `{
  "ats_score": {
    "overall": 65,
    "breakdown": {"formatting": 70, "keywords": 55, "experience": 70, "education": 80, "skills": 50}
  },
  "skill_gap_analysis": {
    "current_skills": ["Go"],
    "required_skills": ["Go", "Terraform"],
    "missing_skills": ["Terraform"],
    "skills_to_improve": []
  },
  "suggestions": [
    {
      "category": "keywords",
      "priority": "important",
      "issue": "No infrastructure keywords",
      "recommendation": "Name the tools you used",
      "example_before": "Managed infrastructure",
      "example_after": "Managed infrastructure with Terraform on AWS"
    }
  ]
}`

func newTestServer(t *testing.T, responses ...provider.MockResponse) (*Server, *provider.Mock) {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	mock := provider.NewMock(responses...)
	srv := New(cfg, service.New(mock, cfg))
	t.Cleanup(func() { srv.rateLimiter.Stop() })
	return srv, mock
}

func analyzeBody() string {
	resume := strings.Repeat("Designed and shipped distributed systems in Go. ", 5)
	body, _ := json.Marshal(types.ResumeAnalysisRequest{
		ResumeText: resume,
		TargetRole: "Staff Engineer",
	})
	return string(body)
}

func doRequest(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeResume_Endpoint(t *testing.T) {
	srv, mock := newTestServer(t, provider.MockResponse{Content: testAnalysisJSON})

	rec := doRequest(srv, "POST", "/api/v1/analyze-resume", analyzeBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var result types.ResumeAnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 65, result.ATSScore.Overall)
	assert.Equal(t, "mock-model", result.ModelVersion)
	assert.NotEmpty(t, result.AnalyzedAt)

	require.Len(t, mock.Calls(), 1)
}

func TestAnalyzeResume_MalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, "POST", "/api/v1/analyze-resume", "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_request", resp.Error)
}

func TestAnalyzeResume_ValidationFailure(t *testing.T) {
	srv, mock := newTestServer(t)

	body, _ := json.Marshal(types.ResumeAnalysisRequest{
		ResumeText: "too short",
		TargetRole: "Engineer",
	})
	rec := doRequest(srv, "POST", "/api/v1/analyze-resume", string(body))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error)

	// The provider must never be called for an invalid request.
	assert.Empty(t, mock.Calls())
}

func TestProviderErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		kind       provider.ErrorKind
		wantStatus int
		wantCode   string
	}{
		{"auth", provider.KindAuth, http.StatusServiceUnavailable, "ai_provider_auth_error"},
		{"rate limit", provider.KindRateLimit, http.StatusTooManyRequests, "ai_provider_rate_limited"},
		{"connection", provider.KindConnection, http.StatusServiceUnavailable, "ai_provider_unavailable"},
		{"invalid response", provider.KindInvalidResponse, http.StatusInternalServerError, "ai_response_invalid"},
		{"generic", provider.KindGeneric, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := provider.NewError(tt.kind, "mock", "upstream failure", nil)
			srv, _ := newTestServer(t, provider.MockResponse{Err: upstream})

			rec := doRequest(srv, "POST", "/api/v1/analyze-resume", analyzeBody())
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp types.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.Equal(t, "mock", resp.Detail["provider"])
		})
	}
}

func TestProviderError_DetailOnlyInDevelopment(t *testing.T) {
	upstream := provider.NewError(provider.KindConnection, "mock", "dial tcp: connection refused", nil)

	t.Run("development includes raw error", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "development")
		srv, _ := newTestServer(t, provider.MockResponse{Err: upstream})

		rec := doRequest(srv, "POST", "/api/v1/analyze-resume", analyzeBody())
		var resp types.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Detail["error"], "connection refused")
	})

	t.Run("production omits raw error", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		srv, _ := newTestServer(t, provider.MockResponse{Err: upstream})

		rec := doRequest(srv, "POST", "/api/v1/analyze-resume", analyzeBody())
		var resp types.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotContains(t, resp.Detail, "error")
	})
}

func TestGenerateRoadmap_Endpoint(t *testing.T) {
	roadmap := `{"milestones": [{"title": "Week 1", "description": "Basics", "tasks": [
	  {"description": "a"}, {"description": "b"}, {"description": "c"}
	]}]}`
	srv, _ := newTestServer(t, provider.MockResponse{Content: roadmap})

	body, _ := json.Marshal(types.RoadmapRequest{
		MissingSkills: []string{"Terraform"},
		TargetRole:    "Platform Engineer",
	})
	rec := doRequest(srv, "POST", "/api/v1/generate-roadmap", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var result types.RoadmapResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Milestones, 1)
	assert.Equal(t, "mock-model", result.ModelVersion)
}

func TestGenerateRoadmap_RequiresSkills(t *testing.T) {
	srv, _ := newTestServer(t)

	body, _ := json.Marshal(types.RoadmapRequest{TargetRole: "Platform Engineer"})
	rec := doRequest(srv, "POST", "/api/v1/generate-roadmap", string(body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth_AlwaysOK(t *testing.T) {
	srv, mock := newTestServer(t)
	mock.HealthResult = &provider.Health{
		Status: provider.StatusUnhealthy,
		Vendor: "mock",
		Model:  "mock-model",
		Error:  "boom",
	}

	rec := doRequest(srv, "GET", "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.HealthCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unhealthy", resp.AIProviderStatus)
}

func TestProviders_Endpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, "GET", "/api/v1/providers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Providers []struct {
			Name         string `json:"name"`
			DefaultModel string `json:"default_model"`
			Active       bool   `json:"active"`
		} `json:"providers"`
		Active string `json:"active"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Providers, 3)
	names := make([]string, 0, 3)
	for _, p := range resp.Providers {
		names = append(names, p.Name)
		assert.NotEmpty(t, p.DefaultModel)
	}
	assert.ElementsMatch(t, []string{"gemini", "openai", "claude"}, names)
	assert.Equal(t, "mock", resp.Active)
}

func TestRoot_Endpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, "GET", "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ai-engine", resp["service"])
}

func TestCORS_Preflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("OPTIONS", "/api/v1/analyze-resume", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_UnknownOriginGetsNoHeader(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit_Enforced(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_AI_BURST", "2")

	cfg, err := config.Load()
	require.NoError(t, err)

	mock := provider.NewMock(provider.MockResponse{Content: testAnalysisJSON})
	srv := New(cfg, service.New(mock, cfg))
	t.Cleanup(func() { srv.rateLimiter.Stop() })

	for i := 0; i < 2; i++ {
		rec := doRequest(srv, "POST", "/api/v1/analyze-resume", analyzeBody())
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := doRequest(srv, "POST", "/api/v1/analyze-resume", analyzeBody())
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
