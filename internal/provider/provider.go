// Package provider defines a vendor-agnostic contract over external LLM
// backends and the adapters that implement it for Gemini, OpenAI and Claude.
package provider

import (
	"context"
	"fmt"
)

// Vendor identifies an external LLM backend.
type Vendor string

// Supported vendors. The set is closed; the factory rejects anything else.
const (
	VendorGemini Vendor = "gemini"
	VendorOpenAI Vendor = "openai"
	VendorClaude Vendor = "claude"
)

// CompletionRequest describes a single completion call. It is created per
// request and not retained by adapters.
type CompletionRequest struct {
	// SystemPrompt sets the system instruction/persona for the call.
	SystemPrompt string

	// UserPrompt is the user message to send.
	UserPrompt string

	// JSONMode asks the vendor for machine-parseable JSON output. Adapters
	// use the vendor-native mechanism where one exists and verify that the
	// returned text parses as JSON before returning it.
	JSONMode bool
}

// HealthStatus describes the reachability of a vendor backend.
type HealthStatus string

// Health status values reported by adapters and the orchestration service.
const (
	StatusConnected HealthStatus = "connected"
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// OK reports whether the status counts as healthy for overall service health.
func (s HealthStatus) OK() bool {
	return s == StatusConnected || s == StatusHealthy
}

// Health is the result of a provider health check. HealthCheck never fails;
// any underlying error is captured in the payload instead.
type Health struct {
	Status    HealthStatus `json:"status"`
	Vendor    string       `json:"provider"`
	Model     string       `json:"model"`
	LatencyMS float64      `json:"latency_ms,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// Provider is the capability contract every vendor adapter satisfies.
// The orchestration layer holds a Provider and never inspects vendor
// identity beyond the Name and Model accessors.
type Provider interface {
	// GenerateCompletion sends a completion request to the bound vendor.
	// On success the returned text is never empty; empty content is itself
	// an invalid-response error. Implementations must respect context
	// cancellation and return *Error on any failure.
	GenerateCompletion(ctx context.Context, req CompletionRequest) (string, error)

	// HealthCheck performs a minimal round-trip call and reports the result.
	// It never returns an error; failures downgrade the status payload.
	HealthCheck(ctx context.Context) Health

	// Name returns the vendor name (gemini, openai, claude).
	Name() string

	// Model returns the configured model identifier.
	Model() string
}

// Settings holds the validated configuration bound to one adapter instance.
// It is constructed once and never mutated afterwards.
type Settings struct {
	Vendor      Vendor
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// ValidateSettings checks adapter preconditions before any network call is
// attempted. Every adapter constructor calls this first.
func ValidateSettings(s Settings) error {
	if s.APIKey == "" {
		return fmt.Errorf("%s provider: API key is required", s.Vendor)
	}
	if s.Model == "" {
		return fmt.Errorf("%s provider: model name is required", s.Vendor)
	}
	if s.Temperature < 0.0 || s.Temperature > 1.0 {
		return fmt.Errorf("%s provider: temperature must be between 0.0 and 1.0, got %g", s.Vendor, s.Temperature)
	}
	if s.MaxTokens <= 0 {
		return fmt.Errorf("%s provider: max_tokens must be positive, got %d", s.Vendor, s.MaxTokens)
	}
	return nil
}
