package server

import (
	"net/http"

	"github.com/skillsense/ai-engine/internal/provider"
)

// Client-facing error codes.
const (
	codeInvalidRequest    = "invalid_request"
	codeValidationError   = "validation_error"
	codeAuthError         = "ai_provider_auth_error"
	codeRateLimited       = "ai_provider_rate_limited"
	codeUnavailable       = "ai_provider_unavailable"
	codeInvalidAIResponse = "ai_response_invalid"
	codeInternalError     = "internal_error"
)

// statusForKind maps a provider error kind to an HTTP status. Auth failures
// are the operator's problem, not the caller's, so they surface as 503
// rather than 401.
func statusForKind(kind provider.ErrorKind) int {
	switch kind {
	case provider.KindAuth:
		return http.StatusServiceUnavailable
	case provider.KindRateLimit:
		return http.StatusTooManyRequests
	case provider.KindConnection:
		return http.StatusServiceUnavailable
	case provider.KindInvalidResponse:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func codeForKind(kind provider.ErrorKind) string {
	switch kind {
	case provider.KindAuth:
		return codeAuthError
	case provider.KindRateLimit:
		return codeRateLimited
	case provider.KindConnection:
		return codeUnavailable
	case provider.KindInvalidResponse:
		return codeInvalidAIResponse
	default:
		return codeInternalError
	}
}

// messageForKind returns the stable client-facing message for an error kind.
// Raw upstream error text never appears here; it is only attached as detail
// in development mode.
func messageForKind(kind provider.ErrorKind) string {
	switch kind {
	case provider.KindAuth:
		return "AI provider authentication failed"
	case provider.KindRateLimit:
		return "AI provider rate limit exceeded, please retry later"
	case provider.KindConnection:
		return "AI provider is currently unreachable"
	case provider.KindInvalidResponse:
		return "AI provider returned an unusable response"
	default:
		return "AI provider request failed"
	}
}
