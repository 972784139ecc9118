package types

// HealthCheckResponse is the payload of GET /health. The endpoint always
// returns 200; degradation is communicated through the status field.
type HealthCheckResponse struct {
	Status           string `json:"status"`
	Service          string `json:"service"`
	Version          string `json:"version"`
	Timestamp        string `json:"timestamp"`
	AIProvider       string `json:"ai_provider"`
	AIProviderStatus string `json:"ai_provider_status"`
}

// ErrorResponse is the standard error payload. Detail carries vendor-scoped
// context; raw upstream error text appears only in development mode.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Detail  map[string]any `json:"detail,omitempty"`
}
