package provider

import (
	"context"
	"sync"
)

// MockResponse defines a canned completion result for the mock provider.
type MockResponse struct {
	Content string
	Err     error
}

// Mock is a test double that returns pre-configured responses in sequence.
// After all responses are exhausted it keeps returning the last one. Every
// request is recorded for later assertion.
type Mock struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []CompletionRequest
	idx       int

	// HealthResult is returned by HealthCheck. Defaults to a connected
	// payload when unset.
	HealthResult *Health
}

var _ Provider = (*Mock)(nil)

// NewMock creates a mock provider returning the given responses in order.
func NewMock(responses ...MockResponse) *Mock {
	return &Mock{responses: responses}
}

// GenerateCompletion returns the next canned response and records the request.
func (m *Mock) GenerateCompletion(ctx context.Context, req CompletionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	if len(m.responses) == 0 {
		return "{}", nil
	}

	r := m.responses[m.idx]
	if m.idx < len(m.responses)-1 {
		m.idx++
	}

	if r.Err != nil {
		return "", r.Err
	}
	return r.Content, nil
}

// HealthCheck returns the configured health payload, or a connected default.
func (m *Mock) HealthCheck(ctx context.Context) Health {
	if m.HealthResult != nil {
		return *m.HealthResult
	}
	return Health{
		Status:    StatusConnected,
		Vendor:    "mock",
		Model:     "mock-model",
		LatencyMS: 1,
	}
}

// Name returns the mock vendor name.
func (m *Mock) Name() string { return "mock" }

// Model returns the mock model identifier.
func (m *Mock) Model() string { return "mock-model" }

// Calls returns a copy of all requests received by this mock.
func (m *Mock) Calls() []CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]CompletionRequest, len(m.calls))
	copy(out, m.calls)
	return out
}
