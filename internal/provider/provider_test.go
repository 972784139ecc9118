package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings(vendor Vendor) Settings {
	return Settings{
		Vendor:      vendor,
		APIKey:      "test-key",
		Model:       "test-model",
		Temperature: 0.2,
		MaxTokens:   4000,
	}
}

func TestValidateSettings_Valid(t *testing.T) {
	require.NoError(t, ValidateSettings(validSettings(VendorGemini)))
}

func TestValidateSettings_BoundaryTemperatures(t *testing.T) {
	s := validSettings(VendorOpenAI)
	s.Temperature = 0.0
	assert.NoError(t, ValidateSettings(s))

	s.Temperature = 1.0
	assert.NoError(t, ValidateSettings(s))
}

func TestValidateSettings_InvalidFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantMsg string
	}{
		{"empty api key", func(s *Settings) { s.APIKey = "" }, "API key is required"},
		{"empty model", func(s *Settings) { s.Model = "" }, "model name is required"},
		{"temperature too low", func(s *Settings) { s.Temperature = -0.1 }, "temperature"},
		{"temperature too high", func(s *Settings) { s.Temperature = 1.5 }, "temperature"},
		{"zero max tokens", func(s *Settings) { s.MaxTokens = 0 }, "max_tokens"},
		{"negative max tokens", func(s *Settings) { s.MaxTokens = -1 }, "max_tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings(VendorClaude)
			tt.mutate(&s)
			err := ValidateSettings(s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestHealthStatus_OK(t *testing.T) {
	assert.True(t, StatusConnected.OK())
	assert.True(t, StatusHealthy.OK())
	assert.False(t, StatusDegraded.OK())
	assert.False(t, StatusUnhealthy.OK())
}

func TestNewOpenAI_RejectsInvalidSettingsBeforeNetwork(t *testing.T) {
	s := validSettings(VendorOpenAI)
	s.MaxTokens = 0

	p, err := NewOpenAI(s)
	assert.Nil(t, p)
	require.Error(t, err)
}

func TestNewClaude_RejectsInvalidSettingsBeforeNetwork(t *testing.T) {
	s := validSettings(VendorClaude)
	s.APIKey = ""

	p, err := NewClaude(s)
	assert.Nil(t, p)
	require.Error(t, err)
}

func TestNewOpenAI_ValidSettings(t *testing.T) {
	p, err := NewOpenAI(validSettings(VendorOpenAI))
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
	assert.Equal(t, "test-model", p.Model())
}

func TestNewClaude_ValidSettings(t *testing.T) {
	p, err := NewClaude(validSettings(VendorClaude))
	require.NoError(t, err)
	assert.Equal(t, "claude", p.Name())
	assert.Equal(t, "test-model", p.Model())
}
