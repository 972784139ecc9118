package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVICE_NAME", "SERVICE_VERSION", "ENVIRONMENT", "PORT",
		"API_V1_PREFIX", "CORS_ORIGINS", "AI_PROVIDER", "AI_TEMPERATURE",
		"AI_MAX_TOKENS", "AI_REQUEST_TIMEOUT", "AI_MAX_CONCURRENT_CALLS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ai-engine", cfg.ServiceName)
	assert.Equal(t, "1.0.0", cfg.ServiceVersion)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, 0.2, cfg.Temperature)
	assert.Equal(t, 8192, cfg.MaxTokens)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("AI_TEMPERATURE", "0.7")
	t.Setenv("AI_MAX_TOKENS", "4000")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("AI_REQUEST_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 4000, cfg.MaxTokens)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("ENVIRONMENT", "qa")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENVIRONMENT")
	assert.Contains(t, err.Error(), "development")
}

func TestLoad_TemperatureOutOfRange(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("AI_TEMPERATURE", "1.5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_TEMPERATURE")
}

func TestLoad_MaxTokensCeiling(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("AI_MAX_TOKENS", "10001")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_MAX_TOKENS")

	t.Setenv("AI_MAX_TOKENS", "10000")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10000, cfg.MaxTokens)
}

func TestLoad_MalformedNumbersFallBackToDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "not-a-number")
	t.Setenv("AI_TEMPERATURE", "warm")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 0.2, cfg.Temperature)
}
