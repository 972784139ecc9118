// Package config loads and validates process-wide settings from environment
// variables. Resolution precedence everywhere is explicit argument, then
// environment, then built-in default.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the validated service settings. Constructed once at startup
// and treated as immutable afterwards.
type Config struct {
	// Service
	ServiceName    string
	ServiceVersion string
	Environment    string
	Port           int

	// API
	APIPrefix   string
	CORSOrigins []string

	// AI provider
	Provider       string
	Temperature    float64
	MaxTokens      int
	RequestTimeout time.Duration

	// Concurrency cap on in-flight upstream provider calls.
	MaxConcurrentCalls int
}

const maxTokensCeiling = 10000

var validEnvironments = []string{"development", "staging", "production"}

// Load reads configuration from the environment, applying defaults for
// unset values. The returned config is already validated.
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName:        getEnvString("SERVICE_NAME", "ai-engine"),
		ServiceVersion:     getEnvString("SERVICE_VERSION", "1.0.0"),
		Environment:        strings.ToLower(getEnvString("ENVIRONMENT", "development")),
		Port:               getEnvInt("PORT", 8000),
		APIPrefix:          getEnvString("API_V1_PREFIX", "/api/v1"),
		CORSOrigins:        splitOrigins(getEnvString("CORS_ORIGINS", "http://localhost:3000")),
		Provider:           strings.ToLower(getEnvString("AI_PROVIDER", "gemini")),
		Temperature:        getEnvFloat("AI_TEMPERATURE", 0.2),
		MaxTokens:          getEnvInt("AI_MAX_TOKENS", 8192),
		RequestTimeout:     getEnvDuration("AI_REQUEST_TIMEOUT", 60*time.Second),
		MaxConcurrentCalls: getEnvInt("AI_MAX_CONCURRENT_CALLS", 32),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field, failing fast with a descriptive error.
func (c *Config) Validate() error {
	validEnv := false
	for _, env := range validEnvironments {
		if c.Environment == env {
			validEnv = true
			break
		}
	}
	if !validEnv {
		return fmt.Errorf("config error: invalid ENVIRONMENT %q, must be one of: %s", c.Environment, strings.Join(validEnvironments, ", "))
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.Temperature < 0.0 || c.Temperature > 1.0 {
		return fmt.Errorf("config error: AI_TEMPERATURE must be between 0.0 and 1.0, got %g", c.Temperature)
	}
	if c.MaxTokens < 1 || c.MaxTokens > maxTokensCeiling {
		return fmt.Errorf("config error: AI_MAX_TOKENS must be between 1 and %d, got %d", maxTokensCeiling, c.MaxTokens)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config error: AI_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.MaxConcurrentCalls <= 0 {
		return fmt.Errorf("config error: AI_MAX_CONCURRENT_CALLS must be positive, got %d", c.MaxConcurrentCalls)
	}

	return nil
}

// IsDevelopment reports whether the service runs in development mode.
// Development responses may include raw upstream error detail.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an int with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvFloat gets an environment variable as a float with a default value.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
