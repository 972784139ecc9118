package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// EndpointConfig is the rate limit for one endpoint. Path supports prefix
// matching when it ends with a slash.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds the limiter settings.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	EndpointConfigs []EndpointConfig
}

// LoadConfig reads limiter settings from the environment.
func LoadConfig(apiPrefix string) *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		EndpointConfigs: DefaultEndpointConfigs(apiPrefix),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits. The analysis
// endpoints each cost a paid model call, so they get tight per-client
// budgets; health and discovery endpoints are effectively unlimited.
func DefaultEndpointConfigs(apiPrefix string) []EndpointConfig {
	aiLimit := getEnvInt("RATE_LIMIT_AI_LIMIT", 20)
	aiWindow := getEnvDuration("RATE_LIMIT_AI_WINDOW", time.Minute)
	aiBurst := getEnvInt("RATE_LIMIT_AI_BURST", 5)

	return []EndpointConfig{
		{Path: apiPrefix + "/analyze-resume", Method: "POST", Limit: aiLimit, Window: aiWindow, Burst: aiBurst},
		{Path: apiPrefix + "/generate-roadmap", Method: "POST", Limit: aiLimit, Window: aiWindow, Burst: aiBurst},
		{Path: apiPrefix + "/skill-gap", Method: "POST", Limit: aiLimit, Window: aiWindow, Burst: aiBurst},
	}
}

func defaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
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
