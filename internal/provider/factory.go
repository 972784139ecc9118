package provider

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// Default model per vendor, used when neither an explicit model nor the
// vendor-specific environment override is set.
var defaultModels = map[Vendor]string{
	VendorGemini: "models/gemini-2.5-flash",
	VendorOpenAI: "gpt-4-turbo-preview",
	VendorClaude: "claude-3-sonnet-20240229",
}

// Environment variable naming the API key credential for each vendor.
var keyEnvVars = map[Vendor]string{
	VendorGemini: "GEMINI_API_KEY",
	VendorOpenAI: "OPENAI_API_KEY",
	VendorClaude: "ANTHROPIC_API_KEY",
}

// Environment variable overriding the model for each vendor.
var modelEnvVars = map[Vendor]string{
	VendorGemini: "GEMINI_MODEL",
	VendorOpenAI: "OPENAI_MODEL",
	VendorClaude: "CLAUDE_MODEL",
}

const (
	defaultTemperature = 0.2
	defaultMaxTokens   = 8192
)

// Options configures provider creation. Zero values resolve from the
// environment and then from built-in defaults, in that order.
type Options struct {
	Vendor      string
	APIKey      string
	Model       string
	Temperature *float64
	MaxTokens   int
}

// New selects and constructs the adapter for the resolved vendor. This is
// the single point where the backend is decided; everything downstream holds
// a Provider and never inspects vendor identity.
func New(ctx context.Context, opts Options) (Provider, error) {
	vendor, err := resolveVendor(opts.Vendor)
	if err != nil {
		return nil, err
	}

	settings := Settings{
		Vendor:      vendor,
		APIKey:      resolveAPIKey(vendor, opts.APIKey),
		Model:       resolveModel(vendor, opts.Model),
		Temperature: resolveTemperature(opts.Temperature),
		MaxTokens:   resolveMaxTokens(opts.MaxTokens),
	}

	if settings.APIKey == "" {
		return nil, fmt.Errorf("%s API key not found: set the %s environment variable or pass an explicit key", vendor, keyEnvVars[vendor])
	}

	log.Printf("[provider] creating %s provider with model %s", vendor, settings.Model)

	switch vendor {
	case VendorGemini:
		return NewGemini(ctx, settings)
	case VendorOpenAI:
		return NewOpenAI(settings)
	case VendorClaude:
		return NewClaude(settings)
	default:
		// Unreachable: resolveVendor rejects anything outside the closed set.
		return nil, fmt.Errorf("unsupported provider: %s", vendor)
	}
}

// Vendors returns the closed set of supported vendor names.
func Vendors() []string {
	return []string{string(VendorGemini), string(VendorOpenAI), string(VendorClaude)}
}

// DefaultModel returns the built-in default model for a vendor name.
func DefaultModel(name string) (string, error) {
	vendor, err := resolveVendor(name)
	if err != nil {
		return "", err
	}
	return defaultModels[vendor], nil
}

func resolveVendor(name string) (Vendor, error) {
	if name == "" {
		name = os.Getenv("AI_PROVIDER")
	}
	if name == "" {
		name = string(VendorGemini)
	}

	vendor := Vendor(strings.ToLower(strings.TrimSpace(name)))
	switch vendor {
	case VendorGemini, VendorOpenAI, VendorClaude:
		return vendor, nil
	default:
		return "", fmt.Errorf("invalid AI provider %q: must be one of: %s", name, strings.Join(Vendors(), ", "))
	}
}

func resolveAPIKey(vendor Vendor, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(keyEnvVars[vendor])
}

func resolveModel(vendor Vendor, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(modelEnvVars[vendor]); env != "" {
		return env
	}
	return defaultModels[vendor]
}

func resolveTemperature(explicit *float64) float64 {
	if explicit != nil {
		return *explicit
	}
	if env := os.Getenv("AI_TEMPERATURE"); env != "" {
		if v, err := strconv.ParseFloat(env, 64); err == nil {
			return v
		}
	}
	return defaultTemperature
}

func resolveMaxTokens(explicit int) int {
	if explicit > 0 {
		return explicit
	}
	if env := os.Getenv("AI_MAX_TOKENS"); env != "" {
		if v, err := strconv.Atoi(env); err == nil {
			return v
		}
	}
	return defaultMaxTokens
}
