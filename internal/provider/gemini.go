package provider

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Gemini is the Provider adapter for Google Gemini.
type Gemini struct {
	client   *genai.Client
	settings Settings
}

// Compile-time check that Gemini satisfies the Provider interface.
var _ Provider = (*Gemini)(nil)

// NewGemini creates a Gemini adapter. The SDK client is constructed once and
// reused for every request. Settings are validated before any network call.
func NewGemini(ctx context.Context, settings Settings) (*Gemini, error) {
	settings.Vendor = VendorGemini
	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(settings.APIKey))
	if err != nil {
		return nil, NewError(KindAuth, string(VendorGemini), "failed to initialize client", err)
	}

	log.Printf("[provider] gemini adapter initialized with model %s", settings.Model)
	return &Gemini{client: client, settings: settings}, nil
}

// GenerateCompletion sends a generation request to Gemini. JSON mode uses the
// native response MIME type flag.
func (g *Gemini) GenerateCompletion(ctx context.Context, req CompletionRequest) (string, error) {
	model := g.client.GenerativeModel(g.settings.Model)
	model.SetTemperature(float32(g.settings.Temperature))
	model.SetMaxOutputTokens(int32(g.settings.MaxTokens))
	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemPrompt)}}
	}
	if req.JSONMode {
		model.ResponseMIMEType = "application/json"
	}

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(req.UserPrompt))
	latency := time.Since(start)
	if err != nil {
		return "", g.classify(err)
	}
	log.Printf("[provider] gemini response received in %.0fms", latency.Seconds()*1000)

	text, err := extractGeminiText(resp)
	if err != nil {
		return "", NewError(KindInvalidResponse, string(VendorGemini), "empty response", err)
	}

	if req.JSONMode {
		return finishJSONMode(string(VendorGemini), text)
	}
	return text, nil
}

// HealthCheck performs a trivial round-trip generation. It never returns an
// error; failures are reported in the payload.
func (g *Gemini) HealthCheck(ctx context.Context) Health {
	model := g.client.GenerativeModel(g.settings.Model)
	model.SetMaxOutputTokens(16)

	start := time.Now()
	_, err := model.GenerateContent(ctx, genai.Text("ping"))
	latency := time.Since(start).Seconds() * 1000
	if err != nil {
		return Health{
			Status: StatusUnhealthy,
			Vendor: string(VendorGemini),
			Model:  g.settings.Model,
			Error:  err.Error(),
		}
	}

	return Health{
		Status:    StatusConnected,
		Vendor:    string(VendorGemini),
		Model:     g.settings.Model,
		LatencyMS: latency,
	}
}

// Name returns the vendor name.
func (g *Gemini) Name() string { return string(VendorGemini) }

// Model returns the configured model identifier.
func (g *Gemini) Model() string { return g.settings.Model }

// Close releases the underlying SDK client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// classify maps Gemini SDK failures onto the shared error taxonomy. The SDK
// surfaces googleapi errors with HTTP status codes; quota failures sometimes
// arrive only as message text.
func (g *Gemini) classify(err error) *Error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch kind := classifyStatus(apiErr.Code); kind {
		case KindAuth:
			return NewError(KindAuth, string(VendorGemini), "authentication failed", err)
		case KindRateLimit:
			return NewError(KindRateLimit, string(VendorGemini), "quota exceeded", err)
		case KindConnection:
			return NewError(KindConnection, string(VendorGemini), fmt.Sprintf("upstream error (HTTP %d)", apiErr.Code), err)
		default:
			return NewError(KindGeneric, string(VendorGemini), "generation failed", err)
		}
	}
	if kind, ok := classifyTransport(err); ok && kind == KindConnection {
		return NewError(KindConnection, string(VendorGemini), "connection failed", err)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "quota") || strings.Contains(msg, "429") {
		return NewError(KindRateLimit, string(VendorGemini), "quota exceeded", err)
	}
	if strings.Contains(msg, "api key") || strings.Contains(msg, "401") || strings.Contains(msg, "403") {
		return NewError(KindAuth, string(VendorGemini), "authentication failed", err)
	}
	return NewError(KindGeneric, string(VendorGemini), "generation failed", err)
}

// extractGeminiText concatenates the text parts of the first candidate.
func extractGeminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	text := strings.Join(parts, "")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("blank text in response")
	}
	return text, nil
}
