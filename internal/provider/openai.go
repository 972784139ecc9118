package provider

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI is the Provider adapter for the OpenAI chat completions API.
type OpenAI struct {
	client   *openai.Client
	settings Settings
}

var _ Provider = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI adapter. Settings are validated before any
// network call; the SDK client is built once and reused.
func NewOpenAI(settings Settings) (*OpenAI, error) {
	settings.Vendor = VendorOpenAI
	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	log.Printf("[provider] openai adapter initialized with model %s", settings.Model)
	return &OpenAI{
		client:   openai.NewClient(settings.APIKey),
		settings: settings,
	}, nil
}

// GenerateCompletion sends a chat completion request. JSON mode uses the
// native response_format flag on models that support it and falls back to a
// prompt instruction otherwise.
func (o *OpenAI) GenerateCompletion(ctx context.Context, req CompletionRequest) (string, error) {
	system := req.SystemPrompt
	chatReq := openai.ChatCompletionRequest{
		Model:       o.settings.Model,
		Temperature: float32(o.settings.Temperature),
		MaxTokens:   o.settings.MaxTokens,
	}

	if req.JSONMode {
		if supportsJSONResponseFormat(o.settings.Model) {
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
		} else {
			system += jsonModeInstruction
		}
	}

	chatReq.Messages = []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
	}

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	latency := time.Since(start)
	if err != nil {
		return "", o.classify(err)
	}
	log.Printf("[provider] openai response received in %.0fms", latency.Seconds()*1000)

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", NewError(KindInvalidResponse, string(VendorOpenAI), "empty response", nil)
	}
	content := resp.Choices[0].Message.Content

	if req.JSONMode {
		return finishJSONMode(string(VendorOpenAI), content)
	}
	return content, nil
}

// HealthCheck performs a minimal chat completion round trip. Never errors.
func (o *OpenAI) HealthCheck(ctx context.Context) Health {
	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.settings.Model,
		MaxTokens: 16,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "ping"},
		},
	})
	latency := time.Since(start).Seconds() * 1000
	if err != nil {
		return Health{
			Status: StatusUnhealthy,
			Vendor: string(VendorOpenAI),
			Model:  o.settings.Model,
			Error:  err.Error(),
		}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Health{
			Status: StatusDegraded,
			Vendor: string(VendorOpenAI),
			Model:  o.settings.Model,
			Error:  "empty response from test call",
		}
	}

	return Health{
		Status:    StatusConnected,
		Vendor:    string(VendorOpenAI),
		Model:     o.settings.Model,
		LatencyMS: latency,
	}
}

// Name returns the vendor name.
func (o *OpenAI) Name() string { return string(VendorOpenAI) }

// Model returns the configured model identifier.
func (o *OpenAI) Model() string { return o.settings.Model }

// classify maps OpenAI SDK failures onto the shared error taxonomy.
func (o *OpenAI) classify(err error) *Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch kind := classifyStatus(apiErr.HTTPStatusCode); kind {
		case KindAuth:
			return NewError(KindAuth, string(VendorOpenAI), "invalid or missing API key", err)
		case KindRateLimit:
			return NewError(KindRateLimit, string(VendorOpenAI), "rate limit exceeded", err)
		case KindConnection:
			return NewError(KindConnection, string(VendorOpenAI), "upstream error", err)
		default:
			return NewError(KindGeneric, string(VendorOpenAI), "completion failed", err)
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		switch classifyStatus(reqErr.HTTPStatusCode) {
		case KindAuth:
			return NewError(KindAuth, string(VendorOpenAI), "invalid or missing API key", err)
		case KindRateLimit:
			return NewError(KindRateLimit, string(VendorOpenAI), "rate limit exceeded", err)
		default:
			return NewError(KindConnection, string(VendorOpenAI), "request failed", err)
		}
	}
	if kind, ok := classifyTransport(err); ok && kind == KindConnection {
		return NewError(KindConnection, string(VendorOpenAI), "connection failed", err)
	}
	return NewError(KindGeneric, string(VendorOpenAI), "completion failed", err)
}

// supportsJSONResponseFormat reports whether the model family accepts the
// response_format json_object flag.
func supportsJSONResponseFormat(model string) bool {
	return strings.Contains(model, "gpt-4") || strings.Contains(model, "gpt-3.5")
}
