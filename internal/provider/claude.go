package provider

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Claude is the Provider adapter for the Anthropic Messages API.
type Claude struct {
	client   anthropic.Client
	settings Settings
}

var _ Provider = (*Claude)(nil)

// NewClaude creates a Claude adapter. Settings are validated before any
// network call; the SDK client is built once and reused.
func NewClaude(settings Settings) (*Claude, error) {
	settings.Vendor = VendorClaude
	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	client := anthropic.NewClient(option.WithAPIKey(settings.APIKey))

	log.Printf("[provider] claude adapter initialized with model %s", settings.Model)
	return &Claude{client: client, settings: settings}, nil
}

// GenerateCompletion sends a message request to Claude. The Messages API has
// no JSON response-format flag, so JSON mode is requested via the system
// prompt and the returned text is verified to parse.
func (c *Claude) GenerateCompletion(ctx context.Context, req CompletionRequest) (string, error) {
	system := req.SystemPrompt
	if req.JSONMode {
		system += jsonModeInstruction
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.settings.Model),
		MaxTokens:   int64(c.settings.MaxTokens),
		Temperature: anthropic.Float(c.settings.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	start := time.Now()
	msg, err := c.client.Messages.New(ctx, params)
	latency := time.Since(start)
	if err != nil {
		return "", c.classify(err)
	}
	log.Printf("[provider] claude response received in %.0fms", latency.Seconds()*1000)

	content := extractClaudeText(msg)
	if strings.TrimSpace(content) == "" {
		return "", NewError(KindInvalidResponse, string(VendorClaude), "empty response", nil)
	}

	if req.JSONMode {
		return finishJSONMode(string(VendorClaude), content)
	}
	return content, nil
}

// HealthCheck performs a minimal message round trip. Never errors.
func (c *Claude) HealthCheck(ctx context.Context) Health {
	start := time.Now()
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.settings.Model),
		MaxTokens: 16,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	latency := time.Since(start).Seconds() * 1000
	if err != nil {
		return Health{
			Status: StatusUnhealthy,
			Vendor: string(VendorClaude),
			Model:  c.settings.Model,
			Error:  err.Error(),
		}
	}

	if extractClaudeText(msg) == "" {
		return Health{
			Status: StatusDegraded,
			Vendor: string(VendorClaude),
			Model:  c.settings.Model,
			Error:  "empty response from test call",
		}
	}

	return Health{
		Status:    StatusConnected,
		Vendor:    string(VendorClaude),
		Model:     c.settings.Model,
		LatencyMS: latency,
	}
}

// Name returns the vendor name.
func (c *Claude) Name() string { return string(VendorClaude) }

// Model returns the configured model identifier.
func (c *Claude) Model() string { return c.settings.Model }

// classify maps Anthropic SDK failures onto the shared error taxonomy.
func (c *Claude) classify(err error) *Error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch kind := classifyStatus(apiErr.StatusCode); kind {
		case KindAuth:
			return NewError(KindAuth, string(VendorClaude), "invalid or missing API key", err)
		case KindRateLimit:
			return NewError(KindRateLimit, string(VendorClaude), "rate limit exceeded", err)
		case KindConnection:
			return NewError(KindConnection, string(VendorClaude), "upstream error", err)
		default:
			return NewError(KindGeneric, string(VendorClaude), "message request failed", err)
		}
	}
	if kind, ok := classifyTransport(err); ok && kind == KindConnection {
		return NewError(KindConnection, string(VendorClaude), "connection failed", err)
	}
	return NewError(KindGeneric, string(VendorClaude), "message request failed", err)
}

// extractClaudeText concatenates the text blocks of a message response.
func extractClaudeText(msg *anthropic.Message) string {
	if msg == nil {
		return ""
	}
	var content strings.Builder
	for _, block := range msg.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			content.WriteString(variant.Text)
		}
	}
	return content.String()
}
