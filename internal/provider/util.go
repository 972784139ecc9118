package provider

import (
	"encoding/json"
	"strings"
)

// cleanJSONBlock removes markdown code block wrappers from model responses.
// LLMs often wrap JSON in ```json ... ``` fences even when instructed not to.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a potential language identifier on the first line.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// finishJSONMode enforces the JSON-mode contract shared by all adapters:
// the text is de-fenced and must parse as JSON, otherwise the call fails
// with an invalid-response error rather than passing raw text through.
func finishJSONMode(vendor, text string) (string, error) {
	cleaned := cleanJSONBlock(text)
	if !json.Valid([]byte(cleaned)) {
		return "", NewError(KindInvalidResponse, vendor, "response is not valid JSON", nil)
	}
	return cleaned, nil
}

// jsonModeInstruction is appended to the system prompt for vendors without a
// native JSON response format flag.
const jsonModeInstruction = "\n\nRespond with a single valid JSON object only. No markdown fences, no prose before or after the JSON."
