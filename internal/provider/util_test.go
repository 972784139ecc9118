package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence with language id", "```javascript\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanJSONBlock(tt.input))
		})
	}
}

func TestFinishJSONMode_ValidJSON(t *testing.T) {
	out, err := finishJSONMode("gemini", "```json\n{\"score\": 78}\n```")
	require.NoError(t, err)
	assert.Equal(t, `{"score": 78}`, out)
}

func TestFinishJSONMode_InvalidJSON(t *testing.T) {
	out, err := finishJSONMode("gemini", "I am sorry, I cannot help with that.")
	assert.Empty(t, out)
	require.Error(t, err)

	pe, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidResponse, pe.Kind)
	assert.Equal(t, "gemini", pe.Vendor)
}
