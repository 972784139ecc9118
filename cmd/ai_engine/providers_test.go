package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvidersCommand_ListsVendors(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runProviders(cmd, nil))

	listing := out.String()
	assert.Contains(t, listing, "gemini")
	assert.Contains(t, listing, "openai")
	assert.Contains(t, listing, "claude")

	// The default provider is marked active.
	assert.Contains(t, listing, "* gemini")
}

func TestProvidersCommand_MarksConfiguredProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "claude")

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runProviders(cmd, nil))
	assert.Contains(t, out.String(), "* claude")
}
