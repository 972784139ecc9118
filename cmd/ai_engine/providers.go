package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillsense/ai-engine/internal/provider"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported AI providers",
	Long:  `List the supported AI providers, their default models, and which one is currently selected.`,
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, _ []string) error {
	active := strings.ToLower(os.Getenv("AI_PROVIDER"))
	if active == "" {
		active = "gemini"
	}

	for _, name := range provider.Vendors() {
		model, err := provider.DefaultModel(name)
		if err != nil {
			return err
		}
		marker := " "
		if name == active {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %-8s default model: %s\n", marker, name, model)
	}
	return nil
}
