package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillsense/ai-engine/internal/config"
	"github.com/skillsense/ai-engine/internal/observability"
	"github.com/skillsense/ai-engine/internal/provider"
	"github.com/skillsense/ai-engine/internal/service"
	"github.com/skillsense/ai-engine/internal/types"
)

var (
	analyzeResumeFile string
	analyzeRole       string
	analyzeProvider   string
	analyzeJSON       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume file against a target role",
	Long:  `Run a one-off resume analysis from the command line and print the ATS score, skill gap and suggestions.`,
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeResumeFile, "resume", "", "Path to a plain-text resume file (required)")
	analyzeCmd.Flags().StringVar(&analyzeRole, "role", "", "Target role (required)")
	analyzeCmd.Flags().StringVar(&analyzeProvider, "provider", "", "AI provider to use (overrides AI_PROVIDER)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the raw JSON result")
	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("role")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	resumeText, err := os.ReadFile(analyzeResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	req := types.ResumeAnalysisRequest{
		ResumeText: string(resumeText),
		TargetRole: analyzeRole,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	svc, err := buildService(analyzeProvider)
	if err != nil {
		return err
	}

	result, err := svc.AnalyzeResume(context.Background(), req)
	if err != nil {
		return err
	}

	if analyzeJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintAnalysis(result)
	return nil
}

// buildService constructs the provider and analysis service for CLI commands.
func buildService(vendorOverride string) (*service.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if vendorOverride != "" {
		cfg.Provider = vendorOverride
	}

	p, err := provider.New(context.Background(), provider.Options{
		Vendor:      cfg.Provider,
		Temperature: &cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	return service.New(p, cfg), nil
}
