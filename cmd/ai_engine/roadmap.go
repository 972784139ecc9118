package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/skillsense/ai-engine/internal/observability"
	"github.com/skillsense/ai-engine/internal/types"
)

var (
	roadmapSkills   []string
	roadmapRole     string
	roadmapProvider string
	roadmapJSON     bool
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Generate a learning roadmap for missing skills",
	Long:  `Generate an 8-week learning roadmap covering the given skills for a target role.`,
	RunE:  runRoadmap,
}

func init() {
	roadmapCmd.Flags().StringSliceVar(&roadmapSkills, "skill", nil, "Skill to learn (repeatable, required)")
	roadmapCmd.Flags().StringVar(&roadmapRole, "role", "", "Target role (required)")
	roadmapCmd.Flags().StringVar(&roadmapProvider, "provider", "", "AI provider to use (overrides AI_PROVIDER)")
	roadmapCmd.Flags().BoolVar(&roadmapJSON, "json", false, "Print the raw JSON result")
	_ = roadmapCmd.MarkFlagRequired("skill")
	_ = roadmapCmd.MarkFlagRequired("role")
	rootCmd.AddCommand(roadmapCmd)
}

func runRoadmap(cmd *cobra.Command, _ []string) error {
	req := types.RoadmapRequest{
		MissingSkills: roadmapSkills,
		TargetRole:    roadmapRole,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	svc, err := buildService(roadmapProvider)
	if err != nil {
		return err
	}

	result, err := svc.GenerateRoadmap(context.Background(), req)
	if err != nil {
		return err
	}

	if roadmapJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintRoadmap(result)
	return nil
}
