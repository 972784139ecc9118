// Package main provides the entry point for the AI analysis engine HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ai_engine",
	Short: "AI resume analysis engine",
	Long:  "ai_engine analyzes resumes against target roles and generates learning roadmaps by delegating to a configurable LLM provider via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
