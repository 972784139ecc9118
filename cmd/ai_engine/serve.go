package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/skillsense/ai-engine/internal/config"
	"github.com/skillsense/ai-engine/internal/provider"
	"github.com/skillsense/ai-engine/internal/server"
	"github.com/skillsense/ai-engine/internal/service"
)

var (
	servePort     int
	serveProvider string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume analysis, skill gap and roadmap endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", "AI provider to use (overrides AI_PROVIDER)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}
	if serveProvider != "" {
		cfg.Provider = serveProvider
	}

	ctx := context.Background()

	p, err := provider.New(ctx, provider.Options{
		Vendor:      cfg.Provider,
		Temperature: &cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	svc := service.New(p, cfg)

	// Probe the provider once at startup. A failing backend is logged but
	// does not prevent the server from starting; health reports degraded.
	health := p.HealthCheck(ctx)
	if health.Status.OK() {
		log.Printf("[startup] provider %s (%s) reachable in %.0fms", p.Name(), p.Model(), health.LatencyMS)
	} else {
		log.Printf("[startup] provider %s unreachable, starting degraded: %s", p.Name(), health.Error)
	}

	return server.New(cfg, svc).Start()
}
