package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobradar/internal/config"
	"github.com/jonathan/jobradar/internal/server"
	"github.com/jonathan/jobradar/internal/warm"
)

var (
	servePort int
	serveWarm bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the aggregated job listing endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveWarm, "warm", false, "Periodically refresh listing caches in the background")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	engine, resolver := buildStack(cfg)

	if serveWarm {
		warmer := warm.New(engine, cfg.WarmSchedule)
		if err := warmer.Start(context.Background()); err != nil {
			return fmt.Errorf("failed to start cache warmer: %w", err)
		}
		defer warmer.Stop()
	}

	srv := server.New(server.Config{
		Port:           cfg.Port,
		EnabledSources: cfg.EnabledSources(),
	}, engine, resolver)

	return srv.Start()
}
