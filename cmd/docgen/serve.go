package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/document-generator/internal/pipeline"
	"github.com/jonathan/document-generator/internal/server"
	"github.com/jonathan/document-generator/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server exposing POST /generate, POST /generate/stream and GET /health.`,
	RunE:  runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}
	geometry, err := cfg.Render.Geometry()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	gen := pipeline.NewGenerator(client, newRenderer(cfg), log, pipeline.Options{
		Geometry:   geometry,
		LLMTimeout: cfg.LLM.Timeout,
	})

	rl := cfg.Server.RateLimit
	srv := server.New(server.Config{
		Port:           cfg.Server.Port,
		AllowedOrigin:  cfg.Server.AllowedOrigin,
		MaxConcurrent:  cfg.Server.MaxConcurrent,
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimit:      ratelimit.NewConfig(rl.Enabled, rl.Limit, rl.Window, rl.Burst, rl.Whitelist),
	}, gen, log)

	return srv.Run(ctx)
}
