package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/document-generator/internal/observability"
	"github.com/jonathan/document-generator/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a PDF document from a request",
	Long: `Reads a request {"doc_type": "cv"|"sop"|"lor", "data": {...}} as JSON and writes
the rendered PDF. Input defaults to stdin and output to stdout; nothing is
written when generation fails.`,
	Example: `  docgen generate < request.json > cv.pdf
  docgen generate --in request.json --out cv.pdf`,
	RunE: runGenerate,
}

var (
	generateIn  string
	generateOut string
)

func init() {
	generateCmd.Flags().StringVarP(&generateIn, "in", "i", "", "Path to the request JSON (default stdin)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Path to write the PDF (default stdout)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
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

	req, err := readRequest(cmd, generateIn)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	gen := pipeline.NewGenerator(client, newRenderer(cfg), log, pipeline.Options{
		Geometry:   geometry,
		LLMTimeout: cfg.LLM.Timeout,
	})

	result, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}

	if err := writeOutput(cmd, generateOut, result.PDF); err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintResult(result)
	}
	return nil
}
