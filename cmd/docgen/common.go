package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/document-generator/internal/config"
	"github.com/jonathan/document-generator/internal/llm"
	"github.com/jonathan/document-generator/internal/logger"
	"github.com/jonathan/document-generator/internal/rendering"
	"github.com/jonathan/document-generator/internal/types"
)

// Constructors for the external collaborators; tests swap them for fakes.
var (
	newLLMClient = func(ctx context.Context, cfg *config.Config) (llm.Client, error) {
		return llm.NewClient(ctx, cfg.LLM.ClientConfig(), cfg.LLM.APIKey)
	}
	newRenderer = func(cfg *config.Config) rendering.Renderer {
		return rendering.NewChromeRenderer(cfg.Render.ChromeOptions())
	}
)

// loadConfig loads configuration from --config and the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// openInput opens path, or the command's stdin when path is empty or "-".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return f, nil
}

// readInput reads all of path, or of stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	in, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer in.Close() //nolint:errcheck

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// readRequest decodes a generation request from path or stdin.
func readRequest(cmd *cobra.Command, path string) (*types.Request, error) {
	in, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer in.Close() //nolint:errcheck

	return types.DecodeRequest(in)
}

// writeOutput writes data to path, or to the command's stdout when path is
// empty or "-". Files are written through a temporary sibling so a failed
// write leaves nothing behind.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("failed to write stdout: %w", err)
		}
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".docgen-*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
