package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/document-generator/internal/layout"
	"github.com/jonathan/document-generator/internal/observability"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify generated text into styled blocks",
	Long: `Reads model output, removes duplicated identity headers and prints the
blocks the renderer would draw. Input defaults to stdin.`,
	RunE: runClassify,
}

var (
	classifyIn       string
	classifyJSON     bool
	classifyNoDedupe bool
)

func init() {
	classifyCmd.Flags().StringVarP(&classifyIn, "in", "i", "", "Path to the generated text (default stdin)")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Print blocks as JSON")
	classifyCmd.Flags().BoolVar(&classifyNoDedupe, "no-dedupe", false, "Skip header deduplication")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, _ []string) error {
	data, err := readInput(cmd, classifyIn)
	if err != nil {
		return err
	}

	text := string(data)
	before := layout.CountHeaders(text)
	if !classifyNoDedupe {
		text = layout.DedupeHeader(text)
	}
	blocks := layout.Classify(text)

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "identity headers: %d in input, %d after dedupe\n", before, layout.CountHeaders(text))
	}

	if classifyJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(blocks)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintBlocks(blocks)
	return nil
}
