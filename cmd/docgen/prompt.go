package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/document-generator/internal/prompts"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt a request would send to the model",
	Long:  `Builds the generation prompt for a request without calling the model. Input defaults to stdin.`,
	RunE:  runPrompt,
}

var promptIn string

func init() {
	promptCmd.Flags().StringVarP(&promptIn, "in", "i", "", "Path to the request JSON (default stdin)")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	req, err := readRequest(cmd, promptIn)
	if err != nil {
		return err
	}

	prompt, err := prompts.Build(req.DocType, req.Data)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), prompt)
	return err
}
