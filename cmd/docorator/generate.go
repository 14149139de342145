package main

import (
	"context"
	"fmt"

	"github.com/jonathan/docorator/internal/types"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a document from a draft file",
	Long: `Reads a draft file ({"doc_type": ..., "input_data": {...}}), sends it to the
service and writes the rendered document to the output directory.

With --guided the service rewrites the content using the --context text.`,
	RunE: runGenerate,
}

var (
	generateInput   string
	generateGuided  bool
	generateContext string
	generateOutDir  string
)

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "Path to draft JSON file (required)")
	generateCmd.Flags().BoolVar(&generateGuided, "guided", false, "Let the service rewrite the content")
	generateCmd.Flags().StringVar(&generateContext, "context", "", "Context for guided mode")
	generateCmd.Flags().StringVarP(&generateOutDir, "out", "o", "", "Output directory (defaults to artifact_dir)")

	if err := generateCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	d, err := readDraftFile(generateInput)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	c, view := a.controller(generateOutDir)
	view.Quiet = !a.cfg.Verbose
	c.Restore(d)
	if generateGuided {
		c.SetMode(types.ModeGuided)
		c.SetAIContext(generateContext)
	}
	if a.cfg.Verbose {
		a.printer.PrintDraft(c.Draft(), c.Mode())
	}

	if _, err := c.Submit(context.Background()); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	return nil
}
