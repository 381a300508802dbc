// Package main provides the cv_header CLI: tailored CV header generation from a stitched CV,
// a structured job description and a skill whitelist.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/header"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a header JSON file as markdown",
	RunE:  runRender,
}

var (
	renderHeaderFile string
	renderOutputFile string
)

func init() {
	renderCmd.Flags().StringVar(&renderHeaderFile, "header", "", "Path to HeaderOutput JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Path to output markdown file (stdout if empty)")
	_ = renderCmd.MarkFlagRequired("header")

	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, _ []string) error {
	h, err := readHeader(renderHeaderFile)
	if err != nil {
		return err
	}
	markdown, err := header.RenderMarkdown(h)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	return writeOutput(renderOutputFile, []byte(markdown))
}
