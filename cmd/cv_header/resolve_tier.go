// Package main provides the cv_header CLI: tailored CV header generation from a stitched CV,
// a structured job description and a skill whitelist.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/ensemble"
)

var resolveTierCmd = &cobra.Command{
	Use:   "resolve-tier",
	Short: "Print the processing tier for a fit score",
	RunE:  runResolveTier,
}

var resolveTierFitScore float64

func init() {
	resolveTierCmd.Flags().Float64Var(&resolveTierFitScore, "fit-score", 0, "Job fit score 0-100 (required)")
	_ = resolveTierCmd.MarkFlagRequired("fit-score")

	rootCmd.AddCommand(resolveTierCmd)
}

func runResolveTier(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	line, err := describeTier(resolveTierFitScore, cfg.Tiers)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, line)
	return nil
}

// describeTier formats the tier of score with its personas and grounding policy
func describeTier(score float64, thresholds ensemble.Thresholds) (string, error) {
	if score < 0 || score > 100 {
		return "", fmt.Errorf("fit score must be between 0 and 100, got %.1f", score)
	}
	tier := thresholds.Resolve(score)
	personas := "single-pass"
	if tier.Ensembled() {
		names := make([]string, 0, len(tier.Personas()))
		for _, p := range tier.Personas() {
			names = append(names, string(p))
		}
		personas = strings.Join(names, ",")
	}
	return fmt.Sprintf("%s personas=%s policy=%s", strings.ToUpper(string(tier)), personas, tier.GroundingPolicy()), nil
}
