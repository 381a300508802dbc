// Package main provides the cv_header CLI: tailored CV header generation from a stitched CV,
// a structured job description and a skill whitelist.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/grounding"
	"github.com/jonathan/cv-tailor/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Re-check a generated header against the CV and whitelist",
	Long: "Runs the grounding validator over an existing header. In remove mode the cleaned header is " +
		"written to --out; the validation report always goes to stdout.",
	RunE: runValidate,
}

var (
	validateHeaderFile    string
	validateCVFile        string
	validateWhitelistFile string
	validatePolicy        string
	validateOutputFile    string
)

func init() {
	validateCmd.Flags().StringVar(&validateHeaderFile, "header", "", "Path to HeaderOutput JSON file (required)")
	validateCmd.Flags().StringVar(&validateCVFile, "cv", "", "Path to StitchedCV JSON file (required)")
	validateCmd.Flags().StringVar(&validateWhitelistFile, "whitelist", "", "Path to SkillWhitelist JSON file (required)")
	validateCmd.Flags().StringVar(&validatePolicy, "policy", string(grounding.PolicyRemove), "Grounding policy: remove, flag or none")
	validateCmd.Flags().StringVarP(&validateOutputFile, "out", "o", "", "Write the validated header to this path")

	_ = validateCmd.MarkFlagRequired("header")
	_ = validateCmd.MarkFlagRequired("cv")
	_ = validateCmd.MarkFlagRequired("whitelist")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	policy, err := grounding.ParsePolicy(validatePolicy)
	if err != nil {
		return err
	}
	h, err := readHeader(validateHeaderFile)
	if err != nil {
		return err
	}
	cv, err := readJSON[types.StitchedCV](validateCVFile, "cv")
	if err != nil {
		return err
	}
	whitelist, err := readJSON[types.SkillWhitelist](validateWhitelistFile, "whitelist")
	if err != nil {
		return err
	}

	report := revalidate(h, grounding.NewEvidence(cv, whitelist), policy, grounding.NewValidator(logger))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))

	if validateOutputFile != "" {
		out, err := h.JSON()
		if err != nil {
			return fmt.Errorf("failed to marshal header: %w", err)
		}
		return writeOutput(validateOutputFile, append(out, '\n'))
	}
	return nil
}

// validationReport is the stdout summary of one revalidation
type validationReport struct {
	Policy string                  `json:"policy"`
	Result *types.ValidationResult `json:"result,omitempty"`
	Flags  *types.ValidationFlags  `json:"flags,omitempty"`
}

// revalidate applies policy to h in place and returns the report
func revalidate(h *types.HeaderOutput, ev *grounding.Evidence, policy grounding.Policy, v *grounding.Validator) validationReport {
	cleaned, report := v.Validate(grounding.Content{
		Profile:      h.Profile,
		Sections:     h.SkillsSections,
		Competencies: h.CoreCompetencySections,
	}, ev, policy)

	h.Profile = cleaned.Profile
	h.SkillsSections = cleaned.Sections
	h.CoreCompetencySections = cleaned.Competencies
	h.Validation = report.Result
	h.Ensemble.ValidationPolicy = string(report.Policy)
	h.Ensemble.ValidationFlags = report.Flags
	if report.Flags.HasIssues() {
		h.Provenance.NeedsReview = true
	}

	return validationReport{Policy: string(report.Policy), Result: report.Result, Flags: report.Flags}
}
