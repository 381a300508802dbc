// Package main provides the cv_header CLI: tailored CV header generation from a stitched CV,
// a structured job description and a skill whitelist.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/config"
	"github.com/jonathan/cv-tailor/internal/ensemble"
	"github.com/jonathan/cv-tailor/internal/header"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/observability"
	"github.com/jonathan/cv-tailor/internal/schemas"
	"github.com/jonathan/cv-tailor/internal/store"
	"github.com/jonathan/cv-tailor/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored CV header",
	Long: "Runs skills selection, profile generation and grounding for one job and writes the header JSON. " +
		"The processing tier comes from --tier, else --fit-score, else the job's fit_score.",
	RunE: runGenerate,
}

var (
	generateCVFile          string
	generateJDFile          string
	generateWhitelistFile   string
	generateCandidateFile   string
	generateAnnotationsFile string
	generateFitScore        float64
	generateTier            string
	generateCategory        string
	generateJobID           string
	generateLax             bool
	generateNoLLM           bool
	generateOutputFile      string
	generateMarkdownFile    string
)

func init() {
	generateCmd.Flags().StringVar(&generateCVFile, "cv", "", "Path to StitchedCV JSON file (required)")
	generateCmd.Flags().StringVar(&generateJDFile, "jd", "", "Path to JobDescription JSON file (required)")
	generateCmd.Flags().StringVar(&generateWhitelistFile, "whitelist", "", "Path to SkillWhitelist JSON file (required)")
	generateCmd.Flags().StringVar(&generateCandidateFile, "candidate", "", "Path to candidate metadata JSON file (required)")
	generateCmd.Flags().StringVar(&generateAnnotationsFile, "annotations", "", "Path to annotation priorities JSON file (optional)")
	generateCmd.Flags().Float64Var(&generateFitScore, "fit-score", 0, "Job fit score 0-100, selects the tier")
	generateCmd.Flags().StringVar(&generateTier, "tier", "", "Force a tier: gold, silver, bronze or skip")
	generateCmd.Flags().StringVar(&generateCategory, "role", "", "Override the job's role category")
	generateCmd.Flags().StringVar(&generateJobID, "job-id", "", "Job ID used as the store key (defaults to the JD's job_id)")
	generateCmd.Flags().BoolVar(&generateLax, "lax", false, "Widen skills sections for human pruning")
	generateCmd.Flags().BoolVar(&generateNoLLM, "no-llm", false, "Run without an LLM: template taglines and algorithmic selection")
	generateCmd.Flags().StringVarP(&generateOutputFile, "out", "o", "", "Path to output header JSON file (stdout if empty)")
	generateCmd.Flags().StringVar(&generateMarkdownFile, "markdown", "", "Also write the markdown rendering to this path")

	_ = generateCmd.MarkFlagRequired("cv")
	_ = generateCmd.MarkFlagRequired("jd")
	_ = generateCmd.MarkFlagRequired("whitelist")
	_ = generateCmd.MarkFlagRequired("candidate")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if generateLax {
		cfg.Skills.LaxMode = true
	}
	logger := newLogger(cfg)
	ctx := context.Background()

	tier, err := ensemble.ParseTier(generateTier)
	if err != nil {
		return err
	}
	req, err := loadRequest()
	if err != nil {
		return err
	}
	req.Tier = tier
	if cmd.Flags().Changed("fit-score") {
		if generateFitScore < 0 || generateFitScore > 100 {
			return fmt.Errorf("--fit-score must be between 0 and 100, got %.1f", generateFitScore)
		}
		score := generateFitScore
		req.FitScore = &score
	}

	client, err := newLLMClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	kv, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = kv.Close() }()

	svc := header.NewService(header.NewAssembler(client, cfg.HeaderOptions(), logger), kv, logger)
	h, run, err := svc.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to generate header: %w", err)
	}

	data, err := h.JSON()
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	validateHeaderSchema(data, logger)
	if err := writeOutput(generateOutputFile, append(data, '\n')); err != nil {
		return err
	}

	if generateMarkdownFile != "" {
		markdown, err := header.RenderMarkdown(h)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		if err := writeOutput(generateMarkdownFile, []byte(markdown)); err != nil {
			return err
		}
	}

	if verbose {
		observability.NewPrinter(os.Stderr).PrintHeader(h)
	}
	if generateOutputFile != "" {
		fmt.Fprintf(os.Stderr, "Generated %s header (run %s)\n", strings.ToUpper(h.Ensemble.Tier), run.ID)
		fmt.Fprintf(os.Stderr, "  Skills: %d, rejected JD skills: %d\n", len(h.AllSkills()), len(h.Provenance.Skills.RejectedJDSkills))
		fmt.Fprintf(os.Stderr, "  Output: %s\n", generateOutputFile)
	}
	return nil
}

func loadRequest() (header.Request, error) {
	cv, err := readJSON[types.StitchedCV](generateCVFile, "cv")
	if err != nil {
		return header.Request{}, err
	}
	job, err := readJSON[types.JobDescription](generateJDFile, "job description")
	if err != nil {
		return header.Request{}, err
	}
	whitelist, err := readJSON[types.SkillWhitelist](generateWhitelistFile, "whitelist")
	if err != nil {
		return header.Request{}, err
	}
	candidate, err := readJSON[types.CandidateMetadata](generateCandidateFile, "candidate")
	if err != nil {
		return header.Request{}, err
	}
	if err := candidate.Validate(); err != nil {
		return header.Request{}, fmt.Errorf("invalid candidate metadata: %w", err)
	}

	req := header.Request{
		JobID:     generateJobID,
		CV:        cv,
		Job:       job,
		Candidate: *candidate,
		Whitelist: whitelist,
		Category:  generateCategory,
	}
	if generateAnnotationsFile != "" {
		annotations, err := readJSON[[]types.AnnotationPriority](generateAnnotationsFile, "annotations")
		if err != nil {
			return header.Request{}, err
		}
		req.Annotations = *annotations
	}
	return req, nil
}

// newLLMClient returns the retrying provider client, or nil when LLM calls are disabled or no key is set
func newLLMClient(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (llm.Client, error) {
	if generateNoLLM {
		return nil, nil
	}
	apiKey := os.Getenv(cfg.APIKeyEnv())
	if apiKey == "" {
		logger.Warn().Str("env", cfg.APIKeyEnv()).Msg("no api key set, generating without llm")
		return nil, nil
	}
	client, err := llm.NewClient(ctx, cfg.LLMConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return llm.NewRetryingClient(client, cfg.RetryPolicy(), logger), nil
}

// validateHeaderSchema checks the output against the header schema. Failures are logged, not returned.
func validateHeaderSchema(data []byte, logger zerolog.Logger) {
	schemaPath := schemas.ResolveSchemaPath(schemas.HeaderOutputSchemaPath)
	if schemaPath == "" {
		logger.Debug().Msg("header schema not found, skipping output validation")
		return
	}
	if err := schemas.ValidateFileBytes(schemaPath, data); err != nil {
		logger.Warn().Err(err).Msg("header output does not match schema")
	}
}
