// Package ensemble provides tier resolution and the ensemble orchestrator: persona passes over the
// achievement selector and profile generator, a synthesis call that merges them, and the
// single-pass path for lower tiers.
package ensemble

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-tailor/internal/achievements"
	"github.com/jonathan/cv-tailor/internal/grounding"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/profile"
	"github.com/jonathan/cv-tailor/internal/roles"
	"github.com/jonathan/cv-tailor/internal/skills"
	"github.com/jonathan/cv-tailor/internal/types"
)

const tracerName = "github.com/jonathan/cv-tailor/internal/ensemble"

// Error represents an orchestration failure
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ensemble: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("ensemble: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures tier resolution and the passes
type Options struct {
	Thresholds  Thresholds
	Weights     types.ScoringWeights
	TargetCount int
	// UseLLM enables the LLM selection call on every tier except SKIP
	UseLLM bool
}

// DefaultOptions returns the default thresholds, weights and target count with LLM selection on
func DefaultOptions() Options {
	return Options{
		Thresholds:  DefaultThresholds(),
		Weights:     types.DefaultScoringWeights(),
		TargetCount: achievements.DefaultTargetCount,
		UseLLM:      true,
	}
}

func (o Options) target() int {
	if o.TargetCount <= 0 {
		return achievements.DefaultTargetCount
	}
	return o.TargetCount
}

// Input is one generation request
type Input struct {
	Profile     *roles.Profile
	Job         *types.JobDescription
	CV          *types.StitchedCV
	Skills      *skills.Result
	Annotations []types.AnnotationPriority
	FitScore    float64
	// Tier overrides the fit score when set
	Tier Tier
}

// Output is the generated profile and how it was produced
type Output struct {
	Tier      Tier
	Profile   *profile.Result
	Selection types.SelectionResult
	// Policy is the grounding policy the assembled header must be validated with
	Policy   grounding.Policy
	Metadata types.EnsembleMetadata
}

// personaRun is the outcome of one persona pass
type personaRun struct {
	persona   Persona
	selection *achievements.Selection
	result    *profile.Result
	err       error
}

// score sums the achievement scores of the pass
func (r personaRun) score() float64 {
	total := 0.0
	for _, src := range r.result.Sources {
		total += src.Score.Total
	}
	return total
}

// Orchestrator runs the tier state machine
type Orchestrator struct {
	client    llm.Client
	generator *profile.Generator
	opts      Options
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewOrchestrator creates an orchestrator. client may be nil, which forces the single-pass path.
func NewOrchestrator(client llm.Client, generator *profile.Generator, opts Options, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		client:    client,
		generator: generator,
		opts:      opts,
		logger:    logger.With().Str("component", "ensemble").Logger(),
		tracer:    otel.Tracer(tracerName),
	}
}

// Thresholds returns the configured tier thresholds
func (o *Orchestrator) Thresholds() Thresholds {
	return o.opts.Thresholds
}

// Generate resolves the tier and produces the profile. Only a missing role profile fails;
// persona and synthesis failures degrade and are recorded in the metadata.
func (o *Orchestrator) Generate(ctx context.Context, in Input) (*Output, error) {
	if in.Profile == nil {
		return nil, &Error{Message: "role profile is required"}
	}

	start := time.Now()
	tier := ResolveTier(in.FitScore, in.Tier, o.opts.Thresholds)
	ctx, span := o.tracer.Start(ctx, "ensemble.generate", trace.WithAttributes(
		attribute.String("ensemble.tier", string(tier)),
		attribute.Float64("ensemble.fit_score", in.FitScore),
		attribute.String("ensemble.role", in.Profile.Category.String()),
	))
	defer span.End()

	var out *Output
	var err error
	switch {
	case tier.Ensembled() && o.client != nil:
		out, err = o.runEnsemble(ctx, in, tier)
	case tier.Ensembled():
		o.logger.Warn().Str("tier", string(tier)).Msg("no llm client configured, running single pass")
		out, err = o.runSingle(ctx, in, tier)
		if err == nil {
			out.Metadata.Degraded = true
		}
	default:
		out, err = o.runSingle(ctx, in, tier)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out.Metadata.GenerationTimeMS = time.Since(start).Milliseconds()
	span.SetAttributes(
		attribute.Int("ensemble.passes", out.Metadata.PassesExecuted),
		attribute.Bool("ensemble.synthesis_applied", out.Metadata.SynthesisApplied),
		attribute.Bool("ensemble.degraded", out.Metadata.Degraded),
	)
	o.logger.Debug().
		Str("tier", string(tier)).
		Int("passes", out.Metadata.PassesExecuted).
		Strs("personas", out.Metadata.PersonasUsed).
		Bool("synthesis_applied", out.Metadata.SynthesisApplied).
		Int64("elapsed_ms", out.Metadata.GenerationTimeMS).
		Msg("profile generated")
	return out, nil
}

// runSingle is the BRONZE/SKIP path: one selection, one profile. SKIP selects without the LLM.
// An ensemble tier that lands here has degraded and is validated in remove mode.
func (o *Orchestrator) runSingle(ctx context.Context, in Input, tier Tier) (*Output, error) {
	preferred := achievements.PreferredVariant(in.Profile.Category)
	useLLM := o.opts.UseLLM && tier != TierSkip
	selection := o.selector(o.opts.Weights).Select(ctx, o.selectionInput(in, preferred, "", useLLM))

	result, err := o.generator.Generate(ctx, o.profileInput(in, selection, "", ""))
	if err != nil {
		return nil, &Error{Message: "single pass failed", Cause: err}
	}

	policy := tier.GroundingPolicy()
	if tier.Ensembled() {
		policy = grounding.PolicyRemove
	}
	return &Output{
		Tier:      tier,
		Profile:   result,
		Selection: selectionResult(result, selection),
		Policy:    policy,
		Metadata: types.EnsembleMetadata{
			Tier:             string(tier),
			PassesExecuted:   1,
			PersonasUsed:     []string{},
			ValidationPolicy: string(policy),
		},
	}, nil
}

// runEnsemble runs the tier's personas concurrently, then merges the survivors
func (o *Orchestrator) runEnsemble(ctx context.Context, in Input, tier Tier) (*Output, error) {
	personas := tier.Personas()
	runs := make([]personaRun, len(personas))

	g, gCtx := errgroup.WithContext(ctx)
	for i, p := range personas {
		g.Go(func() error {
			runs[i] = o.runPersona(gCtx, in, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &Error{Message: "persona passes failed", Cause: err}
	}

	survivors := make([]personaRun, 0, len(runs))
	used := make([]Persona, 0, len(runs))
	failed := make([]string, 0)
	for _, run := range runs {
		if run.err != nil {
			failed = append(failed, string(run.persona))
			continue
		}
		survivors = append(survivors, run)
		used = append(used, run.persona)
	}

	if len(survivors) == 0 {
		o.logger.Warn().
			Str("tier", string(tier)).
			Strs("failed_personas", failed).
			Msg("every persona pass failed, running single pass")
		out, err := o.runSingle(ctx, in, tier)
		if err != nil {
			return nil, err
		}
		out.Metadata.PassesExecuted = len(personas) + 1
		out.Metadata.FailedPersonas = failed
		out.Metadata.Degraded = true
		return out, nil
	}

	best := bestRun(survivors)
	out := &Output{
		Tier:      tier,
		Profile:   best.result,
		Selection: selectionResult(best.result, best.selection),
		Policy:    tier.GroundingPolicy(),
		Metadata: types.EnsembleMetadata{
			Tier:             string(tier),
			PassesExecuted:   len(personas),
			PersonasUsed:     personaNames(used),
			ValidationPolicy: string(tier.GroundingPolicy()),
		},
	}
	if len(failed) > 0 {
		out.Metadata.FailedPersonas = failed
	}

	if len(survivors) == 1 {
		o.logger.Warn().
			Str("tier", string(tier)).
			Str("persona", string(best.persona)).
			Strs("failed_personas", failed).
			Msg("one persona survived, skipping synthesis")
		return out, nil
	}

	merged, err := o.synthesize(ctx, in, survivors, best)
	if err != nil {
		o.logger.Warn().
			Err(err).
			Str("tier", string(tier)).
			Str("persona", string(best.persona)).
			Msg("synthesis failed, using best persona output")
		return out, nil
	}
	out.Profile = merged
	out.Selection = selectionResult(merged, best.selection)
	out.Metadata.SynthesisApplied = true
	out.Metadata.SynthesisModel = o.client.Model(llm.PurposeSynthesis)
	return out, nil
}

// runPersona is one persona pass. The value proposition must come from the LLM.
func (o *Orchestrator) runPersona(ctx context.Context, in Input, p Persona) personaRun {
	ctx, span := o.tracer.Start(ctx, "ensemble.persona", trace.WithAttributes(
		attribute.String("ensemble.persona", string(p)),
	))
	defer span.End()

	focus := p.Focus()
	variant := p.Variant(achievements.PreferredVariant(in.Profile.Category))
	selection := o.selector(p.Weights(o.opts.Weights)).Select(ctx, o.selectionInput(in, variant, focus, o.opts.UseLLM))

	result, err := o.generator.Draft(ctx, o.profileInput(in, selection, focus, llm.PurposeComplex))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.logger.Warn().
			Err(err).
			Str("persona", string(p)).
			Msg("persona pass failed, dropping it from synthesis")
		return personaRun{persona: p, err: err}
	}
	return personaRun{persona: p, selection: selection, result: result}
}

func (o *Orchestrator) selector(weights types.ScoringWeights) *achievements.Selector {
	return achievements.NewSelector(achievements.NewScorer(weights), o.client, o.logger)
}

func (o *Orchestrator) selectionInput(in Input, variant achievements.Variant, focus string, useLLM bool) achievements.Input {
	var title, company string
	if in.Job != nil {
		title, company = in.Job.Title, in.Job.Company
	}
	return achievements.Input{
		Pool:    achievements.FlattenPool(in.CV),
		Job:     achievements.NewJobContext(in.Job, in.Profile.EmphasisAreas, in.Annotations, variant),
		Title:   title,
		Company: company,
		Target:  o.opts.target(),
		UseLLM:  useLLM,
		Focus:   focus,
	}
}

func (o *Orchestrator) profileInput(in Input, selection *achievements.Selection, focus string, purpose llm.Purpose) profile.Input {
	return profile.Input{
		Profile:       in.Profile,
		Job:           in.Job,
		CV:            in.CV,
		Achievements:  selection,
		Skills:        in.Skills,
		CoreStrengths: types.CoreStrengths(in.Annotations),
		Focus:         focus,
		Purpose:       purpose,
	}
}

// bestRun returns the pass whose achievements score highest; ties keep persona order
func bestRun(runs []personaRun) personaRun {
	best := runs[0]
	for _, run := range runs[1:] {
		if run.score() > best.score() {
			best = run
		}
	}
	return best
}

// selectionResult reports the selection that reached the profile
func selectionResult(result *profile.Result, selection *achievements.Selection) types.SelectionResult {
	summary := selection.Result
	summary.SelectedCount = len(result.Sources)
	if result.AchievementsFallback {
		summary.Method = types.SelectionFallback
		summary.SelectedCount = len(result.Output.KeyAchievements)
	}
	return summary
}
