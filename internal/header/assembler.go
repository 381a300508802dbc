// Package header provides the header assembler: it runs skills selection, profile generation
// and grounding for one job, and renders the assembled header as markdown.
package header

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonathan/cv-tailor/internal/ensemble"
	"github.com/jonathan/cv-tailor/internal/grounding"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/profile"
	"github.com/jonathan/cv-tailor/internal/roles"
	"github.com/jonathan/cv-tailor/internal/skills"
	"github.com/jonathan/cv-tailor/internal/types"
)

const tracerName = "github.com/jonathan/cv-tailor/internal/header"

// Request is everything one header is generated from
type Request struct {
	JobID       string
	CV          *types.StitchedCV
	Job         *types.JobDescription
	Candidate   types.CandidateMetadata
	Whitelist   *types.SkillWhitelist
	Annotations []types.AnnotationPriority
	// FitScore takes precedence over Job.FitScore. With neither set the request runs as BRONZE.
	FitScore *float64
	// Tier overrides the fit score
	Tier ensemble.Tier
	// Category overrides Job.RoleCategory
	Category string
}

// Options configures the assembler's components
type Options struct {
	Skills   skills.Options
	Ensemble ensemble.Options
}

// DefaultOptions returns the default skills and ensemble options
func DefaultOptions() Options {
	return Options{
		Skills:   skills.DefaultOptions(),
		Ensemble: ensemble.DefaultOptions(),
	}
}

// Assembler produces HeaderOutputs
type Assembler struct {
	skills       *skills.Engine
	orchestrator *ensemble.Orchestrator
	validator    *grounding.Validator
	logger       zerolog.Logger
	tracer       trace.Tracer
}

// NewAssembler wires the skills engine, the ensemble orchestrator and the grounding validator.
// client may be nil; every LLM-backed step then takes its deterministic fallback.
func NewAssembler(client llm.Client, opts Options, logger zerolog.Logger) *Assembler {
	generator := profile.NewGenerator(client, logger)
	return &Assembler{
		skills:       skills.NewEngine(opts.Skills, logger),
		orchestrator: ensemble.NewOrchestrator(client, generator, opts.Ensemble, logger),
		validator:    grounding.NewValidator(logger),
		logger:       logger.With().Str("component", "header").Logger(),
		tracer:       otel.Tracer(tracerName),
	}
}

// Assemble generates the header for one job. It fails only on an unusable request:
// a missing job description or an unknown role category.
func (a *Assembler) Assemble(ctx context.Context, req Request) (*types.HeaderOutput, error) {
	if req.Job == nil {
		return nil, &InputError{Message: "job description is required"}
	}
	categoryName := req.Category
	if categoryName == "" {
		categoryName = req.Job.RoleCategory
	}
	category, err := roles.Parse(categoryName)
	if err != nil {
		return nil, &InputError{Message: "unusable role category", Cause: err}
	}
	roleProfile, err := roles.Lookup(category)
	if err != nil {
		return nil, &InputError{Message: "no profile for role category", Cause: err}
	}

	cv := req.CV
	if cv == nil {
		cv = &types.StitchedCV{}
	}
	jobID := req.JobID
	if jobID == "" {
		jobID = req.Job.JobID
	}

	start := time.Now()
	ctx, span := a.tracer.Start(ctx, "header.assemble", trace.WithAttributes(
		attribute.String("header.role", category.String()),
		attribute.String("header.job_id", jobID),
	))
	defer span.End()

	skillsResult, err := a.skills.Select(skills.Input{
		Profile:     roleProfile,
		Job:         req.Job,
		CV:          cv,
		Whitelist:   req.Whitelist,
		Annotations: req.Annotations,
	})
	if err != nil {
		span.RecordError(err)
		return nil, &InputError{Message: "skills selection rejected the request", Cause: err}
	}

	out, err := a.orchestrator.Generate(ctx, ensemble.Input{
		Profile:     roleProfile,
		Job:         req.Job,
		CV:          cv,
		Skills:      skillsResult,
		Annotations: req.Annotations,
		FitScore:    a.fitScore(req),
		Tier:        req.Tier,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	evidence := grounding.NewEvidence(cv, req.Whitelist)
	content, report := a.validator.Validate(grounding.Content{
		Profile:      out.Profile.Output,
		Sections:     skillsResult.Sections,
		Competencies: skillsResult.Competencies,
	}, evidence, out.Policy)

	h := &types.HeaderOutput{
		JobID:                  jobID,
		RoleCategory:           string(category),
		Executive:              category.IsExecutive(),
		Candidate:              req.Candidate,
		Profile:                content.Profile,
		SkillsSections:         content.Sections,
		CoreCompetencySections: content.Competencies,
		Education:              orEmpty(req.Candidate.Education),
		Certifications:         orEmpty(req.Candidate.Certifications),
		Languages:              orEmpty(req.Candidate.Languages),
		Validation:             report.Result,
		Ensemble:               out.Metadata,
		Provenance: types.HeaderProvenance{
			Achievements:         orEmpty(out.Profile.Sources),
			Skills:               pruneProvenance(skillsResult.Provenance, content),
			TaglineFallback:      content.Profile.TaglineFallback,
			AchievementsFallback: out.Profile.AchievementsFallback,
			NeedsReview:          out.Selection.NeedsReview || report.Flags.HasIssues(),
			Selection:            out.Selection,
		},
	}
	h.Ensemble.ValidationPolicy = string(report.Policy)
	h.Ensemble.ValidationFlags = report.Flags
	h.Profile.KeyAchievements = orEmpty(h.Profile.KeyAchievements)
	h.Profile.CoreCompetencies = orEmpty(h.Profile.CoreCompetencies)

	elapsed := time.Since(start).Milliseconds()
	rejected := len(h.Provenance.Skills.RejectedJDSkills)
	span.SetAttributes(
		attribute.String("header.tier", h.Ensemble.Tier),
		attribute.Int("header.skills", len(h.AllSkills())),
		attribute.Int("header.rejected_jd_skills", rejected),
	)
	a.logger.Info().
		Str("job_id", jobID).
		Str("role", category.String()).
		Str("tier", h.Ensemble.Tier).
		Int("passes", h.Ensemble.PassesExecuted).
		Strs("personas", h.Ensemble.PersonasUsed).
		Int("skills", countSkills(h.SkillsSections)).
		Int("rejected_jd_skills", rejected).
		Int64("elapsed_ms", elapsed).
		Msg("header assembled")

	return h, nil
}

// fitScore picks the request score, then the job score, then the BRONZE threshold
func (a *Assembler) fitScore(req Request) float64 {
	switch {
	case req.FitScore != nil:
		return *req.FitScore
	case req.Job.FitScore != nil:
		return float64(*req.Job.FitScore)
	default:
		return a.orchestrator.Thresholds().Bronze
	}
}

// pruneProvenance drops skills that grounding removed from the emitted lists
func pruneProvenance(p types.SkillsProvenance, content grounding.Content) types.SkillsProvenance {
	emitted := make(map[string]bool)
	for _, section := range content.Sections {
		for _, name := range section.Names() {
			emitted[types.FoldSkill(name)] = true
		}
	}
	keep := func(names []string) []string {
		kept := make([]string, 0, len(names))
		for _, name := range names {
			if emitted[types.FoldSkill(name)] {
				kept = append(kept, name)
			}
		}
		return kept
	}
	return types.SkillsProvenance{
		AllFromWhitelist:    p.AllFromWhitelist,
		JDMatchedSkills:     keep(p.JDMatchedSkills),
		WhitelistOnlySkills: keep(p.WhitelistOnlySkills),
		RejectedJDSkills:    orEmpty(p.RejectedJDSkills),
	}
}

func countSkills(sections []types.SkillsSection) int {
	n := 0
	for _, section := range sections {
		n += len(section.Skills)
	}
	return n
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
