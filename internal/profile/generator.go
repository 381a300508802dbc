// Package profile provides the header profile generator: the algorithmic headline, the
// LLM-written value proposition with its mechanical checks, and the role fallback path.
package profile

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonathan/cv-tailor/internal/achievements"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/roles"
	"github.com/jonathan/cv-tailor/internal/skills"
	"github.com/jonathan/cv-tailor/internal/types"
)

const tracerName = "github.com/jonathan/cv-tailor/internal/profile"

const (
	// promptAchievements is how many top-scored bullets the value-proposition prompt sees
	promptAchievements = 10
	// coreLineSkills caps the inline core competency list
	coreLineSkills = 8
)

var valuePropositionSchema = &llm.OutputSchema{
	Name:        "value_proposition",
	Description: "header tagline and completeness checklist",
	Fields: []llm.SchemaField{
		{Name: "tagline", Type: llm.FieldString, Description: "15-25 words, no pronouns", Required: true},
		{Name: "answers_who", Type: llm.FieldBoolean, Required: true},
		{Name: "answers_what_problems", Type: llm.FieldBoolean, Required: true},
		{Name: "answers_proof", Type: llm.FieldBoolean, Required: true},
		{Name: "answers_why_you", Type: llm.FieldBoolean, Required: true},
	},
}

type valueProposition struct {
	Tagline             string `json:"tagline"`
	AnswersWho          bool   `json:"answers_who"`
	AnswersWhatProblems bool   `json:"answers_what_problems"`
	AnswersProof        bool   `json:"answers_proof"`
	AnswersWhyYou       bool   `json:"answers_why_you"`
}

// Error represents a profile generation failure
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile generation: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("profile generation: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrEmptyPool is returned by Draft when the CV has no bullets to back a tagline
var ErrEmptyPool = &Error{Message: "bullet pool is empty"}

// Input is one profile generation request
type Input struct {
	Profile      *roles.Profile
	Job          *types.JobDescription
	CV           *types.StitchedCV
	Achievements *achievements.Selection
	Skills       *skills.Result
	// CoreStrengths come from annotations
	CoreStrengths []string
	// Focus is appended to the prompt by ensemble personas
	Focus string
	// Purpose selects the model, analytical by default
	Purpose llm.Purpose
}

// Result is the generated profile and the audit facts behind it
type Result struct {
	Output  types.ProfileOutput
	Sources []types.AchievementSource
	// AchievementsFallback is set when the pool was empty and the role's generic achievements were used
	AchievementsFallback bool
	// LLMError records why the value proposition fell back to the role template
	LLMError string
}

// Generator writes header profiles
type Generator struct {
	client llm.Client
	logger zerolog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewGenerator creates a generator. client may be nil, in which case every tagline is the role fallback.
func NewGenerator(client llm.Client, logger zerolog.Logger) *Generator {
	return &Generator{
		client: client,
		logger: logger.With().Str("component", "profile").Logger(),
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
}

// Generate produces a profile. An empty bullet pool and LLM problems fall back to the role template;
// only a missing role profile fails.
func (g *Generator) Generate(ctx context.Context, in Input) (*Result, error) {
	if in.Profile == nil {
		return nil, &Error{Message: "role profile is required"}
	}
	if emptyPool(in) {
		g.logger.Info().
			Str("role", string(in.Profile.Category)).
			Msg("empty bullet pool, using role fallback profile")
		return g.Fallback(in)
	}

	result, err := g.Draft(ctx, in)
	if err == nil {
		return result, nil
	}

	g.logger.Warn().
		Err(err).
		Str("role", string(in.Profile.Category)).
		Msg("value proposition failed, using role fallback tagline")
	result = g.base(in)
	g.applyFallback(result, in)
	result.LLMError = err.Error()
	return result, nil
}

// Draft produces a profile whose tagline must come from the LLM; any LLM failure is returned,
// as is ErrEmptyPool. A tagline that fails the pronoun or length checks is still replaced by the
// role fallback.
func (g *Generator) Draft(ctx context.Context, in Input) (*Result, error) {
	if in.Profile == nil {
		return nil, &Error{Message: "role profile is required"}
	}
	if emptyPool(in) {
		return nil, ErrEmptyPool
	}
	if g.client == nil {
		return nil, &Error{Message: "no llm client configured"}
	}

	result := g.base(in)
	vp, err := g.valueProposition(ctx, in, result.Output.YearsExperience)
	if err != nil {
		return nil, err
	}

	checks := CheckTagline(vp.Tagline)
	if !Acceptable(checks) {
		g.logger.Warn().
			Str("role", string(in.Profile.Category)).
			Bool("has_pronoun", checks.HasPronoun).
			Int("chars", checks.CharCount).
			Msg("generated tagline rejected, using role fallback tagline")
		g.applyFallback(result, in)
		return result, nil
	}

	out := &result.Output
	out.Tagline = strings.TrimSpace(vp.Tagline)
	out.ValueProposition = out.Tagline
	out.TaglineChecks = checks
	out.AnswersWho = vp.AnswersWho
	out.AnswersWhatProblems = vp.AnswersWhatProblems
	out.AnswersProof = vp.AnswersProof
	out.AnswersWhyYou = vp.AnswersWhyYou
	return result, nil
}

// Fallback produces the deterministic profile without calling the LLM
func (g *Generator) Fallback(in Input) (*Result, error) {
	if in.Profile == nil {
		return nil, &Error{Message: "role profile is required"}
	}
	result := g.base(in)
	g.applyFallback(result, in)
	return result, nil
}

// emptyPool reports whether neither the selection nor the CV has a bullet to draw on
func emptyPool(in Input) bool {
	if in.Achievements != nil && len(in.Achievements.Sources) > 0 {
		return false
	}
	return len(in.CV.Bullets()) == 0
}

// base fills everything that does not depend on the LLM
func (g *Generator) base(in Input) *Result {
	var title string
	if in.Job != nil {
		title = in.Job.Title
	}
	if strings.TrimSpace(title) == "" {
		title = in.Profile.DisplayName
	}

	years := YearsExperience(in.CV.Periods(), g.now().Year())
	result := &Result{
		Output: types.ProfileOutput{
			Headline:           Headline(title, years),
			YearsExperience:    years,
			CoreCompetencies:   []string{},
			CoreCompetenciesV2: map[string][]string{},
		},
	}

	if in.Achievements != nil && len(in.Achievements.Sources) > 0 {
		result.Sources = in.Achievements.Sources
		result.Output.KeyAchievements = in.Achievements.Texts()
	} else {
		result.Sources = []types.AchievementSource{}
		result.Output.KeyAchievements = append([]string(nil), in.Profile.FallbackAchievements...)
		result.AchievementsFallback = true
	}

	if in.Skills != nil {
		flat := in.Skills.Flat()
		if len(flat) > coreLineSkills {
			flat = flat[:coreLineSkills]
		}
		result.Output.CoreCompetencies = flat
		result.Output.CoreCompetenciesV2 = in.Skills.ByName()
	}
	return result
}

func (g *Generator) applyFallback(result *Result, in Input) {
	out := &result.Output
	out.Tagline = in.Profile.FallbackTagline
	out.ValueProposition = out.Tagline
	out.TaglineFallback = true
	out.TaglineChecks = CheckTagline(out.Tagline)
	out.AnswersWho = true
	out.AnswersWhatProblems = true
	out.AnswersProof = !result.AchievementsFallback && len(out.KeyAchievements) > 0
	out.AnswersWhyYou = len(in.CoreStrengths) > 0
}

func (g *Generator) valueProposition(ctx context.Context, in Input, years int) (*valueProposition, error) {
	ctx, span := g.tracer.Start(ctx, "profile.value_proposition", trace.WithAttributes(
		attribute.String("profile.role", string(in.Profile.Category)),
		attribute.Bool("profile.persona", in.Focus != ""),
	))
	defer span.End()

	var title, company string
	if in.Job != nil {
		title, company = in.Job.Title, in.Job.Company
	}

	prompt, err := prompts.Render("profile.json", "value-proposition", map[string]string{
		"RoleName":      in.Profile.DisplayName,
		"Title":         title,
		"Company":       company,
		"Formula":       in.Profile.TaglineFormula,
		"Examples":      dashList(in.Profile.TaglineExamples),
		"EmphasisAreas": strings.Join(in.Profile.EmphasisAreas, ", "),
		"Scope":         scopeSummary(years, in.CV),
		"CoreStrengths": noneIfEmpty(strings.Join(in.CoreStrengths, ", ")),
		"Achievements":  dashList(topAchievements(in)),
		"PersonaFocus":  in.Focus,
	})
	if err != nil {
		return nil, &Error{Message: "failed to render prompt", Cause: err}
	}

	purpose := in.Purpose
	if purpose == "" {
		purpose = llm.PurposeAnalytical
	}
	resp, err := g.client.Invoke(ctx, llm.Request{
		Prompt:  prompt,
		System:  prompts.MustGet("profile.json", "value-proposition-system"),
		Schema:  valuePropositionSchema,
		Purpose: purpose,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, &Error{Message: "value proposition call failed", Cause: err}
	}

	var vp valueProposition
	if err := llm.Decode(resp, &vp); err != nil {
		span.RecordError(err)
		return nil, &Error{Message: "malformed value proposition", Cause: err}
	}
	return &vp, nil
}

// topAchievements returns the strongest bullets: the scored ranking when available, else CV order
func topAchievements(in Input) []string {
	var texts []string
	if in.Achievements != nil && len(in.Achievements.Ranked) > 0 {
		for _, scored := range in.Achievements.Ranked {
			texts = append(texts, scored.Bullet.Text)
		}
	} else {
		texts = in.CV.BulletTexts()
	}
	if len(texts) > promptAchievements {
		texts = texts[:promptAchievements]
	}
	return texts
}

func scopeSummary(years int, cv *types.StitchedCV) string {
	scope := strconv.Itoa(years) + " years of experience"
	if size, ok := TeamSize(cv.BulletTexts()); ok {
		scope += fmt.Sprintf("; led a team of %d", size)
	}
	return scope
}

func dashList(items []string) string {
	if len(items) == 0 {
		return "- (none)"
	}
	return "- " + strings.Join(items, "\n- ")
}

func noneIfEmpty(s string) string {
	if s == "" {
		return "none recorded"
	}
	return s
}
