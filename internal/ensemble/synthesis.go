// Package ensemble provides tier resolution and the ensemble orchestrator: persona passes over the
// achievement selector and profile generator, a synthesis call that merges them, and the
// single-pass path for lower tiers.
package ensemble

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/cv-tailor/internal/achievements"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/profile"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/types"
)

var synthesisSchema = &llm.OutputSchema{
	Name:        "synthesized_profile",
	Description: "one header merged from the persona candidates",
	Fields: []llm.SchemaField{
		{Name: "tagline", Type: llm.FieldString, Description: "15-25 words, no pronouns", Required: true},
		{
			Name:        "key_achievements",
			Type:        llm.FieldStringList,
			Description: "achievements copied from the candidates, strongest first",
			Required:    true,
			MinItems:    1,
		},
	},
}

type synthesisResponse struct {
	Tagline         string   `json:"tagline"`
	KeyAchievements []string `json:"key_achievements"`
}

// synthesize merges the persona outputs. The best run supplies everything synthesis does not rewrite.
func (o *Orchestrator) synthesize(ctx context.Context, in Input, runs []personaRun, best personaRun) (*profile.Result, error) {
	ctx, span := o.tracer.Start(ctx, "ensemble.synthesis")
	defer span.End()

	var title, company string
	if in.Job != nil {
		title, company = in.Job.Title, in.Job.Company
	}
	prompt, err := prompts.Render("ensemble.json", "synthesize-profile", map[string]string{
		"Title":      title,
		"Company":    company,
		"Candidates": candidateBlock(runs),
		"Target":     strconv.Itoa(o.opts.target()),
	})
	if err != nil {
		return nil, &Error{Message: "failed to render synthesis prompt", Cause: err}
	}

	resp, err := o.client.Invoke(ctx, llm.Request{
		Prompt:  prompt,
		System:  prompts.MustGet("ensemble.json", "synthesis-system"),
		Schema:  synthesisSchema,
		Purpose: llm.PurposeSynthesis,
	})
	if err != nil {
		span.RecordError(err)
		return nil, &Error{Message: "synthesis call failed", Cause: err}
	}
	var parsed synthesisResponse
	if err := llm.Decode(resp, &parsed); err != nil {
		return nil, &Error{Message: "malformed synthesis", Cause: err}
	}

	merged := copyResult(best.result)
	checks := profile.CheckTagline(parsed.Tagline)
	if profile.Acceptable(checks) {
		merged.Output.Tagline = strings.TrimSpace(parsed.Tagline)
		merged.Output.ValueProposition = merged.Output.Tagline
		merged.Output.TaglineChecks = checks
		merged.Output.TaglineFallback = false
	} else {
		o.logger.Warn().
			Bool("has_pronoun", checks.HasPronoun).
			Int("chars", checks.CharCount).
			Str("persona", string(best.persona)).
			Msg("synthesized tagline rejected, keeping best persona tagline")
	}

	pool := achievements.FlattenPool(in.CV)
	sources, replaced := reconcile(parsed.KeyAchievements, runs, pool, o.opts.target())
	if replaced > 0 {
		o.logger.Warn().
			Int("replaced", replaced).
			Msg("synthesized achievements could not be traced, replaced by consensus picks")
	}
	if len(sources) > 0 {
		merged.Sources = sources
		merged.Output.KeyAchievements = sourceTexts(sources)
	}
	return merged, nil
}

// consensusPick is one source bullet with the number of personas that chose it
type consensusPick struct {
	source types.AchievementSource
	votes  int
	order  int
}

// consensus orders every persona pick by votes then score. Ties keep first-seen order.
func consensus(runs []personaRun) []types.AchievementSource {
	picks := make(map[string]*consensusPick)
	ordered := make([]*consensusPick, 0)
	for _, run := range runs {
		for _, src := range run.result.Sources {
			pick, ok := picks[src.SourceBullet]
			if !ok {
				pick = &consensusPick{source: src, order: len(ordered)}
				picks[src.SourceBullet] = pick
				ordered = append(ordered, pick)
			}
			pick.votes++
			if src.Score.Total > pick.source.Score.Total {
				pick.source = src
			}
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].votes != ordered[j].votes {
			return ordered[i].votes > ordered[j].votes
		}
		if ordered[i].source.Score.Total != ordered[j].source.Score.Total {
			return ordered[i].source.Score.Total > ordered[j].source.Score.Total
		}
		return ordered[i].order < ordered[j].order
	})
	sources := make([]types.AchievementSource, len(ordered))
	for i, pick := range ordered {
		sources[i] = pick.source
	}
	return sources
}

// reconcile traces each synthesized achievement to a source bullet. Untraceable or duplicate
// texts are dropped and the list is topped up from the consensus order. It returns the
// sources and how many synthesized texts were discarded.
func reconcile(texts []string, runs []personaRun, pool []types.PoolBullet, target int) ([]types.AchievementSource, int) {
	picks := consensus(runs)
	used := make(map[string]bool)
	sources := make([]types.AchievementSource, 0, target)
	replaced := 0

	for _, text := range texts {
		if len(sources) >= target {
			break
		}
		src, ok := traceAchievement(strings.TrimSpace(text), picks, pool)
		if !ok || used[src.SourceBullet] {
			replaced++
			continue
		}
		used[src.SourceBullet] = true
		sources = append(sources, src)
	}
	for _, src := range picks {
		if len(sources) >= target {
			break
		}
		if used[src.SourceBullet] {
			continue
		}
		used[src.SourceBullet] = true
		sources = append(sources, src)
	}
	return sources, replaced
}

// traceAchievement finds where text came from: a persona's source bullet, a persona's own
// wording of it, or, failing both, any bullet of the pool.
func traceAchievement(text string, picks []types.AchievementSource, pool []types.PoolBullet) (types.AchievementSource, bool) {
	if text == "" {
		return types.AchievementSource{}, false
	}

	var best types.AchievementSource
	bestConfidence := 0.0
	for _, src := range picks {
		if c := achievements.MatchConfidence(text, src.SourceBullet); c > bestConfidence {
			best, bestConfidence = src, c
		}
	}
	if bestConfidence > 0 {
		best.BulletText = text
		best.MatchConfidence = bestConfidence
		best.Tailored = text != best.SourceBullet
		return best, true
	}

	for _, src := range picks {
		if achievements.MatchConfidence(text, src.BulletText) > 0 {
			return src, true
		}
	}

	match, ok := achievements.MatchSource(text, pool)
	if !ok {
		return types.AchievementSource{}, false
	}
	return types.AchievementSource{
		BulletText:      text,
		SourceBullet:    match.Source.Text,
		SourceRoleID:    match.Source.RoleID,
		SourceRoleTitle: match.Source.RoleTitle,
		SourceCompany:   match.Source.Company,
		MatchConfidence: match.Confidence,
		Tailored:        !match.Verbatim(),
	}, true
}

func candidateBlock(runs []personaRun) string {
	var sb strings.Builder
	for i, run := range runs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "### Candidate %d (%s focus)\n", i+1, run.persona)
		fmt.Fprintf(&sb, "Tagline: %s\n", run.result.Output.Tagline)
		sb.WriteString("Key achievements:")
		for _, achievement := range run.result.Output.KeyAchievements {
			sb.WriteString("\n- " + achievement)
		}
	}
	return sb.String()
}

func sourceTexts(sources []types.AchievementSource) []string {
	texts := make([]string, len(sources))
	for i, src := range sources {
		texts[i] = src.BulletText
	}
	return texts
}

func copyResult(r *profile.Result) *profile.Result {
	copied := *r
	copied.Sources = append([]types.AchievementSource{}, r.Sources...)
	copied.Output.KeyAchievements = append([]string{}, r.Output.KeyAchievements...)
	return &copied
}
