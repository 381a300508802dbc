// Package achievements provides the key-achievement selector: bullet scoring against job
// signals, algorithmic and LLM-assisted top-K selection, and source matching for provenance.
package achievements

import (
	"sort"
	"strings"

	"github.com/jonathan/cv-tailor/internal/textutil"
	"github.com/jonathan/cv-tailor/internal/types"
)

const (
	// painPointMinSharedWords is how many significant words a bullet must share with a pain point
	painPointMinSharedWords = 2
	// snippetMinSharedWords is how many significant words an annotation snippet must share with a bullet
	snippetMinSharedWords = 3
)

// competencyLexicon maps a competency dimension to the terms that evidence it
var competencyLexicon = map[string][]string{
	"delivery":     {"shipped", "delivered", "launched", "release", "roadmap", "deadline", "on time", "velocity"},
	"process":      {"process", "agile", "scrum", "on-call", "incident", "postmortem", "sla", "review", "ci/cd"},
	"architecture": {"architecture", "architected", "platform", "distributed", "microservices", "migration", "scalability", "design"},
	"leadership":   {"led", "team", "hired", "mentored", "coached", "managed", "organization", "engineers"},
	"strategy":     {"strategy", "vision", "roadmap", "budget", "board", "executive", "transformation"},
	"reliability":  {"uptime", "availability", "reliability", "latency", "outage", "slo", "incident"},
}

// JobContext is the job-side input of the scorer
type JobContext struct {
	PainPoints        []string
	Keywords          []string
	CompetencyWeights map[string]float64
	EmphasisAreas     []string
	Annotations       []types.AnnotationPriority
	// PreferredVariant earns the variant-type bonus; empty disables it
	PreferredVariant Variant
}

// NewJobContext builds the scorer input from a job description and role emphasis.
// Role emphasis areas are appended after the JD's own.
func NewJobContext(job *types.JobDescription, roleEmphasis []string, annotations []types.AnnotationPriority, preferred Variant) JobContext {
	jc := JobContext{
		Annotations:      annotations,
		PreferredVariant: preferred,
	}
	if job != nil {
		jc.PainPoints = job.PainPoints
		jc.Keywords = job.Keywords
		jc.CompetencyWeights = job.CompetencyWeights
		jc.EmphasisAreas = append(jc.EmphasisAreas, job.EmphasisAreas...)
	}
	jc.EmphasisAreas = append(jc.EmphasisAreas, roleEmphasis...)
	return jc
}

// ScoredBullet is a pool bullet with its score
type ScoredBullet struct {
	Bullet    types.PoolBullet
	Variant   Variant
	Breakdown types.ScoreBreakdown
	// Position is the bullet's index in the pool
	Position int
}

// Relevance is the part of the score that comes from job signals, excluding recency and bullet shape
func (s *ScoredBullet) Relevance() float64 {
	b := s.Breakdown
	return b.PainPoint + b.AnnotationSuggested + b.Keywords + b.CoreStrength + b.EmphasisArea + b.Competency
}

// Qualifies reports whether at least one job signal matched
func (s *ScoredBullet) Qualifies() bool {
	return s.Relevance() > 0
}

// Scorer sums weighted signal hits per bullet
type Scorer struct {
	weights types.ScoringWeights
}

// NewScorer creates a scorer with the given weights
func NewScorer(weights types.ScoringWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Weights returns the scorer's weights
func (s *Scorer) Weights() types.ScoringWeights {
	return s.weights
}

// Score scores one bullet
func (s *Scorer) Score(bullet types.PoolBullet, job JobContext) types.ScoreBreakdown {
	text := bullet.Text
	w := s.weights
	var b types.ScoreBreakdown

	for _, pain := range job.PainPoints {
		if textutil.SharedWords(text, pain) >= painPointMinSharedWords {
			b.PainPoint += w.PainPointMatch
			b.MatchedPainPoints = append(b.MatchedPainPoints, pain)
		}
	}

	if annotationSuggests(text, job.Annotations) {
		b.AnnotationSuggested = w.AnnotationSuggested
	}

	seen := make(map[string]bool)
	for _, kw := range job.Keywords {
		key := types.FoldSkill(kw)
		if key == "" || seen[key] || !textutil.ContainsTerm(text, kw) {
			continue
		}
		seen[key] = true
		b.Keywords += w.KeywordMatch
		b.MatchedKeywords = append(b.MatchedKeywords, kw)
	}

	if textutil.ContainsAny(text, types.CoreStrengths(job.Annotations)) {
		b.CoreStrength = w.CoreStrength
	}

	for _, area := range job.EmphasisAreas {
		if textutil.ContainsTerm(text, area) || textutil.SharedWords(text, area) >= 1 {
			b.EmphasisArea = w.EmphasisArea
			break
		}
	}

	for _, dimension := range sortedDimensions(job.CompetencyWeights) {
		weight := job.CompetencyWeights[dimension]
		terms, ok := competencyLexicon[strings.ToLower(dimension)]
		if ok && weight > 0 && textutil.ContainsAny(text, terms) {
			b.Competency += w.CompetencyWeight * weight
		}
	}

	b.Recency = w.RecencyBonus(bullet.RoleIndex)

	if job.PreferredVariant != "" && Classify(text) == job.PreferredVariant {
		b.VariantType = w.VariantTypeMatch
	}
	if InterviewDefensible(text) {
		b.InterviewDefensible = w.InterviewDefensible
	}

	b.Sum()
	return b
}

func sortedDimensions(weights map[string]float64) []string {
	dims := make([]string, 0, len(weights))
	for d := range weights {
		dims = append(dims, d)
	}
	sort.Strings(dims)
	return dims
}

// annotationSuggests reports whether an annotation's evidence snippet points at the bullet
func annotationSuggests(text string, annotations []types.AnnotationPriority) bool {
	for _, a := range annotations {
		if a.Relevance == types.RelevanceGap {
			continue
		}
		for _, snippet := range a.EvidenceSnippets {
			if textutil.ContainsTerm(text, snippet) || textutil.ContainsTerm(snippet, text) ||
				textutil.SharedWords(text, snippet) >= snippetMinSharedWords {
				return true
			}
		}
	}
	return false
}

// ScoreAll scores every bullet of the pool, preserving pool order
func (s *Scorer) ScoreAll(pool []types.PoolBullet, job JobContext) []ScoredBullet {
	scored := make([]ScoredBullet, len(pool))
	for i, bullet := range pool {
		scored[i] = ScoredBullet{
			Bullet:    bullet,
			Variant:   Classify(bullet.Text),
			Breakdown: s.Score(bullet, job),
			Position:  i,
		}
	}
	return scored
}

// FlattenPool returns the bullet pool of a CV, each bullet tagged with its source role
func FlattenPool(cv *types.StitchedCV) []types.PoolBullet {
	return cv.Bullets()
}
