// Package ensemble provides tier resolution and the ensemble orchestrator: persona passes over the
// achievement selector and profile generator, a synthesis call that merges them, and the
// single-pass path for lower tiers.
package ensemble

import (
	"github.com/jonathan/cv-tailor/internal/achievements"
	"github.com/jonathan/cv-tailor/internal/prompts"
	"github.com/jonathan/cv-tailor/internal/types"
)

// Persona is one independent generation pass with its own emphasis
type Persona string

// Personas
const (
	PersonaMetric    Persona = "metric"
	PersonaNarrative Persona = "narrative"
	PersonaKeyword   Persona = "keyword"
)

// Focus returns the prompt text that steers the persona
func (p Persona) Focus() string {
	return prompts.MustGet("ensemble.json", "persona-"+string(p))
}

// Weights returns base reshaped for the persona. base is not modified.
func (p Persona) Weights(base types.ScoringWeights) types.ScoringWeights {
	w := base
	w.Recency = append([]float64(nil), base.Recency...)
	switch p {
	case PersonaMetric:
		w.InterviewDefensible *= 2
		w.VariantTypeMatch *= 2
	case PersonaNarrative:
		w.PainPointMatch *= 1.5
		w.EmphasisArea *= 1.5
	case PersonaKeyword:
		w.KeywordMatch *= 2
		w.CompetencyWeight *= 2
	}
	return w
}

// Variant returns the bullet variant the persona rewards; fallback applies when it has no preference
func (p Persona) Variant(fallback achievements.Variant) achievements.Variant {
	if p == PersonaMetric {
		return achievements.VariantMetric
	}
	return fallback
}

func personaNames(personas []Persona) []string {
	names := make([]string, len(personas))
	for i, p := range personas {
		names[i] = string(p)
	}
	return names
}
