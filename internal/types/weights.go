// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ScoringWeights are the named weights read by the achievement scorer
type ScoringWeights struct {
	PainPointMatch      float64 `json:"pain_point_match" validate:"gte=0"`
	AnnotationSuggested float64 `json:"annotation_suggested" validate:"gte=0"`
	// KeywordMatch is added once per matched JD keyword
	KeywordMatch     float64 `json:"keyword_match" validate:"gte=0"`
	CoreStrength     float64 `json:"core_strength" validate:"gte=0"`
	EmphasisArea     float64 `json:"emphasis_area" validate:"gte=0"`
	CompetencyWeight float64 `json:"competency_weight" validate:"gte=0"`
	// Recency holds the bonus by role position: index 0 is the current role,
	// the last entry applies to every older role. Must be non-increasing.
	Recency             []float64 `json:"recency" validate:"min=1,dive,gte=0"`
	VariantTypeMatch    float64   `json:"variant_type_match" validate:"gte=0"`
	InterviewDefensible float64   `json:"interview_defensible" validate:"gte=0"`
}

// DefaultScoringWeights returns the documented defaults
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		PainPointMatch:      3.0,
		AnnotationSuggested: 2.5,
		KeywordMatch:        1.0,
		CoreStrength:        2.0,
		EmphasisArea:        1.5,
		CompetencyWeight:    1.0,
		Recency:             []float64{2.0, 1.0, 0.5},
		VariantTypeMatch:    1.0,
		InterviewDefensible: 1.0,
	}
}

// RecencyBonus returns the bonus for a role position
func (w *ScoringWeights) RecencyBonus(roleIndex int) float64 {
	if len(w.Recency) == 0 || roleIndex < 0 {
		return 0
	}
	if roleIndex >= len(w.Recency) {
		return w.Recency[len(w.Recency)-1]
	}
	return w.Recency[roleIndex]
}

// Validate checks ranges and that the recency schedule decays monotonically
func (w *ScoringWeights) Validate() error {
	validate := validator.New()
	if err := validate.Struct(w); err != nil {
		return err
	}
	for i := 1; i < len(w.Recency); i++ {
		if w.Recency[i] > w.Recency[i-1] {
			return fmt.Errorf("recency schedule must be non-increasing: position %d (%.2f) > position %d (%.2f)",
				i, w.Recency[i], i-1, w.Recency[i-1])
		}
	}
	return nil
}
