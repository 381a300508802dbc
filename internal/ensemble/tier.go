// Package ensemble provides tier resolution and the ensemble orchestrator: persona passes over the
// achievement selector and profile generator, a synthesis call that merges them, and the
// single-pass path for lower tiers.
package ensemble

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-tailor/internal/grounding"
)

// Tier is the processing level of one generation
type Tier string

// Tiers, most thorough first
const (
	TierGold   Tier = "gold"
	TierSilver Tier = "silver"
	TierBronze Tier = "bronze"
	TierSkip   Tier = "skip"
)

// ParseTier parses a tier name, ignoring case. An empty value is no override.
func ParseTier(value string) (Tier, error) {
	switch t := Tier(strings.ToLower(strings.TrimSpace(value))); t {
	case "", TierGold, TierSilver, TierBronze, TierSkip:
		return t, nil
	default:
		return "", fmt.Errorf("unknown tier %q (want gold, silver, bronze or skip)", value)
	}
}

// Personas returns the persona passes a tier runs, in fixed order
func (t Tier) Personas() []Persona {
	switch t {
	case TierGold:
		return []Persona{PersonaMetric, PersonaNarrative, PersonaKeyword}
	case TierSilver:
		return []Persona{PersonaMetric, PersonaKeyword}
	default:
		return nil
	}
}

// Ensembled reports whether a tier runs persona passes and synthesis
func (t Tier) Ensembled() bool {
	return len(t.Personas()) > 0
}

// GroundingPolicy returns how the assembled header is validated under a tier
func (t Tier) GroundingPolicy() grounding.Policy {
	switch t {
	case TierGold:
		return grounding.PolicyFlag
	case TierSilver:
		return grounding.PolicyNone
	default:
		return grounding.PolicyRemove
	}
}

// Thresholds are the minimum fit scores of each tier. Scores below Bronze resolve to SKIP.
type Thresholds struct {
	Gold   float64 `json:"gold" validate:"gte=0,lte=100"`
	Silver float64 `json:"silver" validate:"gte=0,lte=100"`
	Bronze float64 `json:"bronze" validate:"gte=0,lte=100"`
}

// DefaultThresholds returns 85/70/50
func DefaultThresholds() Thresholds {
	return Thresholds{Gold: 85, Silver: 70, Bronze: 50}
}

// Validate checks ranges and that the thresholds descend
func (t Thresholds) Validate() error {
	if err := validator.New().Struct(t); err != nil {
		return err
	}
	if t.Gold < t.Silver || t.Silver < t.Bronze {
		return fmt.Errorf("tier thresholds must descend: gold %.1f, silver %.1f, bronze %.1f", t.Gold, t.Silver, t.Bronze)
	}
	return nil
}

// Resolve maps a fit score to a tier
func (t Thresholds) Resolve(score float64) Tier {
	switch {
	case score >= t.Gold:
		return TierGold
	case score >= t.Silver:
		return TierSilver
	case score >= t.Bronze:
		return TierBronze
	default:
		return TierSkip
	}
}

// ResolveTier returns override when set, else the tier of score under thresholds
func ResolveTier(score float64, override Tier, thresholds Thresholds) Tier {
	if override != "" {
		return override
	}
	return thresholds.Resolve(score)
}
