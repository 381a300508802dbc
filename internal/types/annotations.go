// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RelevanceTier grades how strongly an annotated JD item matches the candidate
type RelevanceTier string

// Relevance tiers, strongest first
const (
	RelevanceCoreStrength      RelevanceTier = "core_strength"
	RelevanceExtremelyRelevant RelevanceTier = "extremely_relevant"
	RelevanceRelevant          RelevanceTier = "relevant"
	RelevanceGap               RelevanceTier = "gap"
)

// RequirementTier grades how strongly the JD requires an annotated item
type RequirementTier string

// Requirement tiers, strongest first
const (
	RequirementMustHave   RequirementTier = "must_have"
	RequirementNiceToHave RequirementTier = "nice_to_have"
	RequirementNeutral    RequirementTier = "neutral"
)

// AnnotationPriority is one ranked "thing the recruiter cares about".
// Annotations only ever boost scores; they never justify emitting a skill.
type AnnotationPriority struct {
	Rank             int             `json:"rank"`
	JDText           string          `json:"jd_text"`
	MatchingSkill    string          `json:"matching_skill,omitempty"`
	Relevance        RelevanceTier   `json:"relevance"`
	Requirement      RequirementTier `json:"requirement"`
	ReframeGuidance  string          `json:"reframe_guidance,omitempty"`
	EvidenceSnippets []string        `json:"evidence_snippets,omitempty"`
}

// IsCoreStrength reports whether the annotation marks a core strength
func (a *AnnotationPriority) IsCoreStrength() bool {
	return a.Relevance == RelevanceCoreStrength
}

// IsMustHave reports whether the annotation marks a must-have requirement
func (a *AnnotationPriority) IsMustHave() bool {
	return a.Requirement == RequirementMustHave
}

// CoreStrengths returns the matching skills of every core-strength annotation, in rank order
func CoreStrengths(annotations []AnnotationPriority) []string {
	strengths := make([]string, 0)
	seen := make(map[string]bool)
	for _, a := range annotations {
		if !a.IsCoreStrength() || a.MatchingSkill == "" {
			continue
		}
		key := FoldSkill(a.MatchingSkill)
		if seen[key] {
			continue
		}
		seen[key] = true
		strengths = append(strengths, a.MatchingSkill)
	}
	return strengths
}
