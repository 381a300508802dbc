// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// EnsembleMetadata records how a header was produced. It is attached to every HeaderOutput.
type EnsembleMetadata struct {
	Tier             string   `json:"tier"`
	PassesExecuted   int      `json:"passes_executed"`
	PersonasUsed     []string `json:"personas_used"`
	FailedPersonas   []string `json:"failed_personas,omitempty"`
	SynthesisModel   string   `json:"synthesis_model,omitempty"`
	SynthesisApplied bool     `json:"synthesis_applied"`
	// Degraded is set when every persona pass failed and the single-pass path ran instead
	Degraded         bool             `json:"degraded"`
	GenerationTimeMS int64            `json:"generation_time_ms"`
	ValidationPolicy string           `json:"validation_policy"`
	ValidationFlags  *ValidationFlags `json:"validation_flags,omitempty"`
}

// HeaderProvenance is the audit block of a header
type HeaderProvenance struct {
	Achievements         []AchievementSource `json:"achievements"`
	Skills               SkillsProvenance    `json:"skills"`
	TaglineFallback      bool                `json:"tagline_fallback"`
	AchievementsFallback bool                `json:"achievements_fallback"`
	NeedsReview          bool                `json:"needs_review"`
	Selection            SelectionResult     `json:"selection"`
}

// HeaderOutput is the assembled header: profile, skills, education and audit metadata
type HeaderOutput struct {
	JobID                  string                  `json:"job_id,omitempty"`
	RoleCategory           string                  `json:"role_category"`
	Executive              bool                    `json:"executive"`
	Candidate              CandidateMetadata       `json:"candidate"`
	Profile                ProfileOutput           `json:"profile"`
	SkillsSections         []SkillsSection         `json:"skills_sections"`
	CoreCompetencySections []CoreCompetencySection `json:"core_competency_sections"`
	Education              []Education             `json:"education"`
	Certifications         []string                `json:"certifications"`
	Languages              []string                `json:"languages"`
	Validation             *ValidationResult       `json:"validation,omitempty"`
	Ensemble               EnsembleMetadata        `json:"ensemble"`
	Provenance             HeaderProvenance        `json:"provenance"`
}

// JSON returns the indented structured form of the header
func (h *HeaderOutput) JSON() ([]byte, error) {
	return json.MarshalIndent(h, "", "  ")
}

// AllSkills returns every skill emitted in skills sections and competency sections, in order
func (h *HeaderOutput) AllSkills() []string {
	all := make([]string, 0)
	for _, section := range h.SkillsSections {
		all = append(all, section.Names()...)
	}
	for _, section := range h.CoreCompetencySections {
		all = append(all, section.Skills...)
	}
	all = append(all, h.Profile.CoreCompetencies...)
	return all
}
