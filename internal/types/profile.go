// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ProfileOutput is the generated header content
type ProfileOutput struct {
	Headline           string              `json:"headline"`
	Tagline            string              `json:"tagline"`
	ValueProposition   string              `json:"value_proposition"`
	KeyAchievements    []string            `json:"key_achievements"`
	CoreCompetencies   []string            `json:"core_competencies"`
	CoreCompetenciesV2 map[string][]string `json:"core_competencies_v2"`

	AnswersWho          bool `json:"answers_who"`
	AnswersWhatProblems bool `json:"answers_what_problems"`
	AnswersProof        bool `json:"answers_proof"`
	AnswersWhyYou       bool `json:"answers_why_you"`

	TaglineChecks   TaglineChecks `json:"tagline_checks"`
	TaglineFallback bool          `json:"tagline_fallback"`
	YearsExperience int           `json:"years_experience"`
}

// TaglineChecks are the mechanical checks run over the final tagline
type TaglineChecks struct {
	WordCount        int  `json:"word_count"`
	CharCount        int  `json:"char_count"`
	WithinWordTarget bool `json:"within_word_target"`
	WithinCharLimit  bool `json:"within_char_limit"`
	HasPronoun       bool `json:"has_pronoun"`
}
