// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ScoreBreakdown records each weighted signal that contributed to a bullet's score
type ScoreBreakdown struct {
	PainPoint           float64  `json:"pain_point"`
	AnnotationSuggested float64  `json:"annotation_suggested"`
	Keywords            float64  `json:"keywords"`
	CoreStrength        float64  `json:"core_strength"`
	EmphasisArea        float64  `json:"emphasis_area"`
	Competency          float64  `json:"competency"`
	Recency             float64  `json:"recency"`
	VariantType         float64  `json:"variant_type"`
	InterviewDefensible float64  `json:"interview_defensible"`
	Total               float64  `json:"total"`
	MatchedKeywords     []string `json:"matched_keywords,omitempty"`
	MatchedPainPoints   []string `json:"matched_pain_points,omitempty"`
}

// Sum adds the signal components into Total and returns it
func (b *ScoreBreakdown) Sum() float64 {
	b.Total = b.PainPoint + b.AnnotationSuggested + b.Keywords + b.CoreStrength +
		b.EmphasisArea + b.Competency + b.Recency + b.VariantType + b.InterviewDefensible
	return b.Total
}

// AchievementSource is one emitted key achievement with full traceability.
// BulletText equals SourceBullet or is a light rewording of it.
type AchievementSource struct {
	BulletText      string `json:"bullet_text"`
	SourceBullet    string `json:"source_bullet"`
	SourceRoleID    string `json:"source_role_id"`
	SourceRoleTitle string `json:"source_role_title"`
	SourceCompany   string `json:"source_company,omitempty"`
	// MatchConfidence is 1.0 for verbatim text and below 1.0 for tailored text
	MatchConfidence float64        `json:"match_confidence"`
	Tailored        bool           `json:"tailored"`
	Score           ScoreBreakdown `json:"score"`
}

// SelectionMethod names how key achievements were picked
type SelectionMethod string

// Selection methods
const (
	SelectionAlgorithmic SelectionMethod = "algorithmic"
	SelectionLLM         SelectionMethod = "llm"
	// SelectionFallback means the pool was empty and generic role achievements were used
	SelectionFallback SelectionMethod = "fallback"
)

// SelectionResult summarizes an achievement selection
type SelectionResult struct {
	SelectedCount int             `json:"selected_count"`
	TargetCount   int             `json:"target_count"`
	Qualifying    int             `json:"qualifying"`
	NeedsReview   bool            `json:"needs_review"`
	Method        SelectionMethod `json:"method"`
	// LLMError records why an LLM selection was discarded in favor of the algorithmic one
	LLMError string `json:"llm_error,omitempty"`
}
