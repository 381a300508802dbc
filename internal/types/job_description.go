// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobDescription is the structured job posting extracted upstream
type JobDescription struct {
	JobID            string   `json:"job_id,omitempty"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	RoleCategory     string   `json:"role_category"`
	Keywords         []string `json:"keywords"`
	Responsibilities []string `json:"responsibilities"`
	Qualifications   []string `json:"qualifications,omitempty"`
	PainPoints       []string `json:"pain_points,omitempty"`
	// CompetencyWeights maps a competency dimension (delivery, process, architecture, leadership) to a weight in [0,1]
	CompetencyWeights map[string]float64 `json:"competency_weights,omitempty"`
	EmphasisAreas     []string           `json:"emphasis_areas,omitempty"`
	FitScore          *int               `json:"fit_score,omitempty"`
}

