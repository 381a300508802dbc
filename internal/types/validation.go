// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ValidationResult is the binary outcome of remove-mode grounding
type ValidationResult struct {
	Passed           bool     `json:"passed"`
	GroundedSkills   []string `json:"grounded_skills"`
	UngroundedSkills []string `json:"ungrounded_skills"`
	// RemovedSkills were ungrounded and deleted before output
	RemovedSkills   []string `json:"removed_skills,omitempty"`
	DroppedSections []string `json:"dropped_sections,omitempty"`
}

// ValidationFlags is the non-blocking report of flag-mode grounding.
// Flagged content is left in place for human review.
type ValidationFlags struct {
	UngroundedMetrics []string `json:"ungrounded_metrics"`
	UngroundedSkills  []string `json:"ungrounded_skills"`
	UngroundedClaims  []string `json:"ungrounded_claims"`
}

// Count returns the total number of flags raised
func (f *ValidationFlags) Count() int {
	if f == nil {
		return 0
	}
	return len(f.UngroundedMetrics) + len(f.UngroundedSkills) + len(f.UngroundedClaims)
}

// HasIssues reports whether any flag was raised
func (f *ValidationFlags) HasIssues() bool {
	return f.Count() > 0
}
