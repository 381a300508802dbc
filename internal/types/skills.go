// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CoreCompetencySection is one role-specific competency bucket of selected skills
type CoreCompetencySection struct {
	Name      string   `json:"name"`
	Skills    []string `json:"skills"`
	JDMatches int      `json:"jd_matches"`
	Score     float64  `json:"score"`
}

// SkillEntry is an emitted skill with the bullets that evidence it
type SkillEntry struct {
	Name            string   `json:"name"`
	EvidenceBullets []string `json:"evidence_bullets,omitempty"`
	JDMatch         bool     `json:"jd_match"`
}

// SkillsSection is one category of the skills breakdown
type SkillsSection struct {
	Category string       `json:"category"`
	Skills   []SkillEntry `json:"skills"`
}

// Names returns the skill names of the section in order
func (s *SkillsSection) Names() []string {
	names := make([]string, len(s.Skills))
	for i, skill := range s.Skills {
		names[i] = skill.Name
	}
	return names
}

// SkillsProvenance is the proof object for the skills section.
// RejectedJDSkills lists JD skills refused for lack of whitelist backing.
type SkillsProvenance struct {
	AllFromWhitelist    bool     `json:"all_from_whitelist"`
	JDMatchedSkills     []string `json:"jd_matched_skills"`
	WhitelistOnlySkills []string `json:"whitelist_only_skills"`
	RejectedJDSkills    []string `json:"rejected_jd_skills"`
}
