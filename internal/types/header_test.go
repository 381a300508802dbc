// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderOutput_JSON(t *testing.T) {
	h := &HeaderOutput{
		RoleCategory: "cto",
		Candidate:    CandidateMetadata{Name: "Jordan Lee"},
		Profile: ProfileOutput{
			Headline:        "CTO | 12+ Years Technology Leadership",
			KeyAchievements: []string{"Built the platform team"},
		},
		SkillsSections: []SkillsSection{
			{Category: "Technical", Skills: []SkillEntry{{Name: "Go", JDMatch: true}}},
		},
		Ensemble: EnsembleMetadata{
			Tier:           "gold",
			PassesExecuted: 3,
			PersonasUsed:   []string{"metric", "narrative", "keyword"},
		},
	}

	data, err := h.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"passes_executed": 3`)
	assert.Contains(t, string(data), `"headline": "CTO | 12+ Years Technology Leadership"`)
	assert.NotContains(t, string(data), `"validation":`)

	var decoded HeaderOutput
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, h.Ensemble.PersonasUsed, decoded.Ensemble.PersonasUsed)
	assert.Equal(t, "Jordan Lee", decoded.Candidate.Name)
}

func TestHeaderOutput_AllSkills(t *testing.T) {
	h := &HeaderOutput{
		SkillsSections: []SkillsSection{
			{Category: "Technical", Skills: []SkillEntry{{Name: "Go"}, {Name: "AWS"}}},
		},
		CoreCompetencySections: []CoreCompetencySection{{Name: "Architecture", Skills: []string{"Kafka"}}},
		Profile:                ProfileOutput{CoreCompetencies: []string{"Hiring"}},
	}

	assert.Equal(t, []string{"Go", "AWS", "Kafka", "Hiring"}, h.AllSkills())
}

func TestValidationFlags_Count(t *testing.T) {
	var nilFlags *ValidationFlags
	assert.Equal(t, 0, nilFlags.Count())
	assert.False(t, nilFlags.HasIssues())

	flags := &ValidationFlags{UngroundedMetrics: []string{"90%"}, UngroundedClaims: []string{"1000 customers"}}
	assert.Equal(t, 2, flags.Count())
	assert.True(t, flags.HasIssues())
}

func TestScoreBreakdown_Sum(t *testing.T) {
	b := ScoreBreakdown{PainPoint: 3, Keywords: 2, Recency: 2}
	assert.Equal(t, 7.0, b.Sum())
	assert.Equal(t, 7.0, b.Total)
}
