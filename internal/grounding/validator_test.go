package grounding

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/types"
)

func sampleCV() *types.StitchedCV {
	return &types.StitchedCV{Roles: []types.StitchedRole{
		{ID: "r1", Company: "Acme", Title: "VP Engineering", Period: "2020 - Present", Bullets: []string{
			"Scaled engineering organization from 40 to 120 engineers on AWS",
			"Reduced cloud spend by 35% with Kubernetes consolidation",
		}},
	}}
}

func sampleWhitelist() *types.SkillWhitelist {
	return &types.SkillWhitelist{
		HardSkills: []string{"AWS", "Kubernetes", "Terraform", "Go"},
		SoftSkills: []string{"Mentoring"},
	}
}

func sampleContent() Content {
	return Content{
		Profile: types.ProfileOutput{
			Tagline:          "Platform executive who scaled a 120 engineer organization and saved 35% on cloud spend",
			KeyAchievements:  []string{"Scaled engineering organization from 40 to 120 engineers on AWS"},
			CoreCompetencies: []string{"AWS", "Terraform"},
			CoreCompetenciesV2: map[string][]string{
				"Cloud": {"AWS", "Terraform"},
			},
			YearsExperience: 12,
		},
		Sections: []types.SkillsSection{
			{Category: "Cloud", Skills: []types.SkillEntry{
				{Name: "AWS", EvidenceBullets: []string{"Scaled engineering organization from 40 to 120 engineers on AWS"}},
				{Name: "Terraform"},
			}},
			{Category: "People", Skills: []types.SkillEntry{
				{Name: "Mentoring"},
			}},
			{Category: "Orchestration", Skills: []types.SkillEntry{
				{Name: "Kubernetes"},
			}},
		},
		Competencies: []types.CoreCompetencySection{
			{Name: "Cloud", Skills: []string{"AWS", "Terraform"}, JDMatches: 2},
			{Name: "People", Skills: []string{"Mentoring"}},
			{Name: "Orchestration", Skills: []string{"Kubernetes"}},
		},
	}
}

func newTestValidator() *Validator {
	return NewValidator(zerolog.Nop())
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("flag")
	require.NoError(t, err)
	assert.Equal(t, PolicyFlag, p)

	_, err = ParsePolicy("delete")
	assert.Error(t, err)
}

func TestRemove_DeletesUngroundedAndDropsEmptySections(t *testing.T) {
	ev := NewEvidence(sampleCV(), sampleWhitelist())
	content := sampleContent()

	cleaned, report := newTestValidator().Validate(content, ev, PolicyRemove)
	require.NotNil(t, report.Result)
	assert.Nil(t, report.Flags)

	result := report.Result
	assert.True(t, result.Passed)
	assert.Equal(t, []string{"Terraform", "Mentoring"}, result.RemovedSkills)
	assert.Equal(t, []string{"People"}, result.DroppedSections)
	assert.ElementsMatch(t, []string{"AWS", "Kubernetes"}, result.GroundedSkills)
	assert.Empty(t, result.UngroundedSkills)

	require.Len(t, cleaned.Sections, 2)
	assert.Equal(t, []string{"AWS"}, cleaned.Sections[0].Names())
	assert.Equal(t, "Orchestration", cleaned.Sections[1].Category)
	require.Len(t, cleaned.Competencies, 2)
	assert.Equal(t, []string{"AWS"}, cleaned.Competencies[0].Skills)
	assert.Equal(t, 1, cleaned.Competencies[0].JDMatches)
	assert.Equal(t, []string{"AWS"}, cleaned.Profile.CoreCompetencies)
	assert.Equal(t, []string{"AWS"}, cleaned.Profile.CoreCompetenciesV2["Cloud"])

	// input untouched
	assert.Len(t, content.Sections, 3)
	assert.Equal(t, []string{"AWS", "Terraform"}, content.Profile.CoreCompetencies)
}

func TestRemove_IsIdempotent(t *testing.T) {
	ev := NewEvidence(sampleCV(), sampleWhitelist())
	v := newTestValidator()

	once, _ := v.Validate(sampleContent(), ev, PolicyRemove)
	twice, report := v.Validate(once, ev, PolicyRemove)

	assert.True(t, report.Result.Passed)
	assert.Empty(t, report.Result.RemovedSkills)
	assert.Equal(t, once.Sections, twice.Sections)
}

func TestRemove_EmptyPoolRemovesUnevidencedSkills(t *testing.T) {
	ev := NewEvidence(&types.StitchedCV{}, sampleWhitelist())
	content := Content{Sections: []types.SkillsSection{
		{Category: "Cloud", Skills: []types.SkillEntry{{Name: "AWS"}}},
	}}

	cleaned, report := newTestValidator().Validate(content, ev, PolicyRemove)
	assert.Empty(t, cleaned.Sections)
	assert.Equal(t, []string{"Cloud"}, report.Result.DroppedSections)
	assert.True(t, report.Result.Passed)
}

func TestRemove_VerbDoesNotEvidenceShortSkill(t *testing.T) {
	cv := &types.StitchedCV{Roles: []types.StitchedRole{
		{ID: "r1", Company: "Acme", Title: "Engineering Manager", Period: "2021 - Present", Bullets: []string{
			"Helped the team go live with the billing platform on AWS",
		}},
	}}
	content := Content{Sections: []types.SkillsSection{
		{Category: "Languages", Skills: []types.SkillEntry{{Name: "Go"}}},
		{Category: "Cloud", Skills: []types.SkillEntry{{Name: "AWS"}}},
	}}

	cleaned, report := newTestValidator().Validate(content, NewEvidence(cv, sampleWhitelist()), PolicyRemove)
	assert.Equal(t, []string{"Go"}, report.Result.RemovedSkills)
	require.Len(t, cleaned.Sections, 1)
	assert.Equal(t, "Cloud", cleaned.Sections[0].Category)
}

func TestFlag_ReportsWithoutRemoving(t *testing.T) {
	ev := NewEvidence(sampleCV(), sampleWhitelist())
	content := sampleContent()
	content.Profile.KeyAchievements = append(content.Profile.KeyAchievements, "Cut incident volume by 70% across 9 services")
	content.Profile.Tagline = "Platform executive with 12 years who grew teams to 500 engineers and cut spend 35%"
	content.Sections = append(content.Sections, types.SkillsSection{
		Category: "Invented", Skills: []types.SkillEntry{{Name: "Quantum Annealing"}},
	})

	cleaned, report := newTestValidator().Validate(content, ev, PolicyFlag)
	require.NotNil(t, report.Flags)
	assert.Nil(t, report.Result)

	flags := report.Flags
	assert.Equal(t, []string{
		`70 in "Cut incident volume by 70% across 9 services"`,
		`9 in "Cut incident volume by 70% across 9 services"`,
	}, flags.UngroundedMetrics)
	// whitelisted skills pass flag mode even without a bullet mention
	assert.Equal(t, []string{"Quantum Annealing"}, flags.UngroundedSkills)
	require.Len(t, flags.UngroundedClaims, 1)
	assert.Contains(t, flags.UngroundedClaims[0], "500")
	assert.Equal(t, 4, flags.Count())

	// nothing removed
	assert.Len(t, cleaned.Sections, 4)
	assert.Len(t, cleaned.Profile.KeyAchievements, 2)
}

func TestFlag_CleanContent(t *testing.T) {
	ev := NewEvidence(sampleCV(), sampleWhitelist())
	_, report := newTestValidator().Validate(sampleContent(), ev, PolicyFlag)

	assert.False(t, report.Flags.HasIssues())
	assert.NotNil(t, report.Flags.UngroundedMetrics)
}

func TestPolicyNone(t *testing.T) {
	ev := NewEvidence(sampleCV(), sampleWhitelist())
	cleaned, report := newTestValidator().Validate(sampleContent(), ev, PolicyNone)

	assert.Equal(t, PolicyNone, report.Policy)
	assert.Nil(t, report.Result)
	assert.Nil(t, report.Flags)
	assert.Len(t, cleaned.Sections, 3)
}

func TestExtractNumbers(t *testing.T) {
	assert.Equal(t, []string{"1200", "35", "4.5"}, ExtractNumbers("Grew to $1,200 MRR, cut 35% and hit 4.5 stars."))
}
