package header

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/achievements"
	"github.com/jonathan/cv-tailor/internal/ensemble"
	"github.com/jonathan/cv-tailor/internal/grounding"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/profile"
	"github.com/jonathan/cv-tailor/internal/roles"
	"github.com/jonathan/cv-tailor/internal/schemas"
	"github.com/jonathan/cv-tailor/internal/types"
)

func TestAssemble_EveryRoleEmitsOnlyWhitelistedSkills(t *testing.T) {
	whitelist := testWhitelist()
	for _, category := range roles.All() {
		t.Run(string(category), func(t *testing.T) {
			h, err := newTestAssembler(nil).Assemble(context.Background(), testRequest(string(category)))
			require.NoError(t, err)

			for _, skill := range h.AllSkills() {
				assert.True(t, whitelist.Contains(skill), "skill %q is not whitelisted", skill)
			}
			assert.True(t, h.Provenance.Skills.AllFromWhitelist)
			assert.Contains(t, h.Provenance.Skills.RejectedJDSkills, "Snowflake")
			assert.Equal(t, category.IsExecutive(), h.Executive)
			assert.Equal(t, string(category), h.RoleCategory)
		})
	}
}

func TestAssemble_WhitelistRejectsJDOnlySkill(t *testing.T) {
	req := testRequest(string(roles.SeniorEngineer))
	req.Whitelist = &types.SkillWhitelist{HardSkills: []string{"Python", "AWS"}}
	req.Job.Keywords = []string{"Python", "Kubernetes"}

	h, err := newTestAssembler(nil).Assemble(context.Background(), req)
	require.NoError(t, err)

	all := h.AllSkills()
	assert.Contains(t, all, "Python")
	assert.NotContains(t, all, "Kubernetes")
	assert.Contains(t, h.Provenance.Skills.RejectedJDSkills, "Kubernetes")
	assert.True(t, h.Provenance.Skills.AllFromWhitelist)
}

func TestAssemble_EmptyPoolUsesRoleFallbacks(t *testing.T) {
	req := testRequest(string(roles.CTO))
	req.CV = nil

	h, err := newTestAssembler(nil).Assemble(context.Background(), req)
	require.NoError(t, err)

	cto := roles.MustLookup(roles.CTO)
	assert.Equal(t, cto.FallbackTagline, h.Profile.Tagline)
	assert.NotEmpty(t, h.Profile.Tagline)
	assert.Equal(t, cto.FallbackAchievements, h.Profile.KeyAchievements)
	assert.GreaterOrEqual(t, len(h.Profile.KeyAchievements), 3)
	assert.True(t, h.Provenance.TaglineFallback)
	assert.True(t, h.Provenance.AchievementsFallback)
	assert.Empty(t, h.Provenance.Achievements)
	assert.NotNil(t, h.Provenance.Achievements)
}

func TestAssemble_EmptyPoolIgnoresLLMTagline(t *testing.T) {
	cto := roles.MustLookup(roles.CTO)
	for _, fit := range []float64{40, 92} {
		client := scriptedClient()
		req := testRequest(string(roles.CTO))
		req.CV = nil
		req.FitScore = score(fit)

		h, err := newTestAssembler(client).Assemble(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, cto.FallbackTagline, h.Profile.Tagline, "fit %.0f", fit)
		assert.True(t, h.Provenance.TaglineFallback, "fit %.0f", fit)
		assert.Equal(t, cto.FallbackAchievements, h.Profile.KeyAchievements, "fit %.0f", fit)
		assert.False(t, h.Ensemble.SynthesisApplied, "fit %.0f", fit)
		assert.Empty(t, client.Calls(), "fit %.0f", fit)
	}
}

func TestAssemble_FitScoreSources(t *testing.T) {
	tests := []struct {
		name     string
		fitScore *float64
		jobScore *int
		override ensemble.Tier
		want     string
	}{
		{name: "request score", fitScore: score(92), want: "gold"},
		{name: "job score", jobScore: func() *int { v := 72; return &v }(), want: "silver"},
		{name: "request beats job", fitScore: score(40), jobScore: func() *int { v := 95; return &v }(), want: "skip"},
		{name: "no score runs bronze", want: "bronze"},
		{name: "override wins", fitScore: score(95), override: ensemble.TierSkip, want: "skip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest(string(roles.SeniorEngineer))
			req.FitScore = tt.fitScore
			req.Job.FitScore = tt.jobScore
			req.Tier = tt.override

			h, err := newTestAssembler(nil).Assemble(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, h.Ensemble.Tier)
		})
	}
}

func TestAssemble_SinglePassTiersValidateInRemoveMode(t *testing.T) {
	for _, fit := range []float64{55, 10} {
		req := testRequest(string(roles.SeniorEngineer))
		req.FitScore = score(fit)

		h, err := newTestAssembler(scriptedClient()).Assemble(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, 1, h.Ensemble.PassesExecuted)
		assert.False(t, h.Ensemble.SynthesisApplied)
		assert.Equal(t, "remove", h.Ensemble.ValidationPolicy)
		require.NotNil(t, h.Validation)
		assert.True(t, h.Validation.Passed)
		assert.Nil(t, h.Ensemble.ValidationFlags)
	}
}

func TestAssemble_GoldRunsEnsembleAndFlags(t *testing.T) {
	mock := scriptedClient()
	req := testRequest(string(roles.SeniorEngineer))
	req.FitScore = score(92)

	h, err := newTestAssembler(mock).Assemble(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "gold", h.Ensemble.Tier)
	assert.Equal(t, 3, h.Ensemble.PassesExecuted)
	assert.Equal(t, []string{"metric", "narrative", "keyword"}, h.Ensemble.PersonasUsed)
	assert.True(t, h.Ensemble.SynthesisApplied)
	assert.Equal(t, "flag", h.Ensemble.ValidationPolicy)
	require.NotNil(t, h.Ensemble.ValidationFlags)
	assert.Nil(t, h.Validation)
	assert.Len(t, mock.CallsFor(llm.PurposeSynthesis), 1)

	assert.Equal(t, mockSynthesized, h.Profile.Tagline)
	assert.False(t, h.Provenance.TaglineFallback)
	assert.NotContains(t, h.Profile.KeyAchievements, inventedAchievement)
	assert.Equal(t, pipelineBullet, h.Profile.KeyAchievements[0])
}

func TestAssemble_SilverSkipsValidation(t *testing.T) {
	req := testRequest(string(roles.SeniorEngineer))
	req.FitScore = score(75)

	h, err := newTestAssembler(scriptedClient()).Assemble(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "silver", h.Ensemble.Tier)
	assert.Equal(t, 2, h.Ensemble.PassesExecuted)
	assert.Equal(t, "none", h.Ensemble.ValidationPolicy)
	assert.Nil(t, h.Validation)
	assert.Nil(t, h.Ensemble.ValidationFlags)
}

func TestAssemble_AchievementsTraceToPool(t *testing.T) {
	pool := make(map[string]bool)
	for _, b := range testCV().BulletTexts() {
		pool[b] = true
	}

	for _, fit := range []float64{92, 75, 55, 10} {
		req := testRequest(string(roles.SeniorEngineer))
		req.FitScore = score(fit)

		h, err := newTestAssembler(scriptedClient()).Assemble(context.Background(), req)
		require.NoError(t, err)
		require.NotEmpty(t, h.Provenance.Achievements)
		for _, src := range h.Provenance.Achievements {
			assert.True(t, pool[src.SourceBullet], "source %q not in pool", src.SourceBullet)
			assert.Greater(t, achievements.MatchConfidence(src.BulletText, src.SourceBullet), 0.0)
		}
	}
}

func TestAssemble_TaglineConstraints(t *testing.T) {
	for _, category := range roles.All() {
		for _, fit := range []float64{92, 55} {
			req := testRequest(string(category))
			req.FitScore = score(fit)

			h, err := newTestAssembler(scriptedClient()).Assemble(context.Background(), req)
			require.NoError(t, err)
			assert.LessOrEqual(t, len([]rune(h.Profile.Tagline)), 200)
			assert.False(t, profile.ContainsPronoun(h.Profile.Tagline), h.Profile.Tagline)
		}
	}
}

func TestAssemble_CopiesCandidateMetadata(t *testing.T) {
	h, err := newTestAssembler(nil).Assemble(context.Background(), testRequest(string(roles.TechLead)))
	require.NoError(t, err)

	assert.Equal(t, "job-42", h.JobID)
	assert.Equal(t, "Jordan Lee", h.Candidate.Name)
	assert.Equal(t, []string{"CKA"}, h.Certifications)
	assert.Equal(t, []string{"English", "German"}, h.Languages)
	require.Len(t, h.Education, 1)
	assert.Equal(t, "TU Berlin", h.Education[0].Institution)
}

func TestAssemble_EmptyCandidateListsAreNotNull(t *testing.T) {
	req := testRequest(string(roles.TechLead))
	req.Candidate = types.CandidateMetadata{Name: "Jordan Lee"}

	h, err := newTestAssembler(nil).Assemble(context.Background(), req)
	require.NoError(t, err)

	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"certifications":[]`)
	assert.Contains(t, string(data), `"languages":[]`)
	assert.Contains(t, string(data), `"education":[]`)
}

func TestAssemble_OutputMatchesSchema(t *testing.T) {
	schemaPath := schemas.ResolveSchemaPath(schemas.HeaderOutputSchemaPath)
	if schemaPath == "" {
		t.Skip("header output schema not found")
	}

	for _, fit := range []float64{92, 75, 55} {
		req := testRequest(string(roles.VPEngineering))
		req.FitScore = score(fit)

		h, err := newTestAssembler(scriptedClient()).Assemble(context.Background(), req)
		require.NoError(t, err)
		data, err := h.JSON()
		require.NoError(t, err)
		assert.NoError(t, schemas.ValidateFileBytes(schemaPath, data))
	}
}

func TestAssemble_InputErrors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{name: "missing job", req: Request{CV: testCV()}},
		{name: "unknown category", req: testRequest("chief_financial_officer")},
		{name: "empty category", req: testRequest("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestAssembler(nil).Assemble(context.Background(), tt.req)
			require.Error(t, err)
			var inputErr *InputError
			assert.ErrorAs(t, err, &inputErr)
		})
	}
}

func TestAssemble_CategoryOverride(t *testing.T) {
	req := testRequest("chief_financial_officer")
	req.Category = "Head of Engineering"

	h, err := newTestAssembler(nil).Assemble(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(roles.HeadOfEngineering), h.RoleCategory)
	assert.True(t, h.Executive)
}

func TestPruneProvenance_DropsRemovedSkills(t *testing.T) {
	p := types.SkillsProvenance{
		AllFromWhitelist:    true,
		JDMatchedSkills:     []string{"Go", "Terraform"},
		WhitelistOnlySkills: []string{"Mentoring", "Kafka"},
	}
	content := grounding.Content{Sections: []types.SkillsSection{
		{Category: "Backend", Skills: []types.SkillEntry{{Name: "go"}, {Name: "Kafka"}}},
	}}

	got := pruneProvenance(p, content)
	assert.Equal(t, []string{"Go"}, got.JDMatchedSkills)
	assert.Equal(t, []string{"Kafka"}, got.WhitelistOnlySkills)
	assert.NotNil(t, got.RejectedJDSkills)
}
