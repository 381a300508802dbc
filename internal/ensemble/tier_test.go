package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/grounding"
)

func TestResolveTier_DefaultThresholds(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		score float64
		want  Tier
	}{
		{score: 92, want: TierGold},
		{score: 85, want: TierGold},
		{score: 84.9, want: TierSilver},
		{score: 72, want: TierSilver},
		{score: 50, want: TierBronze},
		{score: 40, want: TierSkip},
		{score: 0, want: TierSkip},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveTier(tt.score, "", th), "score %.1f", tt.score)
	}
}

func TestResolveTier_OverrideWins(t *testing.T) {
	assert.Equal(t, TierGold, ResolveTier(10, TierGold, DefaultThresholds()))
	assert.Equal(t, TierSkip, ResolveTier(99, TierSkip, DefaultThresholds()))
}

func TestResolveTier_ConfiguredThresholds(t *testing.T) {
	th := Thresholds{Gold: 90, Silver: 60, Bronze: 30}
	assert.Equal(t, TierSilver, th.Resolve(85))
	assert.Equal(t, TierBronze, th.Resolve(40))
	assert.Equal(t, TierSkip, th.Resolve(29))
}

func TestThresholds_Validate(t *testing.T) {
	require.NoError(t, DefaultThresholds().Validate())
	assert.Error(t, Thresholds{Gold: 60, Silver: 70, Bronze: 50}.Validate())
	assert.Error(t, Thresholds{Gold: 120, Silver: 70, Bronze: 50}.Validate())
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier(" GOLD ")
	require.NoError(t, err)
	assert.Equal(t, TierGold, tier)

	tier, err = ParseTier("")
	require.NoError(t, err)
	assert.Equal(t, Tier(""), tier)

	_, err = ParseTier("platinum")
	assert.Error(t, err)
}

func TestTier_PersonasAndPolicy(t *testing.T) {
	assert.Equal(t, []Persona{PersonaMetric, PersonaNarrative, PersonaKeyword}, TierGold.Personas())
	assert.Equal(t, []Persona{PersonaMetric, PersonaKeyword}, TierSilver.Personas())
	assert.Empty(t, TierBronze.Personas())
	assert.False(t, TierSkip.Ensembled())

	assert.Equal(t, grounding.PolicyFlag, TierGold.GroundingPolicy())
	assert.Equal(t, grounding.PolicyNone, TierSilver.GroundingPolicy())
	assert.Equal(t, grounding.PolicyRemove, TierBronze.GroundingPolicy())
	assert.Equal(t, grounding.PolicyRemove, TierSkip.GroundingPolicy())
}
