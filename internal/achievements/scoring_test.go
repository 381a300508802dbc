package achievements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/types"
)

func costJob() JobContext {
	return JobContext{
		PainPoints:        []string{"cloud infrastructure costs are growing too fast"},
		Keywords:          []string{"Kubernetes", "CI/CD"},
		CompetencyWeights: map[string]float64{"leadership": 0.8},
	}
}

func TestScore_PainPointAndDefensible(t *testing.T) {
	scorer := NewScorer(types.DefaultScoringWeights())
	b := scorer.Score(bulletByText("Reduced cloud infrastructure spend by 35% through platform consolidation"), costJob())

	assert.Equal(t, 3.0, b.PainPoint)
	assert.Equal(t, []string{"cloud infrastructure costs are growing too fast"}, b.MatchedPainPoints)
	assert.Equal(t, 0.0, b.Keywords)
	assert.Equal(t, 2.0, b.Recency)
	assert.Equal(t, 1.0, b.InterviewDefensible)
	assert.InDelta(t, 6.0, b.Total, 1e-9)
}

func TestScore_KeywordsAndCompetency(t *testing.T) {
	scorer := NewScorer(types.DefaultScoringWeights())
	b := scorer.Score(bulletByText("Led migration of the payments platform to Kubernetes with zero downtime"), costJob())

	assert.Equal(t, 1.0, b.Keywords)
	assert.Equal(t, []string{"Kubernetes"}, b.MatchedKeywords)
	assert.InDelta(t, 0.8, b.Competency, 1e-9)
	assert.Equal(t, 0.0, b.InterviewDefensible)
	assert.InDelta(t, 3.8, b.Total, 1e-9)
}

func TestScore_RecencyDecays(t *testing.T) {
	scorer := NewScorer(types.DefaultScoringWeights())
	job := JobContext{}

	current := scorer.Score(types.PoolBullet{Text: "Wrote docs", RoleIndex: 0}, job)
	previous := scorer.Score(types.PoolBullet{Text: "Wrote docs", RoleIndex: 1}, job)
	older := scorer.Score(types.PoolBullet{Text: "Wrote docs", RoleIndex: 7}, job)

	assert.Equal(t, 2.0, current.Recency)
	assert.Equal(t, 1.0, previous.Recency)
	assert.Equal(t, 0.5, older.Recency)
}

func TestScore_Annotations(t *testing.T) {
	scorer := NewScorer(types.DefaultScoringWeights())
	job := JobContext{Annotations: []types.AnnotationPriority{
		{Rank: 1, JDText: "Kubernetes at scale", MatchingSkill: "Kubernetes", Relevance: types.RelevanceCoreStrength,
			EvidenceSnippets: []string{"payments platform to Kubernetes"}},
		{Rank: 2, JDText: "Rust", Relevance: types.RelevanceGap, EvidenceSnippets: []string{"Wrote internal documentation"}},
	}}

	kube := scorer.Score(bulletByText("Led migration of the payments platform to Kubernetes with zero downtime"), job)
	assert.Equal(t, 2.5, kube.AnnotationSuggested)
	assert.Equal(t, 2.0, kube.CoreStrength)

	docs := scorer.Score(bulletByText("Wrote internal documentation for onboarding"), job)
	assert.Equal(t, 0.0, docs.AnnotationSuggested, "gap annotations never suggest")
}

func TestScore_PreferredVariant(t *testing.T) {
	scorer := NewScorer(types.DefaultScoringWeights())
	job := JobContext{PreferredVariant: VariantLeadership}

	leadership := scorer.Score(bulletByText("Mentored eight engineering managers and built a hiring process"), job)
	metric := scorer.Score(bulletByText("Cut incident response time by 60% by introducing on-call rotations"), job)

	assert.Equal(t, 1.0, leadership.VariantType)
	assert.Equal(t, 0.0, metric.VariantType)
}

func TestNewJobContext(t *testing.T) {
	job := &types.JobDescription{
		Title:         "CTO",
		PainPoints:    []string{"scale"},
		Keywords:      []string{"Go"},
		EmphasisAreas: []string{"platform"},
	}
	jc := NewJobContext(job, []string{"strategy"}, nil, VariantLeadership)

	assert.Equal(t, []string{"platform", "strategy"}, jc.EmphasisAreas)
	assert.Equal(t, VariantLeadership, jc.PreferredVariant)
	assert.Equal(t, []string{"Go"}, jc.Keywords)

	empty := NewJobContext(nil, nil, nil, "")
	assert.Empty(t, empty.Keywords)
}

func TestScoreAll_PreservesPoolOrder(t *testing.T) {
	scorer := NewScorer(types.DefaultScoringWeights())
	pool := samplePool()
	scored := scorer.ScoreAll(pool, costJob())

	require.Len(t, scored, len(pool))
	for i := range scored {
		assert.Equal(t, i, scored[i].Position)
		assert.Equal(t, pool[i].Text, scored[i].Bullet.Text)
	}
}
