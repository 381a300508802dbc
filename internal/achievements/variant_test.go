package achievements

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-tailor/internal/roles"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text     string
		expected Variant
	}{
		{"Reduced cloud infrastructure spend by 35% through platform consolidation", VariantMetric},
		{"Hired 14 engineers into two new teams", VariantMetric},
		{"Mentored eight engineering managers and built a hiring process", VariantLeadership},
		{"Wrote internal documentation for onboarding", VariantTechnical},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.text))
		})
	}
}

func TestStartsWithStrongVerb(t *testing.T) {
	assert.True(t, StartsWithStrongVerb("Led migration of the payments platform"))
	assert.True(t, StartsWithStrongVerb("Spearheaded, with two peers, the rewrite"))
	assert.True(t, StartsWithStrongVerb("Standardized on-call"))
	assert.False(t, StartsWithStrongVerb("The team shipped weekly"))
	assert.False(t, StartsWithStrongVerb(""))
}

func TestInterviewDefensible(t *testing.T) {
	assert.True(t, InterviewDefensible("Cut incident response time by 60%"))
	assert.False(t, InterviewDefensible("Led migration of the payments platform"))
	assert.False(t, InterviewDefensible("Responsible for 3 services"))
}

func TestPreferredVariant(t *testing.T) {
	assert.Equal(t, VariantLeadership, PreferredVariant(roles.CTO))
	assert.Equal(t, VariantLeadership, PreferredVariant(roles.EngineeringManager))
	assert.Equal(t, VariantTechnical, PreferredVariant(roles.StaffPrincipalEngineer))
	assert.Equal(t, VariantTechnical, PreferredVariant(roles.SeniorEngineer))
}
