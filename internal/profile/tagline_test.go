package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-tailor/internal/roles"
)

func TestContainsPronoun(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"I build platforms", true},
		{"Builds platforms our customers trust", true},
		{"Helping YOU scale", true},
		{"Platform leader; mine is the on-call", true},
		{"Builds platforms that users trust", false},
		{"Scaled Music and Museum products", false},
		{"Led the iOS team", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContainsPronoun(tt.text))
		})
	}
}

func TestCheckTagline(t *testing.T) {
	tagline := "Engineering leader who scales platform teams and delivery together, turning reliability investments into measurable business outcomes for growing product organizations"
	checks := CheckTagline(tagline)

	assert.Equal(t, 20, checks.WordCount)
	assert.True(t, checks.WithinWordTarget)
	assert.True(t, checks.WithinCharLimit)
	assert.False(t, checks.HasPronoun)
	assert.True(t, Acceptable(checks))

	long := CheckTagline(strings.Repeat("platform ", 30))
	assert.False(t, long.WithinWordTarget)
	assert.False(t, long.WithinCharLimit)
	assert.False(t, Acceptable(long))

	assert.False(t, Acceptable(CheckTagline("   ")))
}

func TestFallbackTaglinesPassChecks(t *testing.T) {
	for _, category := range roles.All() {
		p := roles.MustLookup(category)
		checks := CheckTagline(p.FallbackTagline)

		assert.True(t, checks.WithinWordTarget, "%s: %d words", category, checks.WordCount)
		assert.True(t, checks.WithinCharLimit, "%s: %d chars", category, checks.CharCount)
		assert.False(t, checks.HasPronoun, category)
		assert.GreaterOrEqual(t, len(p.FallbackAchievements), 3, category)
	}
}
