package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, QualityBalanced, config.Quality)
	assert.Equal(t, "gemini-2.5-pro", config.Model(PurposeComplex))
	assert.Equal(t, "gemini-2.5-flash", config.Model(PurposeAnalytical))
	assert.Equal(t, "gemini-2.5-flash-lite", config.Model(PurposeSimple))
}

func TestDefaultConfigFor(t *testing.T) {
	assert.Equal(t, ProviderAnthropic, DefaultConfigFor(ProviderAnthropic).Provider)
	assert.Equal(t, ProviderGemini, DefaultConfigFor(ProviderGemini).Provider)
	assert.Equal(t, ProviderGemini, DefaultConfigFor("unknown").Provider)
}

func TestModel_SynthesisIgnoresQuality(t *testing.T) {
	for _, q := range []QualityTier{QualityFast, QualityBalanced, QualityQuality} {
		config := DefaultAnthropicConfig().WithQuality(q)
		assert.Equal(t, "claude-haiku-4-5", config.Model(PurposeSynthesis), "quality %s", q)
	}
}

func TestModel_SynthesisWithoutDedicatedModel(t *testing.T) {
	config := DefaultGeminiConfig()
	config.SynthesisModel = ""

	assert.Equal(t, config.Model(PurposeSimple), config.Model(PurposeSynthesis))
}

func TestModel_FallsBackToBalanced(t *testing.T) {
	config := DefaultGeminiConfig().WithQuality("turbo")

	assert.Equal(t, "gemini-2.5-pro", config.Model(PurposeComplex))
}

func TestModel_EmptyConfig(t *testing.T) {
	config := &Config{Provider: ProviderGemini, Models: map[QualityTier]ModelSet{}}

	assert.Equal(t, "", config.Model(PurposeComplex))
}

func TestWithModelSet(t *testing.T) {
	config := DefaultGeminiConfig()
	custom := config.WithModelSet(QualityBalanced, ModelSet{Complex: "custom", Analytical: "custom", Simple: "custom"})

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.Model(PurposeComplex))
	assert.Equal(t, "custom", custom.Model(PurposeComplex))

	// Other tiers are copied
	assert.Equal(t, "gemini-2.5-flash", custom.WithQuality(QualityFast).Model(PurposeComplex))
}

func TestQualityChangesPersonaModel(t *testing.T) {
	fast := DefaultGeminiConfig().WithQuality(QualityFast)
	quality := DefaultGeminiConfig().WithQuality(QualityQuality)

	assert.Equal(t, "gemini-2.5-flash", fast.Model(PurposeComplex))
	assert.Equal(t, "gemini-2.5-pro", quality.Model(PurposeAnalytical))
}
