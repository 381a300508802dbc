// Package llm provides the LLM collaborator contract, tiered model selection,
// Gemini and Anthropic providers, and a retrying, tracing client decorator.
package llm

// Purpose names the kind of work a call does; it selects a model from the active set
type Purpose string

const (
	// PurposeComplex is for the heavier generation passes (persona passes)
	PurposeComplex Purpose = "complex"
	// PurposeAnalytical is for profile and skills calls
	PurposeAnalytical Purpose = "analytical"
	// PurposeSimple is for small classification or selection calls
	PurposeSimple Purpose = "simple"
	// PurposeSynthesis always uses the dedicated synthesis model, regardless of quality tier
	PurposeSynthesis Purpose = "synthesis"
)

// QualityTier selects which model set serves a run
type QualityTier string

// Quality tiers
const (
	QualityFast     QualityTier = "fast"
	QualityBalanced QualityTier = "balanced"
	QualityQuality  QualityTier = "quality"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderAnthropic is the Anthropic/Claude provider
	ProviderAnthropic Provider = "anthropic"
)

const (
	defaultTemperature = 0.1
	defaultMaxTokens   = 2048
)

// ModelSet is the model triple of one quality tier
type ModelSet struct {
	Complex    string `json:"complex"`
	Analytical string `json:"analytical"`
	Simple     string `json:"simple"`
}

// For returns the model serving a purpose. Synthesis is not part of a set.
func (m ModelSet) For(p Purpose) string {
	switch p {
	case PurposeComplex:
		return m.Complex
	case PurposeAnalytical:
		return m.Analytical
	default:
		return m.Simple
	}
}

// Config holds the model configuration for the application
type Config struct {
	Provider       Provider                 `json:"provider"`
	Quality        QualityTier              `json:"quality"`
	Models         map[QualityTier]ModelSet `json:"models"`
	SynthesisModel string                   `json:"synthesis_model"`
	Temperature    float32                  `json:"temperature"`
	MaxTokens      int64                    `json:"max_tokens"`
}

// DefaultConfig returns the default configuration (Gemini, balanced)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultConfigFor returns the default configuration of a provider
func DefaultConfigFor(provider Provider) *Config {
	if provider == ProviderAnthropic {
		return DefaultAnthropicConfig()
	}
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Quality:  QualityBalanced,
		Models: map[QualityTier]ModelSet{
			QualityFast:     {Complex: "gemini-2.5-flash", Analytical: "gemini-2.5-flash-lite", Simple: "gemini-2.5-flash-lite"},
			QualityBalanced: {Complex: "gemini-2.5-pro", Analytical: "gemini-2.5-flash", Simple: "gemini-2.5-flash-lite"},
			QualityQuality:  {Complex: "gemini-2.5-pro", Analytical: "gemini-2.5-pro", Simple: "gemini-2.5-flash"},
		},
		SynthesisModel: "gemini-2.5-flash-lite",
		Temperature:    defaultTemperature,
		MaxTokens:      defaultMaxTokens,
	}
}

// DefaultAnthropicConfig returns the default Anthropic configuration
func DefaultAnthropicConfig() *Config {
	return &Config{
		Provider: ProviderAnthropic,
		Quality:  QualityBalanced,
		Models: map[QualityTier]ModelSet{
			QualityFast:     {Complex: "claude-sonnet-4-5", Analytical: "claude-haiku-4-5", Simple: "claude-haiku-4-5"},
			QualityBalanced: {Complex: "claude-opus-4-1", Analytical: "claude-sonnet-4-5", Simple: "claude-haiku-4-5"},
			QualityQuality:  {Complex: "claude-opus-4-1", Analytical: "claude-opus-4-1", Simple: "claude-sonnet-4-5"},
		},
		SynthesisModel: "claude-haiku-4-5",
		Temperature:    defaultTemperature,
		MaxTokens:      defaultMaxTokens,
	}
}

// Model returns the model name for a purpose under the active quality tier.
// Synthesis always resolves to SynthesisModel. Falls back to the balanced set, then "".
func (c *Config) Model(p Purpose) string {
	if p == PurposeSynthesis {
		if c.SynthesisModel != "" {
			return c.SynthesisModel
		}
		p = PurposeSimple
	}
	if set, ok := c.Models[c.Quality]; ok {
		if model := set.For(p); model != "" {
			return model
		}
	}
	if set, ok := c.Models[QualityBalanced]; ok {
		return set.For(p)
	}
	return ""
}

// WithQuality returns a copy of the config using another quality tier
func (c *Config) WithQuality(q QualityTier) *Config {
	copied := c.clone()
	copied.Quality = q
	return copied
}

// WithModelSet returns a copy of the config with one quality tier's set replaced
func (c *Config) WithModelSet(q QualityTier, set ModelSet) *Config {
	copied := c.clone()
	copied.Models[q] = set
	return copied
}

func (c *Config) clone() *Config {
	copied := *c
	copied.Models = make(map[QualityTier]ModelSet, len(c.Models))
	for k, v := range c.Models {
		copied.Models[k] = v
	}
	return &copied
}
