// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-tailor/internal/achievements"
	"github.com/jonathan/cv-tailor/internal/ensemble"
	"github.com/jonathan/cv-tailor/internal/header"
	"github.com/jonathan/cv-tailor/internal/llm"
	"github.com/jonathan/cv-tailor/internal/logging"
	"github.com/jonathan/cv-tailor/internal/skills"
	"github.com/jonathan/cv-tailor/internal/store"
	"github.com/jonathan/cv-tailor/internal/types"
)

// Config represents the configuration that can be loaded from a JSON file.
// Every field is optional; Load merges the file over Default().
type Config struct {
	LLM       LLMConfig            `json:"llm"`
	Tiers     ensemble.Thresholds  `json:"tiers"`
	Skills    SkillsConfig         `json:"skills"`
	Selection SelectionConfig      `json:"selection"`
	Weights   types.ScoringWeights `json:"weights"`
	Retry     RetryConfig          `json:"retry"`
	Logging   logging.Config       `json:"logging"`
	Store     StoreConfig          `json:"store"`
}

// LLMConfig selects the provider and models. API keys come from the environment only.
type LLMConfig struct {
	Provider string `json:"provider" validate:"oneof=gemini anthropic"`
	Quality  string `json:"quality" validate:"oneof=fast balanced quality"`
	// Models replaces the model set of individual quality tiers
	Models         map[string]llm.ModelSet `json:"models,omitempty" validate:"dive,keys,oneof=fast balanced quality,endkeys"`
	SynthesisModel string                  `json:"synthesis_model,omitempty"`
}

// SkillsConfig maps onto skills.Options
type SkillsConfig struct {
	MaxSections         int  `json:"max_sections" validate:"gte=1,lte=10"`
	MaxSkillsPerSection int  `json:"max_skills_per_section" validate:"gte=1,lte=20"`
	LaxMode             bool `json:"lax_mode"`
}

// SelectionConfig controls key-achievement selection
type SelectionConfig struct {
	TargetCount int  `json:"target_count" validate:"gte=1,lte=12"`
	UseLLM      bool `json:"use_llm"`
}

// RetryConfig bounds the backoff around every LLM call
type RetryConfig struct {
	InitialInterval Duration `json:"initial_interval" validate:"gte=0"`
	MaxInterval     Duration `json:"max_interval" validate:"gte=0"`
	MaxAttempts     int      `json:"max_attempts" validate:"gte=1,lte=10"`
}

// StoreConfig selects the run and header store
type StoreConfig struct {
	Backend     string   `json:"backend" validate:"oneof=memory postgres redis"`
	DatabaseURL string   `json:"database_url,omitempty" validate:"required_if=Backend postgres"`
	RedisURL    string   `json:"redis_url,omitempty" validate:"required_if=Backend redis"`
	KeyPrefix   string   `json:"key_prefix,omitempty"`
	TTL         Duration `json:"ttl,omitempty" validate:"gte=0"`
}

// Duration is a time.Duration that reads "2s" style strings or integer seconds from JSON
type Duration time.Duration

// UnmarshalJSON accepts a duration string or a number of seconds
func (d *Duration) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		parsed, err := time.ParseDuration(text)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", text, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("duration must be a string or a number of seconds: %w", err)
	}
	*d = Duration(seconds * float64(time.Second))
	return nil
}

// MarshalJSON writes the duration as a string
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Default returns the documented defaults
func Default() *Config {
	retry := llm.DefaultRetryPolicy()
	llmDefaults := llm.DefaultConfig()
	return &Config{
		LLM: LLMConfig{
			Provider: string(llmDefaults.Provider),
			Quality:  string(llmDefaults.Quality),
		},
		Tiers: ensemble.DefaultThresholds(),
		Skills: SkillsConfig{
			MaxSections:         skills.DefaultMaxSections,
			MaxSkillsPerSection: skills.DefaultMaxSkillsPerSection,
		},
		Selection: SelectionConfig{
			TargetCount: achievements.DefaultTargetCount,
			UseLLM:      true,
		},
		Weights: types.DefaultScoringWeights(),
		Retry: RetryConfig{
			InitialInterval: Duration(retry.InitialInterval),
			MaxInterval:     Duration(retry.MaxInterval),
			MaxAttempts:     retry.MaxAttempts,
		},
		Logging: logging.DefaultConfig(),
		Store:   StoreConfig{Backend: string(store.BackendMemory)},
	}
}

// Load reads a JSON config file and merges it over the defaults.
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges, the tier table and the scoring weights
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := c.Tiers.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("config error: weights: %w", err)
	}
	if c.Retry.MaxInterval < c.Retry.InitialInterval {
		return fmt.Errorf("config error: 'retry.max_interval' must not be below 'retry.initial_interval'")
	}
	return nil
}

// LLMConfig returns the model configuration of the selected provider with overrides applied
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfigFor(llm.Provider(c.LLM.Provider)).WithQuality(llm.QualityTier(c.LLM.Quality))
	for quality, set := range c.LLM.Models {
		cfg = cfg.WithModelSet(llm.QualityTier(quality), set)
	}
	if c.LLM.SynthesisModel != "" {
		cfg.SynthesisModel = c.LLM.SynthesisModel
	}
	return cfg
}

// APIKeyEnv returns the environment variable holding the provider's API key
func (c *Config) APIKeyEnv() string {
	if llm.Provider(c.LLM.Provider) == llm.ProviderAnthropic {
		return "ANTHROPIC_API_KEY"
	}
	return "GEMINI_API_KEY"
}

// RetryPolicy returns the LLM retry policy
func (c *Config) RetryPolicy() llm.RetryPolicy {
	return llm.RetryPolicy{
		InitialInterval: time.Duration(c.Retry.InitialInterval),
		MaxInterval:     time.Duration(c.Retry.MaxInterval),
		MaxAttempts:     c.Retry.MaxAttempts,
	}
}

// HeaderOptions returns the assembler options
func (c *Config) HeaderOptions() header.Options {
	return header.Options{
		Skills: skills.Options{
			MaxSections:         c.Skills.MaxSections,
			MaxSkillsPerSection: c.Skills.MaxSkillsPerSection,
			LaxMode:             c.Skills.LaxMode,
		},
		Ensemble: ensemble.Options{
			Thresholds:  c.Tiers,
			Weights:     c.Weights,
			TargetCount: c.Selection.TargetCount,
			UseLLM:      c.Selection.UseLLM,
		},
	}
}

// StoreOptions returns the store options
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:     store.Backend(c.Store.Backend),
		DatabaseURL: c.Store.DatabaseURL,
		RedisURL:    c.Store.RedisURL,
		KeyPrefix:   c.Store.KeyPrefix,
		TTL:         time.Duration(c.Store.TTL),
	}
}
