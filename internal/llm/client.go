// Package llm provides the LLM collaborator contract, tiered model selection,
// Gemini and Anthropic providers, and a retrying, tracing client decorator.
package llm

import (
	"context"
	"encoding/json"
)

// Request is a single LLM invocation.
// When Schema is set the call is structured and the response carries validated JSON.
type Request struct {
	Prompt string
	System string
	Schema *OutputSchema
	// Purpose selects the model from the active quality tier
	Purpose Purpose
	// Temperature overrides the configured sampling temperature when set
	Temperature *float32
}

// Response is the text and, for structured calls, the validated JSON document
type Response struct {
	Text       string
	Structured json.RawMessage
	Model      string
}

// Client is an abstraction over LLM providers
type Client interface {
	// Invoke runs the request; every failure is an *InvokeError
	Invoke(ctx context.Context, req Request) (*Response, error)
	// Model returns the model name that serves a purpose
	Model(p Purpose) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderAnthropic:
		return NewClaudeClient(config, apiKey)
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, &InvokeError{Kind: KindConfig, Message: "unknown provider " + string(config.Provider)}
	}
}

// Temp returns a pointer to t for Request.Temperature
func Temp(t float32) *float32 {
	return &t
}

func (r Request) temperature(fallback float32) float32 {
	if r.Temperature != nil {
		return *r.Temperature
	}
	return fallback
}
