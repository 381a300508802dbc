// Package llm provides the LLM collaborator contract, tiered model selection,
// Gemini and Anthropic providers, and a retrying, tracing client decorator.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeClient implements Client for Anthropic's Messages API
type ClaudeClient struct {
	client anthropic.Client
	config *Config
}

// NewClaudeClient creates a new Anthropic client
func NewClaudeClient(config *Config, apiKey string) (*ClaudeClient, error) {
	if apiKey == "" {
		return nil, &InvokeError{Kind: KindConfig, Message: "ANTHROPIC_API_KEY is required"}
	}

	return &ClaudeClient{
		client: anthropic.NewClient(anthropicopt.WithAPIKey(apiKey)),
		config: config,
	}, nil
}

// Invoke sends a single user message to the model serving req.Purpose
func (c *ClaudeClient) Invoke(ctx context.Context, req Request) (*Response, error) {
	modelName := c.config.Model(req.Purpose)
	if modelName == "" {
		return nil, &InvokeError{Kind: KindConfig, Message: fmt.Sprintf("no model configured for purpose %s", req.Purpose)}
	}

	maxTokens := c.config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(modelName),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(float64(req.temperature(c.config.Temperature))),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: buildPrompt(req)},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, &InvokeError{Kind: KindTransport, Model: modelName, Message: "failed to call Anthropic API", Cause: err}
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	if sb.Len() == 0 {
		return nil, &InvokeError{Kind: KindEmptyResponse, Model: modelName, Message: "no text blocks in response"}
	}

	return FinishResponse(modelName, sb.String(), req.Schema)
}

// Model returns the model name for a purpose
func (c *ClaudeClient) Model(p Purpose) string {
	return c.config.Model(p)
}

// Close is a no-op; the Anthropic client holds no long-lived resources
func (c *ClaudeClient) Close() error {
	return nil
}
