// Package llm provides the LLM collaborator contract, tiered model selection,
// Gemini and Anthropic providers, and a retrying, tracing client decorator.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &InvokeError{Kind: KindConfig, Message: "GEMINI_API_KEY is required"}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &InvokeError{Kind: KindConfig, Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Invoke generates content with the model serving req.Purpose
func (c *GeminiClient) Invoke(ctx context.Context, req Request) (*Response, error) {
	modelName := c.config.Model(req.Purpose)
	if modelName == "" {
		return nil, &InvokeError{Kind: KindConfig, Message: fmt.Sprintf("no model configured for purpose %s", req.Purpose)}
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(req.temperature(c.config.Temperature))
	if c.config.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(c.config.MaxTokens))
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}
	if req.Schema != nil {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	if err != nil {
		return nil, &InvokeError{Kind: KindTransport, Model: modelName, Message: "failed to generate content", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, &InvokeError{Kind: KindEmptyResponse, Model: modelName, Cause: err}
	}

	return FinishResponse(modelName, text, req.Schema)
}

// Model returns the model name for a purpose
func (c *GeminiClient) Model(p Purpose) string {
	return c.config.Model(p)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
