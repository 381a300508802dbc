// Package llm provides the LLM collaborator contract, tiered model selection,
// Gemini and Anthropic providers, and a retrying, tracing client decorator.
package llm

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/cv-tailor/internal/schemas"
)

// buildPrompt appends the output contract to structured prompts
func buildPrompt(req Request) string {
	if req.Schema == nil {
		return req.Prompt
	}
	return strings.TrimRight(req.Prompt, "\n") + "\n\n" + req.Schema.Instructions()
}

// FinishResponse validates provider text against the requested schema.
// Providers and test doubles call it on raw text.
func FinishResponse(model, text string, schema *OutputSchema) (*Response, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &InvokeError{Kind: KindEmptyResponse, Model: model, Message: "response text is empty"}
	}
	resp := &Response{Text: text, Model: model}
	if schema == nil {
		return resp, nil
	}

	doc := []byte(CleanJSONBlock(text))
	if !json.Valid(doc) {
		return nil, &InvokeError{Kind: KindDecode, Model: model, Message: "structured response is not valid JSON"}
	}
	if err := schemas.ValidateBytes(schema.JSONSchema(), doc); err != nil {
		return nil, &InvokeError{Kind: KindSchema, Model: model, Message: schema.Name, Cause: err}
	}
	resp.Structured = json.RawMessage(doc)
	return resp, nil
}

// Decode unmarshals the structured document of resp into v
func Decode(resp *Response, v interface{}) error {
	if resp == nil || len(resp.Structured) == 0 {
		return &InvokeError{Kind: KindDecode, Message: "response carries no structured output"}
	}
	if err := json.Unmarshal(resp.Structured, v); err != nil {
		return &InvokeError{Kind: KindDecode, Model: resp.Model, Cause: err}
	}
	return nil
}
