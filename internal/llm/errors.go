// Package llm provides the LLM collaborator contract, tiered model selection,
// Gemini and Anthropic providers, and a retrying, tracing client decorator.
package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an Invoke failure
type ErrorKind string

const (
	// KindTransport is a provider or network failure
	KindTransport ErrorKind = "transport"
	// KindEmptyResponse is a response without text
	KindEmptyResponse ErrorKind = "empty_response"
	// KindSchema is structured output that violates the requested schema
	KindSchema ErrorKind = "schema"
	// KindDecode is structured output that is not valid JSON
	KindDecode ErrorKind = "decode"
	// KindConfig is a request that cannot be served (no model, no API key)
	KindConfig ErrorKind = "config"
)

// InvokeError is the single typed failure of Client.Invoke
type InvokeError struct {
	Kind    ErrorKind
	Model   string
	Message string
	Cause   error
}

func (e *InvokeError) Error() string {
	msg := fmt.Sprintf("llm %s error", e.Kind)
	if e.Model != "" {
		msg += fmt.Sprintf(" (model %s)", e.Model)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *InvokeError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether another attempt could succeed.
// Schema and decode failures are retried since a fresh sample may comply.
func (e *InvokeError) Retryable() bool {
	return e.Kind != KindConfig
}

// IsKind reports whether err is an InvokeError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var invokeErr *InvokeError
	return errors.As(err, &invokeErr) && invokeErr.Kind == kind
}
