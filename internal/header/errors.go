// Package header provides the header assembler: it runs skills selection, profile generation
// and grounding for one job, and renders the assembled header as markdown.
package header

import "fmt"

// InputError is the only whole-request failure of Assemble: the request itself is unusable
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid header request: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid header request: %s", e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// TemplateError represents an error parsing or executing the markdown template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
