// Package llm provides the LLM collaborator contract, tiered model selection,
// Gemini and Anthropic providers, and a retrying, tracing client decorator.
package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldType is the JSON type of an output field
type FieldType string

// Field types
const (
	FieldString     FieldType = "string"
	FieldStringList FieldType = "string_list"
	FieldInteger    FieldType = "integer"
	FieldBoolean    FieldType = "boolean"
	FieldObjectList FieldType = "object_list"
	FieldStringMap  FieldType = "string_list_map"
)

// OutputSchema declares the shape a structured call must return.
// It renders both the JSON Schema used for validation and the prompt instructions.
type OutputSchema struct {
	Name        string
	Description string
	Fields      []SchemaField
}

// SchemaField defines a single field in the structured output.
// Items describes list elements when Type is FieldObjectList.
type SchemaField struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool
	MinItems    int
	MaxItems    int
	Items       []SchemaField
}

func (f SchemaField) jsonSchema() map[string]interface{} {
	switch f.Type {
	case FieldStringList:
		s := map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}}
		f.applyBounds(s)
		return s
	case FieldInteger:
		return map[string]interface{}{"type": "integer"}
	case FieldBoolean:
		return map[string]interface{}{"type": "boolean"}
	case FieldObjectList:
		s := map[string]interface{}{"type": "array", "items": objectSchema(f.Items)}
		f.applyBounds(s)
		return s
	case FieldStringMap:
		return map[string]interface{}{
			"type":                 "object",
			"additionalProperties": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		}
	default:
		return map[string]interface{}{"type": "string"}
	}
}

func (f SchemaField) applyBounds(s map[string]interface{}) {
	if f.MinItems > 0 {
		s["minItems"] = f.MinItems
	}
	if f.MaxItems > 0 {
		s["maxItems"] = f.MaxItems
	}
}

func objectSchema(fields []SchemaField) map[string]interface{} {
	properties := make(map[string]interface{}, len(fields))
	required := make([]string, 0, len(fields))
	for _, f := range fields {
		properties[f.Name] = f.jsonSchema()
		if f.Required {
			required = append(required, f.Name)
		}
	}
	s := map[string]interface{}{"type": "object", "properties": properties}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// JSONSchema renders the schema as a JSON Schema document
func (s *OutputSchema) JSONSchema() string {
	doc := objectSchema(s.Fields)
	doc["$schema"] = "http://json-schema.org/draft-07/schema#"
	doc["title"] = s.Name
	data, err := json.Marshal(doc)
	if err != nil {
		// maps of strings, ints and nested maps always marshal
		panic(fmt.Sprintf("output schema %s: %v", s.Name, err))
	}
	return string(data)
}

func typeHint(f SchemaField) string {
	switch f.Type {
	case FieldStringList:
		return `["string"]`
	case FieldInteger:
		return "integer"
	case FieldBoolean:
		return "boolean"
	case FieldStringMap:
		return `{"name": ["string"]}`
	case FieldObjectList:
		inner := make([]string, 0, len(f.Items))
		for _, item := range f.Items {
			inner = append(inner, fmt.Sprintf("%q: %s", item.Name, typeHint(item)))
		}
		return "[{" + strings.Join(inner, ", ") + "}]"
	default:
		return `"string"`
	}
}

// Instructions renders the output contract appended to a structured prompt
func (s *OutputSchema) Instructions() string {
	var sb strings.Builder

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range s.Fields {
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  %q: %s%s", field.Name, typeHint(field), requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(s.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Use only facts present in the input, do not invent numbers, skills or employers.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")

	return sb.String()
}
