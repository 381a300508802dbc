package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"tagline\": \"Builds teams\"}\n```",
			expected: `{"tagline": "Builds teams"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"selections\": []}\n```",
			expected: `{"selections": []}`,
		},
		{
			name:     "plain JSON",
			input:    `{"headline": "VP Engineering"}`,
			expected: `{"headline": "VP Engineering"}`,
		},
		{
			name:     "preamble before object",
			input:    "Here is the profile you asked for:\n{\"tagline\": \"Scales platforms\"}",
			expected: `{"tagline": "Scales platforms"}`,
		},
		{
			name:     "trailing commentary",
			input:    "{\"key\": \"value\"}\n\nLet me know if you need changes.",
			expected: `{"key": "value"}`,
		},
		{
			name:     "braces inside strings",
			input:    `{"template": "Led {team} of 12"} trailing`,
			expected: `{"template": "Led {team} of 12"}`,
		},
		{
			name:     "escaped quotes",
			input:    "Result: {\"quote\": \"said \\\"ship it\\\"\"}",
			expected: `{"quote": "said \"ship it\""}`,
		},
		{
			name:     "top level array",
			input:    "Items:\n[\"Go\", \"Kubernetes\"]",
			expected: `["Go", "Kubernetes"]`,
		},
		{
			name:     "no JSON at all",
			input:    "  not json  ",
			expected: "not json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractBalanced_Unclosed(t *testing.T) {
	assert.Equal(t, "", extractBalanced(`{"key": "value"`))
	assert.Equal(t, "", extractBalanced("plain"))
	assert.Equal(t, `{"a": {"b": [1, 2]}}`, extractBalanced(`{"a": {"b": [1, 2]}} extra`))
}
