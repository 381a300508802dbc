package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("profile.json", "value-proposition")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Formula}}")
	assert.Contains(t, prompt, "15 to 25 words")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("achievements.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	template := "Write for {{.Title}} at {{.Company}}, {{.Title}} again"
	result := Format(template, map[string]string{
		"Title":   "VP Engineering",
		"Company": "Acme",
	})
	assert.Equal(t, "Write for VP Engineering at Acme, VP Engineering again", result)
}

func TestEveryPersonaHasAPrompt(t *testing.T) {
	keys, err := List("ensemble.json")
	require.NoError(t, err)

	for _, key := range []string{"persona-metric", "persona-narrative", "persona-keyword", "synthesize-profile", "synthesis-system"} {
		assert.Contains(t, keys, key)
	}
}

func TestRender(t *testing.T) {
	ClearCache()

	rendered, err := Render("ensemble.json", "synthesize-profile", map[string]string{
		"Title":      "CTO",
		"Company":    "Acme",
		"Candidates": "candidate one",
		"Target":     "6",
	})
	require.NoError(t, err)
	assert.Contains(t, rendered, "Target role: CTO at Acme")
	assert.NotContains(t, rendered, "{{.")
}

func TestRender_UnfilledPlaceholder(t *testing.T) {
	ClearCache()

	_, err := Render("ensemble.json", "synthesize-profile", map[string]string{"Title": "CTO"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "{{.Company}}")
}
