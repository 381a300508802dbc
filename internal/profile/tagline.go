// Package profile provides the header profile generator: the algorithmic headline, the
// LLM-written value proposition with its mechanical checks, and the role fallback path.
package profile

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cv-tailor/internal/textutil"
	"github.com/jonathan/cv-tailor/internal/types"
)

// Tagline limits
const (
	MinTaglineWords = 15
	MaxTaglineWords = 25
	MaxTaglineChars = 200
)

// pronouns are the first and second person forms a value proposition may not use
var pronouns = map[string]bool{
	"i": true, "me": true, "my": true, "mine": true,
	"we": true, "us": true, "our": true, "ours": true,
	"you": true, "your": true, "yours": true,
}

// ContainsPronoun reports whether text uses a first or second person pronoun, matched on word boundaries
func ContainsPronoun(text string) bool {
	for _, word := range textutil.Words(text) {
		if pronouns[word] {
			return true
		}
	}
	return false
}

// CheckTagline runs the mechanical checks over a final tagline
func CheckTagline(text string) types.TaglineChecks {
	text = strings.TrimSpace(text)
	words := len(strings.Fields(text))
	chars := utf8.RuneCountInString(text)
	return types.TaglineChecks{
		WordCount:        words,
		CharCount:        chars,
		WithinWordTarget: words >= MinTaglineWords && words <= MaxTaglineWords,
		WithinCharLimit:  chars <= MaxTaglineChars,
		HasPronoun:       ContainsPronoun(text),
	}
}

// Acceptable reports whether a tagline may be emitted. The word target is advisory;
// pronouns, blank text and the character limit are not.
func Acceptable(checks types.TaglineChecks) bool {
	return checks.WordCount > 0 && checks.WithinCharLimit && !checks.HasPronoun
}
