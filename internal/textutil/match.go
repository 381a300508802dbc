// Package textutil provides the case-insensitive term matching and token extraction
// shared by skill scoring, achievement scoring and grounding checks.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// numberPattern matches numeric tokens with optional thousands separators, decimals and unit suffixes
var numberPattern = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// stopWords are dropped when extracting significant words
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "have": true,
	"in": true, "into": true, "is": true, "it": true, "its": true, "of": true,
	"on": true, "or": true, "that": true, "the": true, "their": true, "to": true,
	"was": true, "were": true, "will": true, "with": true, "across": true, "while": true,
	"this": true, "than": true, "then": true, "over": true, "through": true, "all": true,
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// shortSkillLen is the longest skill name that must match with its own casing
const shortSkillLen = 2

// ContainsTerm reports whether term occurs in text as a whole word or phrase, ignoring case.
// Whitespace runs are collapsed on both sides. Boundaries are checked on letters and
// digits only, so terms like "C++" and "CI/CD" match.
func ContainsTerm(text, term string) bool {
	return containsWord(strings.ToLower(collapse(text)), strings.ToLower(collapse(term)))
}

// ContainsSkill is ContainsTerm for skill names. Names of at most two characters ("Go", "R")
// must appear with the given casing, so "go live" is not a mention of Go.
func ContainsSkill(text, skill string) bool {
	skill = collapse(skill)
	if utf8.RuneCountInString(skill) > shortSkillLen {
		return ContainsTerm(text, skill)
	}
	return containsWord(collapse(text), skill)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func containsWord(haystack, term string) bool {
	if term == "" {
		return false
	}
	for start := 0; start <= len(haystack)-len(term); {
		idx := strings.Index(haystack[start:], term)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(term)
		if boundaryBefore(haystack, idx) && boundaryAfter(haystack, end) {
			return true
		}
		start = idx + 1
	}
	return false
}

func boundaryBefore(s string, idx int) bool {
	if idx == 0 {
		return true
	}
	r := lastRune(s[:idx])
	return !isWordRune(r)
}

func boundaryAfter(s string, end int) bool {
	if end >= len(s) {
		return true
	}
	r := []rune(s[end:])[0]
	return !isWordRune(r)
}

func lastRune(s string) rune {
	runes := []rune(s)
	return runes[len(runes)-1]
}

// ContainsAny reports whether any of the terms occurs in text
func ContainsAny(text string, terms []string) bool {
	for _, term := range terms {
		if ContainsTerm(text, term) {
			return true
		}
	}
	return false
}

// CountMatches returns how many texts contain term
func CountMatches(texts []string, term string) int {
	count := 0
	for _, text := range texts {
		if ContainsTerm(text, term) {
			count++
		}
	}
	return count
}

// Words splits text into lowercase words, dropping punctuation
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r) && r != '+' && r != '#'
	})
}

// SignificantWords returns the distinct non-stop-words of text with at least three characters
func SignificantWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range Words(text) {
		if len(w) < 3 || stopWords[w] {
			continue
		}
		words[w] = true
	}
	return words
}

// SharedWords counts the significant words that a and b have in common
func SharedWords(a, b string) int {
	left := SignificantWords(a)
	shared := 0
	for w := range SignificantWords(b) {
		if left[w] {
			shared++
		}
	}
	return shared
}

// Numbers extracts the numeric tokens of text, normalized by dropping thousands separators
// and trailing punctuation. "$1,200" and "1200" both yield "1200".
func Numbers(text string) []string {
	matches := numberPattern.FindAllString(text, -1)
	numbers := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimRight(strings.ReplaceAll(m, ",", ""), ".")
		if m != "" {
			numbers = append(numbers, m)
		}
	}
	return numbers
}

// HasNumber reports whether text contains a numeric token
func HasNumber(text string) bool {
	return numberPattern.MatchString(text)
}

// NumberSet returns the distinct numeric tokens of all texts
func NumberSet(texts []string) map[string]bool {
	set := make(map[string]bool)
	for _, text := range texts {
		for _, n := range Numbers(text) {
			set[n] = true
		}
	}
	return set
}
