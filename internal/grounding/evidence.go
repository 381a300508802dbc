// Package grounding provides the grounding validator: every emitted skill and metric must trace
// to the candidate's bullets or the skill whitelist. Remove mode deletes what does not trace,
// flag mode reports it and leaves it in place.
package grounding

import (
	"fmt"
	"strconv"

	"github.com/jonathan/cv-tailor/internal/textutil"
	"github.com/jonathan/cv-tailor/internal/types"
)

// Policy selects what the validator does with ungrounded content
type Policy string

// Policies
const (
	// PolicyRemove deletes ungrounded skills and drops sections left empty
	PolicyRemove Policy = "remove"
	// PolicyFlag reports ungrounded metrics, skills and narrative claims without changing content
	PolicyFlag Policy = "flag"
	// PolicyNone skips validation
	PolicyNone Policy = "none"
)

// ParsePolicy parses a policy name
func ParsePolicy(value string) (Policy, error) {
	switch p := Policy(value); p {
	case PolicyRemove, PolicyFlag, PolicyNone:
		return p, nil
	default:
		return "", fmt.Errorf("unknown grounding policy %q (want remove, flag or none)", value)
	}
}

// Evidence is the source material claims are checked against
type Evidence struct {
	bullets   []string
	numbers   map[string]bool
	whitelist *types.SkillWhitelist
}

// NewEvidence indexes the bullet pool of a CV and the whitelist
func NewEvidence(cv *types.StitchedCV, whitelist *types.SkillWhitelist) *Evidence {
	bullets := cv.BulletTexts()
	return &Evidence{
		bullets:   bullets,
		numbers:   textutil.NumberSet(bullets),
		whitelist: whitelist,
	}
}

// Mentioned reports whether the skill term occurs in any bullet. Short names must match their casing.
func (e *Evidence) Mentioned(term string) bool {
	for _, bullet := range e.bullets {
		if textutil.ContainsSkill(bullet, term) {
			return true
		}
	}
	return false
}

// HasNumber reports whether a numeric token appears anywhere in the bullet pool
func (e *Evidence) HasNumber(n string) bool {
	return e.numbers[n]
}

// Whitelisted reports whether skill is a member of the whitelist
func (e *Evidence) Whitelisted(skill string) bool {
	return e.whitelist != nil && e.whitelist.Contains(skill)
}

// ExtractNumbers returns the normalized numeric tokens of text
func ExtractNumbers(text string) []string {
	return textutil.Numbers(text)
}

// isLarge reports whether a numeric token is big enough to be a claim worth checking
func isLarge(n string) bool {
	value, err := strconv.ParseFloat(n, 64)
	return err == nil && value >= largeClaimThreshold
}
