// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"golang.org/x/text/cases"
)

// SkillWhitelist is the authoritative set of skills asserted by the candidate.
// It is the only legitimate source of skill names in generated output.
type SkillWhitelist struct {
	HardSkills []string `json:"hard_skills"`
	SoftSkills []string `json:"soft_skills"`
}

// FoldSkill returns the caseless comparison key for a skill name.
// Whitespace is trimmed and internal runs collapsed before folding.
func FoldSkill(name string) string {
	collapsed := strings.Join(strings.Fields(name), " ")
	if collapsed == "" {
		return ""
	}
	// Casers are stateful; one per call keeps FoldSkill safe for concurrent use.
	return cases.Fold().String(collapsed)
}

// IsEmpty reports whether the whitelist is absent or holds no skills
func (w *SkillWhitelist) IsEmpty() bool {
	return w == nil || len(w.All()) == 0
}

// All returns every whitelisted skill, hard skills first, deduplicated caselessly.
// The first spelling seen wins.
func (w *SkillWhitelist) All() []string {
	if w == nil {
		return nil
	}
	seen := make(map[string]bool)
	all := make([]string, 0, len(w.HardSkills)+len(w.SoftSkills))
	for _, group := range [][]string{w.HardSkills, w.SoftSkills} {
		for _, skill := range group {
			key := FoldSkill(skill)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, strings.TrimSpace(skill))
		}
	}
	return all
}

// Lookup returns the whitelist's own spelling of name (case-insensitive exact match)
func (w *SkillWhitelist) Lookup(name string) (string, bool) {
	key := FoldSkill(name)
	if key == "" {
		return "", false
	}
	for _, skill := range w.All() {
		if FoldSkill(skill) == key {
			return skill, true
		}
	}
	return "", false
}

// Contains reports whether name is a case-insensitive member of the whitelist
func (w *SkillWhitelist) Contains(name string) bool {
	_, ok := w.Lookup(name)
	return ok
}

// IsHard reports whether name is whitelisted as a hard skill
func (w *SkillWhitelist) IsHard(name string) bool {
	if w == nil {
		return false
	}
	key := FoldSkill(name)
	for _, skill := range w.HardSkills {
		if FoldSkill(skill) == key {
			return true
		}
	}
	return false
}

// Index builds a folded-key to spelling map for repeated membership checks
func (w *SkillWhitelist) Index() map[string]string {
	all := w.All()
	index := make(map[string]string, len(all))
	for _, skill := range all {
		index[FoldSkill(skill)] = skill
	}
	return index
}
