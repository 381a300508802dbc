// Package grounding provides the grounding validator: every emitted skill and metric must trace
// to the candidate's bullets or the skill whitelist. Remove mode deletes what does not trace,
// flag mode reports it and leaves it in place.
package grounding

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/jonathan/cv-tailor/internal/types"
)

// largeClaimThreshold is the smallest number in narrative text that must trace to a bullet
const largeClaimThreshold = 10

// Content is the generated material the validator inspects
type Content struct {
	Profile      types.ProfileOutput
	Sections     []types.SkillsSection
	Competencies []types.CoreCompetencySection
}

// Report is the outcome of one validation. Result is set in remove mode, Flags in flag mode.
type Report struct {
	Policy Policy
	Result *types.ValidationResult
	Flags  *types.ValidationFlags
}

// Validator checks generated content against evidence
type Validator struct {
	logger zerolog.Logger
}

// NewValidator creates a validator
func NewValidator(logger zerolog.Logger) *Validator {
	return &Validator{logger: logger.With().Str("component", "grounding").Logger()}
}

// Validate applies policy to content. The returned content is a copy; in remove mode
// ungrounded skills are gone from it. The input is never modified.
func (v *Validator) Validate(content Content, ev *Evidence, policy Policy) (Content, *Report) {
	switch policy {
	case PolicyRemove:
		cleaned, result := v.remove(content, ev)
		return cleaned, &Report{Policy: policy, Result: result}
	case PolicyFlag:
		return copyContent(content), &Report{Policy: policy, Flags: v.flag(content, ev)}
	default:
		return copyContent(content), &Report{Policy: PolicyNone}
	}
}

// skillCheck is the shared grounding verdict over every skill the content emits
type skillCheck struct {
	grounded   []string
	ungrounded []string
	// bad holds the folded names of ungrounded skills
	bad map[string]bool
}

// checkSkills grounds a skill if a bullet mentions it or its section entry carries evidence bullets.
// extra widens grounding, e.g. to whitelist membership in flag mode.
func checkSkills(content Content, ev *Evidence, extra func(string) bool) skillCheck {
	evidenced := make(map[string]bool)
	for _, section := range content.Sections {
		for _, entry := range section.Skills {
			if len(entry.EvidenceBullets) > 0 {
				evidenced[types.FoldSkill(entry.Name)] = true
			}
		}
	}

	check := skillCheck{grounded: []string{}, ungrounded: []string{}, bad: make(map[string]bool)}
	seen := make(map[string]bool)
	for _, name := range emittedSkills(content) {
		key := types.FoldSkill(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if evidenced[key] || ev.Mentioned(name) || (extra != nil && extra(name)) {
			check.grounded = append(check.grounded, name)
			continue
		}
		check.ungrounded = append(check.ungrounded, name)
		check.bad[key] = true
	}
	return check
}

// emittedSkills lists every skill name in sections, competency sections and the profile, in that order
func emittedSkills(content Content) []string {
	names := make([]string, 0)
	for _, section := range content.Sections {
		names = append(names, section.Names()...)
	}
	for _, c := range content.Competencies {
		names = append(names, c.Skills...)
	}
	names = append(names, content.Profile.CoreCompetencies...)
	sectionNames := make([]string, 0, len(content.Profile.CoreCompetenciesV2))
	for name := range content.Profile.CoreCompetenciesV2 {
		sectionNames = append(sectionNames, name)
	}
	sort.Strings(sectionNames)
	for _, name := range sectionNames {
		names = append(names, content.Profile.CoreCompetenciesV2[name]...)
	}
	return names
}

func (v *Validator) remove(content Content, ev *Evidence) (Content, *types.ValidationResult) {
	first := checkSkills(content, ev, nil)
	cleaned, dropped := strip(content, first.bad)
	second := checkSkills(cleaned, ev, nil)

	result := &types.ValidationResult{
		Passed:           len(second.ungrounded) == 0,
		GroundedSkills:   second.grounded,
		UngroundedSkills: second.ungrounded,
		RemovedSkills:    first.ungrounded,
		DroppedSections:  dropped,
	}
	if len(first.ungrounded) > 0 {
		v.logger.Info().
			Strs("removed_skills", first.ungrounded).
			Strs("dropped_sections", dropped).
			Msg("removed ungrounded skills")
	}
	if !result.Passed {
		v.logger.Error().Strs("ungrounded_skills", second.ungrounded).Msg("grounding re-validation failed")
	}
	return cleaned, result
}

// strip returns content without the bad skills; sections left empty are dropped
func strip(content Content, bad map[string]bool) (Content, []string) {
	keep := func(name string) bool { return !bad[types.FoldSkill(name)] }
	dropped := make([]string, 0)
	droppedSeen := make(map[string]bool)
	drop := func(name string) {
		if !droppedSeen[name] {
			droppedSeen[name] = true
			dropped = append(dropped, name)
		}
	}

	out := Content{
		Profile:      content.Profile,
		Sections:     make([]types.SkillsSection, 0, len(content.Sections)),
		Competencies: make([]types.CoreCompetencySection, 0, len(content.Competencies)),
	}
	for _, section := range content.Sections {
		entries := make([]types.SkillEntry, 0, len(section.Skills))
		for _, entry := range section.Skills {
			if keep(entry.Name) {
				entries = append(entries, entry)
			}
		}
		if len(entries) == 0 {
			drop(section.Category)
			continue
		}
		out.Sections = append(out.Sections, types.SkillsSection{Category: section.Category, Skills: entries})
	}
	for _, c := range content.Competencies {
		skills := filter(c.Skills, keep)
		if len(skills) == 0 {
			drop(c.Name)
			continue
		}
		matches := c.JDMatches
		if matches > len(skills) {
			matches = len(skills)
		}
		out.Competencies = append(out.Competencies, types.CoreCompetencySection{
			Name: c.Name, Skills: skills, JDMatches: matches, Score: c.Score,
		})
	}

	out.Profile.CoreCompetencies = filter(content.Profile.CoreCompetencies, keep)
	out.Profile.CoreCompetenciesV2 = make(map[string][]string, len(content.Profile.CoreCompetenciesV2))
	for name, skills := range content.Profile.CoreCompetenciesV2 {
		if kept := filter(skills, keep); len(kept) > 0 {
			out.Profile.CoreCompetenciesV2[name] = kept
		}
	}
	out.Profile.KeyAchievements = append([]string{}, content.Profile.KeyAchievements...)
	return out, dropped
}

func filter(names []string, keep func(string) bool) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if keep(name) {
			out = append(out, name)
		}
	}
	return out
}

func (v *Validator) flag(content Content, ev *Evidence) *types.ValidationFlags {
	flags := &types.ValidationFlags{
		UngroundedMetrics: []string{},
		UngroundedSkills:  []string{},
		UngroundedClaims:  []string{},
	}

	for _, achievement := range content.Profile.KeyAchievements {
		for _, n := range ExtractNumbers(achievement) {
			if !ev.HasNumber(n) {
				flags.UngroundedMetrics = append(flags.UngroundedMetrics, fmt.Sprintf("%s in %q", n, achievement))
			}
		}
	}

	flags.UngroundedSkills = checkSkills(content, ev, ev.Whitelisted).ungrounded

	years := strconv.Itoa(content.Profile.YearsExperience)
	seen := make(map[string]bool)
	for _, text := range []string{content.Profile.Tagline, content.Profile.ValueProposition} {
		for _, n := range ExtractNumbers(text) {
			if seen[n] || n == years || !isLarge(n) || ev.HasNumber(n) {
				continue
			}
			seen[n] = true
			flags.UngroundedClaims = append(flags.UngroundedClaims, fmt.Sprintf("%s in %q", n, text))
		}
	}

	if flags.HasIssues() {
		v.logger.Warn().
			Int("ungrounded_metrics", len(flags.UngroundedMetrics)).
			Int("ungrounded_skills", len(flags.UngroundedSkills)).
			Int("ungrounded_claims", len(flags.UngroundedClaims)).
			Msg("grounding flags raised")
	}
	return flags
}

func copyContent(content Content) Content {
	out := Content{
		Profile:      content.Profile,
		Sections:     make([]types.SkillsSection, len(content.Sections)),
		Competencies: make([]types.CoreCompetencySection, len(content.Competencies)),
	}
	copy(out.Sections, content.Sections)
	copy(out.Competencies, content.Competencies)
	out.Profile.KeyAchievements = append([]string{}, content.Profile.KeyAchievements...)
	out.Profile.CoreCompetencies = append([]string{}, content.Profile.CoreCompetencies...)
	return out
}
