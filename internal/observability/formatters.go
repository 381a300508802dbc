// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintHeader outputs every summary box of a generated header
func (p *Printer) PrintHeader(h *types.HeaderOutput) {
	if h == nil {
		return
	}
	p.PrintEnsemble(&h.Ensemble)
	p.PrintProfile(&h.Profile)
	p.PrintSkills(h.SkillsSections, &h.Provenance.Skills)
	p.PrintValidation(h.Validation, h.Ensemble.ValidationFlags)
}

// PrintEnsemble outputs which tier ran and how
func (p *Printer) PrintEnsemble(meta *types.EnsembleMetadata) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tier:       %s\n", meta.Tier))
	sb.WriteString(fmt.Sprintf("Passes:     %d\n", meta.PassesExecuted))
	if len(meta.PersonasUsed) > 0 {
		sb.WriteString(fmt.Sprintf("Personas:   %s\n", strings.Join(meta.PersonasUsed, ", ")))
	}
	if len(meta.FailedPersonas) > 0 {
		sb.WriteString(fmt.Sprintf("Failed:     %s\n", strings.Join(meta.FailedPersonas, ", ")))
	}
	synthesis := "no"
	if meta.SynthesisApplied {
		synthesis = "yes (" + meta.SynthesisModel + ")"
	}
	sb.WriteString(fmt.Sprintf("Synthesis:  %s\n", synthesis))
	if meta.Degraded {
		sb.WriteString("Degraded:   yes\n")
	}
	sb.WriteString(fmt.Sprintf("Validation: %s\n", meta.ValidationPolicy))
	sb.WriteString(fmt.Sprintf("Elapsed:    %dms", meta.GenerationTimeMS))

	p.printBox("ENSEMBLE", sb.String())
}

// PrintProfile outputs the headline, tagline and key achievements
func (p *Printer) PrintProfile(profile *types.ProfileOutput) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Headline: %s\n", profile.Headline))
	tagline := profile.Tagline
	if profile.TaglineFallback {
		tagline += " [fallback]"
	}
	sb.WriteString(fmt.Sprintf("Tagline:  %s\n", tagline))
	sb.WriteString(fmt.Sprintf("          %d words, %d chars\n", profile.TaglineChecks.WordCount, profile.TaglineChecks.CharCount))

	if len(profile.KeyAchievements) > 0 {
		sb.WriteString("\nKey Achievements:\n")
		count := min(len(profile.KeyAchievements), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, profile.KeyAchievements[i]))
		}
		if len(profile.KeyAchievements) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.KeyAchievements)-maxItemsToShow))
		}
	}

	p.printBox("PROFILE", strings.TrimRight(sb.String(), "\n"))
}

// PrintSkills outputs the skills sections and the rejection bookkeeping
func (p *Printer) PrintSkills(sections []types.SkillsSection, provenance *types.SkillsProvenance) {
	var sb strings.Builder
	if len(sections) == 0 {
		sb.WriteString("No skills sections emitted\n")
	}
	for _, section := range sections {
		names := make([]string, 0, len(section.Skills))
		for _, skill := range section.Skills {
			name := skill.Name
			if skill.JDMatch {
				name += "*"
			}
			names = append(names, name)
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", section.Category, strings.Join(names, ", ")))
	}

	if provenance != nil {
		sb.WriteString(fmt.Sprintf("\nJD matched: %d   Whitelist only: %d\n",
			len(provenance.JDMatchedSkills), len(provenance.WhitelistOnlySkills)))
		if len(provenance.RejectedJDSkills) > 0 {
			count := min(len(provenance.RejectedJDSkills), maxItemsToShow)
			sb.WriteString(fmt.Sprintf("Rejected JD skills: %s", strings.Join(provenance.RejectedJDSkills[:count], ", ")))
			if len(provenance.RejectedJDSkills) > maxItemsToShow {
				sb.WriteString(fmt.Sprintf(" ... and %d more", len(provenance.RejectedJDSkills)-maxItemsToShow))
			}
			sb.WriteString("\n")
		}
	}

	p.printBox("SKILLS", strings.TrimRight(sb.String(), "\n"))
}

// PrintValidation outputs the grounding outcome: the remove-mode result or the flag-mode report
func (p *Printer) PrintValidation(result *types.ValidationResult, flags *types.ValidationFlags) {
	if result == nil && flags == nil {
		return
	}

	var sb strings.Builder
	if result != nil {
		status := "✓ PASSED"
		if !result.Passed {
			status = "✗ FAILED"
		}
		sb.WriteString(fmt.Sprintf("Status: %s\n", status))
		if len(result.RemovedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("Removed skills: %s\n", strings.Join(result.RemovedSkills, ", ")))
		}
		if len(result.DroppedSections) > 0 {
			sb.WriteString(fmt.Sprintf("Dropped sections: %s\n", strings.Join(result.DroppedSections, ", ")))
		}
	}
	if flags != nil {
		if !flags.HasIssues() {
			sb.WriteString("No grounding flags raised\n")
		}
		writeFlags(&sb, "Metrics", flags.UngroundedMetrics)
		writeFlags(&sb, "Skills", flags.UngroundedSkills)
		writeFlags(&sb, "Claims", flags.UngroundedClaims)
	}

	p.printBox("GROUNDING", strings.TrimRight(sb.String(), "\n"))
}

func writeFlags(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(items)))
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		sb.WriteString(fmt.Sprintf("  ⚠ %s\n", item))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
