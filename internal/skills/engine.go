// Package skills provides the skills taxonomy engine: it selects role-specific competency
// sections and fills them with whitelisted skills ranked by relevance to a job description.
package skills

import (
	"errors"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/jonathan/cv-tailor/internal/roles"
	"github.com/jonathan/cv-tailor/internal/types"
)

const (
	// DefaultMaxSections is the number of competency sections surfaced
	DefaultMaxSections = 4
	// DefaultMaxSkillsPerSection is the per-section cap before lax mode
	DefaultMaxSkillsPerSection = 6
	// laxMultiplier widens each section in lax mode to leave room for human pruning
	laxMultiplier = 1.3
)

// ErrNoProfile is returned when Select is called without a role profile
var ErrNoProfile = errors.New("skills: role profile is required")

// Options controls section and skill counts
type Options struct {
	MaxSections         int  `json:"max_sections"`
	MaxSkillsPerSection int  `json:"max_skills_per_section"`
	LaxMode             bool `json:"lax_mode"`
}

// DefaultOptions returns the documented defaults
func DefaultOptions() Options {
	return Options{
		MaxSections:         DefaultMaxSections,
		MaxSkillsPerSection: DefaultMaxSkillsPerSection,
	}
}

// SkillsPerSection returns the effective per-section cap
func (o Options) SkillsPerSection() int {
	limit := o.MaxSkillsPerSection
	if limit <= 0 {
		limit = DefaultMaxSkillsPerSection
	}
	if o.LaxMode {
		return int(math.Round(float64(limit) * laxMultiplier))
	}
	return limit
}

func (o Options) sections() int {
	if o.MaxSections <= 0 {
		return DefaultMaxSections
	}
	return o.MaxSections
}

// Input is everything a skills selection reads. None of it is modified.
type Input struct {
	Profile     *roles.Profile
	Job         *types.JobDescription
	CV          *types.StitchedCV
	Whitelist   *types.SkillWhitelist
	Annotations []types.AnnotationPriority
}

// Result is the selected skills content and its provenance
type Result struct {
	Competencies []types.CoreCompetencySection
	Sections     []types.SkillsSection
	Provenance   types.SkillsProvenance
}

// Flat returns every selected skill in section order
func (r *Result) Flat() []string {
	flat := make([]string, 0)
	for _, c := range r.Competencies {
		flat = append(flat, c.Skills...)
	}
	return flat
}

// ByName returns the section-name to skills mapping
func (r *Result) ByName() map[string][]string {
	byName := make(map[string][]string, len(r.Competencies))
	for _, c := range r.Competencies {
		byName[c.Name] = append([]string(nil), c.Skills...)
	}
	return byName
}

// Engine selects competency sections and skills for a role
type Engine struct {
	opts   Options
	logger zerolog.Logger
}

// NewEngine creates a skills engine
func NewEngine(opts Options, logger zerolog.Logger) *Engine {
	return &Engine{opts: opts, logger: logger.With().Str("component", "skills").Logger()}
}

type rankedSection struct {
	section roles.Section
	score   SectionScore
}

type rankedSkill struct {
	name     string
	score    SkillScore
	evidence Evidence
}

// Select ranks the role's taxonomy sections against the JD and fills the best ones
// with whitelisted skills. Every emitted skill uses the whitelist's own spelling.
// With an empty whitelist it returns zero sections and rejects every JD keyword.
func (e *Engine) Select(in Input) (*Result, error) {
	if in.Profile == nil {
		return nil, ErrNoProfile
	}

	resolver := NewResolver(in.Whitelist)
	signals := NewJobSignals(in.Job)
	result := &Result{
		Competencies: make([]types.CoreCompetencySection, 0),
		Sections:     make([]types.SkillsSection, 0),
		Provenance: types.SkillsProvenance{
			AllFromWhitelist:    true,
			JDMatchedSkills:     make([]string, 0),
			WhitelistOnlySkills: make([]string, 0),
			RejectedJDSkills:    rejectedKeywords(signals.Keywords, resolver),
		},
	}

	if resolver.Len() == 0 {
		e.logger.Warn().
			Str("role", in.Profile.Category.String()).
			Int("rejected_jd_skills", len(result.Provenance.RejectedJDSkills)).
			Msg("empty skill whitelist, emitting no skills sections")
		return result, nil
	}

	ranked := make([]rankedSection, 0, len(in.Profile.Taxonomy))
	for _, section := range in.Profile.Taxonomy {
		ranked = append(ranked, rankedSection{section: section, score: ScoreSection(section, signals)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score.Total != ranked[j].score.Total {
			return ranked[i].score.Total > ranked[j].score.Total
		}
		return ranked[i].section.Name < ranked[j].section.Name
	})

	perSection := e.opts.SkillsPerSection()
	used := make(map[string]bool)
	for _, rs := range ranked {
		if len(result.Competencies) >= e.opts.sections() {
			break
		}
		skills := e.rankSkills(rs.section, resolver, used, signals, in)
		if len(skills) == 0 {
			continue
		}
		if len(skills) > perSection {
			skills = skills[:perSection]
		}

		competency := types.CoreCompetencySection{
			Name:   rs.section.Name,
			Skills: make([]string, 0, len(skills)),
			Score:  rs.score.Total,
		}
		section := types.SkillsSection{Category: rs.section.Name, Skills: make([]types.SkillEntry, 0, len(skills))}
		for _, s := range skills {
			used[CanonicalKey(s.name)] = true
			jdMatched := s.score.JDMatch >= jdMatchExact
			competency.Skills = append(competency.Skills, s.name)
			section.Skills = append(section.Skills, types.SkillEntry{
				Name:            s.name,
				EvidenceBullets: s.evidence.Bullets,
				JDMatch:         jdMatched,
			})
			if jdMatched {
				competency.JDMatches++
				result.Provenance.JDMatchedSkills = append(result.Provenance.JDMatchedSkills, s.name)
			} else {
				result.Provenance.WhitelistOnlySkills = append(result.Provenance.WhitelistOnlySkills, s.name)
			}
			if in.Whitelist == nil || !in.Whitelist.Contains(s.name) {
				result.Provenance.AllFromWhitelist = false
			}
		}
		result.Competencies = append(result.Competencies, competency)
		result.Sections = append(result.Sections, section)
	}

	e.logger.Debug().
		Str("role", in.Profile.Category.String()).
		Int("sections", len(result.Competencies)).
		Int("jd_matched", len(result.Provenance.JDMatchedSkills)).
		Int("rejected_jd_skills", len(result.Provenance.RejectedJDSkills)).
		Msg("skills selected")

	return result, nil
}

// rankSkills resolves a section's skill pool against the whitelist and orders it by score,
// breaking ties alphabetically. Skills already placed in a higher-ranked section are skipped.
func (e *Engine) rankSkills(section roles.Section, resolver *Resolver, used map[string]bool, signals JobSignals, in Input) []rankedSkill {
	seen := make(map[string]bool)
	skills := make([]rankedSkill, 0, len(section.Skills))
	for _, candidate := range section.Skills {
		name, ok := resolver.Resolve(candidate)
		if !ok {
			continue
		}
		key := CanonicalKey(name)
		if used[key] || seen[key] {
			continue
		}
		seen[key] = true
		ev := CollectEvidence(name, in.CV)
		skills = append(skills, rankedSkill{
			name:     name,
			score:    ScoreSkill(name, ev, signals, in.Annotations),
			evidence: ev,
		})
	}
	sort.SliceStable(skills, func(i, j int) bool {
		if skills[i].score.Total != skills[j].score.Total {
			return skills[i].score.Total > skills[j].score.Total
		}
		return skills[i].name < skills[j].name
	})
	return skills
}

// rejectedKeywords lists JD keywords with no whitelist backing, in JD order, deduplicated
func rejectedKeywords(keywords []string, resolver *Resolver) []string {
	rejected := make([]string, 0)
	seen := make(map[string]bool)
	for _, kw := range keywords {
		key := CanonicalKey(kw)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if _, ok := resolver.Resolve(kw); !ok {
			rejected = append(rejected, kw)
		}
	}
	return rejected
}
