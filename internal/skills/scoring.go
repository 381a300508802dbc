// Package skills provides the skills taxonomy engine: it selects role-specific competency
// sections and fills them with whitelisted skills ranked by relevance to a job description.
package skills

import (
	"math"

	"github.com/jonathan/cv-tailor/internal/roles"
	"github.com/jonathan/cv-tailor/internal/textutil"
	"github.com/jonathan/cv-tailor/internal/types"
)

const (
	// Section score weights
	weightSectionKeywords         = 0.5
	weightSectionResponsibilities = 0.3
	weightSectionPriority         = 0.2

	// Skill score weights
	weightSkillJDMatch  = 0.4
	weightSkillEvidence = 0.3
	weightSkillRecency  = 0.3

	// signalSaturation is the number of JD signal hits that counts as full keyword overlap
	signalSaturation = 3
	// evidenceSaturation is the number of evidencing bullets that counts as full evidence
	evidenceSaturation = 3

	// jdMatchExact is a skill named by a JD keyword; jdMatchMention is one only mentioned in JD prose
	jdMatchExact   = 1.0
	jdMatchMention = 0.5

	// Annotation boosts
	boostCoreStrength      = 3.0
	boostExtremelyRelevant = 2.0
	boostRelevant          = 1.5
	boostNone              = 1.0
)

// JobSignals is the JD text the engine scores against
type JobSignals struct {
	Keywords         []string
	Responsibilities []string
	// Prose is every other JD sentence that may mention a skill (qualifications, responsibilities)
	Prose []string
}

// NewJobSignals extracts scoring signals from a job description
func NewJobSignals(jd *types.JobDescription) JobSignals {
	if jd == nil {
		return JobSignals{}
	}
	prose := make([]string, 0, len(jd.Responsibilities)+len(jd.Qualifications))
	prose = append(prose, jd.Responsibilities...)
	prose = append(prose, jd.Qualifications...)
	return JobSignals{
		Keywords:         jd.Keywords,
		Responsibilities: jd.Responsibilities,
		Prose:            prose,
	}
}

// keywordHit reports whether term matches any JD keyword, either way round
func (s JobSignals) keywordHit(term string) bool {
	key := CanonicalKey(term)
	for _, kw := range s.Keywords {
		if CanonicalKey(kw) == key || textutil.ContainsTerm(kw, term) {
			return true
		}
	}
	return false
}

// SectionScore is the breakdown of a section's relevance
type SectionScore struct {
	KeywordOverlap      float64
	ResponsibilityMatch float64
	Priority            float64
	Total               float64
}

// ScoreSection scores a taxonomy section against the JD:
// 0.5 × keyword overlap + 0.3 × responsibility match + 0.2 × priority, each in [0,1].
func ScoreSection(section roles.Section, signals JobSignals) SectionScore {
	terms := make([]string, 0, len(section.Signals)+len(section.Skills))
	terms = append(terms, section.Signals...)
	terms = append(terms, section.Skills...)

	hits := 0
	for _, term := range terms {
		if signals.keywordHit(term) {
			hits++
		}
	}
	overlap := math.Min(1.0, float64(hits)/signalSaturation)

	responsibility := 0.0
	if len(signals.Responsibilities) > 0 {
		matched := 0
		for _, r := range signals.Responsibilities {
			if textutil.ContainsAny(r, terms) {
				matched++
			}
		}
		responsibility = float64(matched) / float64(len(signals.Responsibilities))
	}

	priority := math.Max(0, math.Min(1, section.Priority))

	return SectionScore{
		KeywordOverlap:      overlap,
		ResponsibilityMatch: responsibility,
		Priority:            priority,
		Total:               weightSectionKeywords*overlap + weightSectionResponsibilities*responsibility + weightSectionPriority*priority,
	}
}

// Evidence is what the candidate's history says about one skill
type Evidence struct {
	Bullets []string
	// MostRecentRole is the index of the newest role that evidences the skill, or -1
	MostRecentRole int
}

// CollectEvidence finds the bullets and roles that mention a skill.
// A role also evidences a skill it lists explicitly.
func CollectEvidence(skill string, cv *types.StitchedCV) Evidence {
	ev := Evidence{MostRecentRole: -1}
	if cv == nil {
		return ev
	}
	key := CanonicalKey(skill)
	for i, role := range cv.Roles {
		found := false
		for _, bullet := range role.Bullets {
			if textutil.ContainsSkill(bullet, skill) {
				ev.Bullets = append(ev.Bullets, bullet)
				found = true
			}
		}
		for _, listed := range role.Skills {
			if CanonicalKey(listed) == key {
				found = true
			}
		}
		if found && ev.MostRecentRole < 0 {
			ev.MostRecentRole = i
		}
	}
	return ev
}

// SkillScore is the breakdown of a skill's relevance
type SkillScore struct {
	JDMatch  float64
	Evidence float64
	Recency  float64
	Boost    float64
	Total    float64
}

// ScoreSkill scores one whitelisted skill:
// (0.4 × jd_match + 0.3 × evidence_frequency + 0.3 × recency) × annotation_boost.
func ScoreSkill(skill string, ev Evidence, signals JobSignals, annotations []types.AnnotationPriority) SkillScore {
	jdMatch := 0.0
	if signals.keywordHit(skill) {
		jdMatch = jdMatchExact
	} else if mentionedIn(skill, signals.Prose) {
		jdMatch = jdMatchMention
	}

	evidence := math.Min(1.0, float64(len(ev.Bullets))/evidenceSaturation)

	recency := 0.0
	if ev.MostRecentRole >= 0 {
		recency = 1.0 / float64(ev.MostRecentRole+1)
	}

	boost := AnnotationBoost(skill, annotations)
	base := weightSkillJDMatch*jdMatch + weightSkillEvidence*evidence + weightSkillRecency*recency

	return SkillScore{
		JDMatch:  jdMatch,
		Evidence: evidence,
		Recency:  recency,
		Boost:    boost,
		Total:    base * boost,
	}
}

func mentionedIn(skill string, texts []string) bool {
	for _, text := range texts {
		if textutil.ContainsSkill(text, skill) {
			return true
		}
	}
	return false
}

// AnnotationBoost returns the largest boost any annotation grants the skill.
// Core strengths and must-haves boost the most; unannotated skills get 1.0.
func AnnotationBoost(skill string, annotations []types.AnnotationPriority) float64 {
	key := CanonicalKey(skill)
	boost := boostNone
	for _, a := range annotations {
		if a.MatchingSkill == "" || CanonicalKey(a.MatchingSkill) != key {
			continue
		}
		var b float64
		switch {
		case a.IsCoreStrength() || a.IsMustHave():
			b = boostCoreStrength
		case a.Relevance == types.RelevanceExtremelyRelevant:
			b = boostExtremelyRelevant
		case a.Relevance == types.RelevanceRelevant || a.Requirement == types.RequirementNiceToHave:
			b = boostRelevant
		default:
			b = boostNone
		}
		boost = math.Max(boost, b)
	}
	return boost
}
