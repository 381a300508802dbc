// Package achievements provides the key-achievement selector: bullet scoring against job
// signals, algorithmic and LLM-assisted top-K selection, and source matching for provenance.
package achievements

import (
	"strings"

	"github.com/jonathan/cv-tailor/internal/roles"
	"github.com/jonathan/cv-tailor/internal/textutil"
)

// Variant is the dominant kind of claim a bullet makes
type Variant string

// Variants
const (
	VariantMetric     Variant = "metric"
	VariantLeadership Variant = "leadership"
	VariantTechnical  Variant = "technical"
)

// strongVerbs are action verbs that open a defensible achievement
var strongVerbs = map[string]bool{
	"achieved": true, "architected": true, "built": true, "created": true,
	"cut": true, "delivered": true, "designed": true, "developed": true,
	"drove": true, "engineered": true, "established": true, "grew": true,
	"hired": true, "implemented": true, "improved": true, "increased": true,
	"launched": true, "led": true, "migrated": true, "optimized": true,
	"owned": true, "reduced": true, "rebuilt": true, "scaled": true,
	"shipped": true, "spearheaded": true, "transformed": true,
}

// leadershipTerms mark people and organization claims
var leadershipTerms = []string{
	"team", "teams", "hired", "hiring", "mentored", "coached", "managed", "org",
	"organization", "engineers", "reports", "headcount", "culture", "leaders",
}

// StartsWithStrongVerb reports whether the first word is an action verb.
// Any past-tense word longer than three letters counts.
func StartsWithStrongVerb(text string) bool {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return false
	}

	first := strings.TrimRight(words[0], ".,!?;:")
	if strongVerbs[first] {
		return true
	}
	return strings.HasSuffix(first, "ed") && len(first) > 3
}

// InterviewDefensible reports whether a bullet opens with an action verb and carries a concrete number
func InterviewDefensible(text string) bool {
	return StartsWithStrongVerb(text) && textutil.HasNumber(text)
}

// Classify returns the variant of a bullet. Numbers win over people terms.
func Classify(text string) Variant {
	if textutil.HasNumber(text) {
		return VariantMetric
	}
	if textutil.ContainsAny(text, leadershipTerms) {
		return VariantLeadership
	}
	return VariantTechnical
}

// PreferredVariant returns the variant a role category rewards by default
func PreferredVariant(category roles.Category) Variant {
	switch {
	case category.IsExecutive(), category == roles.EngineeringManager:
		return VariantLeadership
	default:
		return VariantTechnical
	}
}
