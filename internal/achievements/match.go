// Package achievements provides the key-achievement selector: bullet scoring against job
// signals, algorithmic and LLM-assisted top-K selection, and source matching for provenance.
package achievements

import (
	"strings"

	"github.com/jonathan/cv-tailor/internal/textutil"
	"github.com/jonathan/cv-tailor/internal/types"
)

const (
	// minWordOverlap is the share of a source bullet's significant words a rewording must keep
	minWordOverlap       = 0.5
	substringConfidence  = 0.9
	rewordBaseConfidence = 0.5
	rewordMaxConfidence  = 0.95
)

// Match is a traced rewording
type Match struct {
	Source     types.PoolBullet
	Position   int
	Confidence float64
}

// Verbatim reports whether the text equals its source
func (m Match) Verbatim() bool {
	return m.Confidence == 1.0
}

func normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// MatchConfidence scores how well text derives from source. Zero means it does not.
//
// Verbatim text scores 1.0. A substring either way scores 0.9. Otherwise the rewording may not
// introduce a number absent from the source, must share a number when the source has one, and
// must keep at least half of the source's significant words.
func MatchConfidence(text, source string) float64 {
	t, s := normalize(text), normalize(source)
	if t == "" || s == "" {
		return 0
	}
	if t == s {
		return 1.0
	}

	textNumbers := textutil.Numbers(text)
	sourceNumbers := textutil.NumberSet([]string{source})
	for _, n := range textNumbers {
		if !sourceNumbers[n] {
			return 0
		}
	}
	if len(sourceNumbers) > 0 && len(textNumbers) == 0 {
		return 0
	}

	if strings.Contains(s, t) || strings.Contains(t, s) {
		return substringConfidence
	}

	sourceWords := textutil.SignificantWords(source)
	if len(sourceWords) == 0 {
		return 0
	}
	overlap := float64(textutil.SharedWords(text, source)) / float64(len(sourceWords))
	if overlap < minWordOverlap {
		return 0
	}
	confidence := rewordBaseConfidence + 0.4*overlap
	if confidence > rewordMaxConfidence {
		confidence = rewordMaxConfidence
	}
	return confidence
}

// MatchSource finds the pool bullet that text most plausibly derives from
func MatchSource(text string, pool []types.PoolBullet) (Match, bool) {
	best := Match{Position: -1}
	for i, bullet := range pool {
		confidence := MatchConfidence(text, bullet.Text)
		if confidence > best.Confidence {
			best = Match{Source: bullet, Position: i, Confidence: confidence}
			if confidence == 1.0 {
				break
			}
		}
	}
	return best, best.Position >= 0
}

// NewSource builds the provenance record of a selected bullet
func NewSource(text string, scored ScoredBullet, confidence float64) types.AchievementSource {
	return types.AchievementSource{
		BulletText:      text,
		SourceBullet:    scored.Bullet.Text,
		SourceRoleID:    scored.Bullet.RoleID,
		SourceRoleTitle: scored.Bullet.RoleTitle,
		SourceCompany:   scored.Bullet.Company,
		MatchConfidence: confidence,
		Tailored:        text != scored.Bullet.Text,
		Score:           scored.Breakdown,
	}
}
