// Package skills provides the skills taxonomy engine: it selects role-specific competency
// sections and fills them with whitelisted skills ranked by relevance to a job description.
package skills

import (
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// skillAliases maps common skill name variants (folded) to a canonical name
var skillAliases = map[string]string{
	"golang":                "Go",
	"go lang":               "Go",
	"javascript":            "JavaScript",
	"js":                    "JavaScript",
	"typescript":            "TypeScript",
	"ts":                    "TypeScript",
	"k8s":                   "Kubernetes",
	"postgres":              "PostgreSQL",
	"psql":                  "PostgreSQL",
	"react.js":              "React",
	"reactjs":               "React",
	"node.js":               "Node.js",
	"nodejs":                "Node.js",
	"amazon web services":   "AWS",
	"google cloud":          "GCP",
	"google cloud platform": "GCP",
	"ci / cd":               "CI/CD",
	"cicd":                  "CI/CD",
	"ml":                    "Machine Learning",
	"tdd":                   "TDD",
}

// CanonicalKey returns the comparison key of a skill name after alias resolution
func CanonicalKey(name string) string {
	key := types.FoldSkill(name)
	if canonical, ok := skillAliases[key]; ok {
		return types.FoldSkill(canonical)
	}
	return key
}

// Resolver maps arbitrary skill mentions onto the whitelist's own spelling.
// A name resolves only when it, or its alias, is a whitelist entry.
type Resolver struct {
	index map[string]string
}

// NewResolver indexes a whitelist by canonical key. The first spelling for a key wins.
func NewResolver(whitelist *types.SkillWhitelist) *Resolver {
	r := &Resolver{index: make(map[string]string)}
	for _, skill := range whitelist.All() {
		key := CanonicalKey(skill)
		if _, exists := r.index[key]; !exists {
			r.index[key] = skill
		}
	}
	return r
}

// Resolve returns the whitelist spelling for name
func (r *Resolver) Resolve(name string) (string, bool) {
	if strings.TrimSpace(name) == "" {
		return "", false
	}
	skill, ok := r.index[CanonicalKey(name)]
	return skill, ok
}

// Len returns the number of distinct resolvable skills
func (r *Resolver) Len() int {
	return len(r.index)
}
