// Package roles provides the closed set of target-role categories and the per-category
// profile (taxonomy, fallback content, prompt guidance) that drives header generation.
package roles

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var taxonomyYAML []byte

// Section is one named competency bucket of a role taxonomy
type Section struct {
	Name string `yaml:"name"`
	// Priority is the editorial weight of the section in [0,1]
	Priority float64  `yaml:"priority"`
	Skills   []string `yaml:"skills"`
	Signals  []string `yaml:"signals"`
}

// Profile is everything generation needs to know about one role category
type Profile struct {
	Category    Category `yaml:"-"`
	DisplayName string   `yaml:"display_name"`
	// Executive mirrors Category.IsExecutive and is checked against it at load time
	Executive            bool      `yaml:"executive"`
	FallbackTagline      string    `yaml:"fallback_tagline"`
	FallbackAchievements []string  `yaml:"fallback_achievements"`
	TaglineFormula       string    `yaml:"tagline_formula"`
	TaglineExamples      []string  `yaml:"tagline_examples"`
	EmphasisAreas        []string  `yaml:"emphasis_areas"`
	Taxonomy             []Section `yaml:"sections"`
}

type taxonomyFile struct {
	Roles map[string]*Profile `yaml:"roles"`
}

var (
	loadOnce sync.Once
	loaded   map[Category]*Profile
	errLoad  error
)

// LoadError is returned when the embedded taxonomy cannot be parsed or is incomplete
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// parseTaxonomy decodes a taxonomy document and checks that it covers every category
func parseTaxonomy(data []byte) (map[Category]*Profile, error) {
	var file taxonomyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &LoadError{Message: "failed to parse role taxonomy", Cause: err}
	}

	profiles := make(map[Category]*Profile, len(file.Roles))
	for key, p := range file.Roles {
		c, err := Parse(key)
		if err != nil {
			return nil, &LoadError{Message: "taxonomy names an unknown role", Cause: err}
		}
		if p == nil {
			return nil, &LoadError{Message: fmt.Sprintf("role %s has an empty profile", key)}
		}
		p.Category = c
		if p.Executive != c.IsExecutive() {
			return nil, &LoadError{Message: fmt.Sprintf("role %s executive flag disagrees with its category", key)}
		}
		if p.FallbackTagline == "" || len(p.FallbackAchievements) < 3 {
			return nil, &LoadError{Message: fmt.Sprintf("role %s needs a fallback tagline and at least 3 fallback achievements", key)}
		}
		for _, s := range p.Taxonomy {
			if s.Priority < 0 || s.Priority > 1 {
				return nil, &LoadError{Message: fmt.Sprintf("role %s section %q priority %.2f outside [0,1]", key, s.Name, s.Priority)}
			}
		}
		profiles[c] = p
	}

	for _, c := range All() {
		if _, ok := profiles[c]; !ok {
			return nil, &LoadError{Message: fmt.Sprintf("taxonomy is missing role %s", c)}
		}
	}
	return profiles, nil
}

func load() (map[Category]*Profile, error) {
	loadOnce.Do(func() {
		loaded, errLoad = parseTaxonomy(taxonomyYAML)
	})
	return loaded, errLoad
}

// Lookup returns the profile for a category.
// The returned profile is shared and must be treated as read-only.
func Lookup(c Category) (*Profile, error) {
	profiles, err := load()
	if err != nil {
		return nil, err
	}
	p, ok := profiles[c]
	if !ok {
		return nil, &UnknownCategoryError{Value: string(c)}
	}
	return p, nil
}

// MustLookup is Lookup for categories already known to be valid.
// It panics on failure since that indicates a broken embedded taxonomy.
func MustLookup(c Category) *Profile {
	p, err := Lookup(c)
	if err != nil {
		panic(fmt.Sprintf("role profile unavailable: %v", err))
	}
	return p
}
