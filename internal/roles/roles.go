// Package roles provides the closed set of target-role categories and the per-category
// profile (taxonomy, fallback content, prompt guidance) that drives header generation.
package roles

import (
	"fmt"
	"strings"
)

// Category is one of the eight supported target-role categories
type Category string

// Role categories
const (
	EngineeringManager     Category = "engineering_manager"
	StaffPrincipalEngineer Category = "staff_principal_engineer"
	DirectorOfEngineering  Category = "director_of_engineering"
	HeadOfEngineering      Category = "head_of_engineering"
	VPEngineering          Category = "vp_engineering"
	CTO                    Category = "cto"
	TechLead               Category = "tech_lead"
	SeniorEngineer         Category = "senior_engineer"
)

// All returns every category in a fixed order
func All() []Category {
	return []Category{
		EngineeringManager,
		StaffPrincipalEngineer,
		DirectorOfEngineering,
		HeadOfEngineering,
		VPEngineering,
		CTO,
		TechLead,
		SeniorEngineer,
	}
}

// UnknownCategoryError is returned when a string does not name a known category
type UnknownCategoryError struct {
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown role category %q", e.Value)
}

// Parse converts a role category string into a Category.
// Matching ignores case, surrounding whitespace, and treats spaces and hyphens as underscores.
func Parse(value string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	for _, c := range All() {
		if string(c) == normalized {
			return c, nil
		}
	}
	return "", &UnknownCategoryError{Value: value}
}

// IsExecutive reports whether the category is Director-and-above
func (c Category) IsExecutive() bool {
	switch c {
	case DirectorOfEngineering, HeadOfEngineering, VPEngineering, CTO:
		return true
	default:
		return false
	}
}

// SummaryHeading returns the summary heading shown above the profile
func (c Category) SummaryHeading() string {
	if c.IsExecutive() {
		return "EXECUTIVE SUMMARY"
	}
	return "PROFESSIONAL SUMMARY"
}

func (c Category) String() string {
	return string(c)
}
