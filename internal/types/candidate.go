// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CandidateMetadata holds the non-experience header inputs.
// It decodes from both the flat shape and the legacy shape nesting name and contact under "candidate".
type CandidateMetadata struct {
	Name           string      `json:"name" validate:"required"`
	Email          string      `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string      `json:"phone,omitempty"`
	LinkedIn       string      `json:"linkedin,omitempty"`
	Location       string      `json:"location,omitempty"`
	Education      []Education `json:"education,omitempty"`
	Certifications []string    `json:"certifications,omitempty"`
	Languages      []string    `json:"languages,omitempty"`
}

// Education is one education entry. It decodes from an object or a plain string.
type Education struct {
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// String renders the entry as a single line
func (e Education) String() string {
	title := e.Degree
	if e.Field != "" {
		if title != "" {
			title += " in " + e.Field
		} else {
			title = e.Field
		}
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{title, e.Institution, e.Year} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// UnmarshalJSON accepts either a string or an object
func (e *Education) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*e = Education{Degree: strings.TrimSpace(text)}
		return nil
	}
	type plain Education
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("education entry must be a string or object: %w", err)
	}
	*e = Education(obj)
	return nil
}

type legacyContact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	Location string `json:"location"`
}

type legacyCandidate struct {
	Name           string        `json:"name"`
	Contact        legacyContact `json:"contact"`
	Education      []Education   `json:"education"`
	Certifications []string      `json:"certifications"`
	Languages      []string      `json:"languages"`
}

// UnmarshalJSON decodes the flat shape, then overlays any legacy nested fields that are set
func (c *CandidateMetadata) UnmarshalJSON(data []byte) error {
	type plain CandidateMetadata
	var flat plain
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	var wrapper struct {
		Candidate *legacyCandidate `json:"candidate"`
		Contact   *legacyContact   `json:"contact"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}

	result := CandidateMetadata(flat)
	if wrapper.Contact != nil {
		result.applyContact(*wrapper.Contact)
	}
	if legacy := wrapper.Candidate; legacy != nil {
		if result.Name == "" {
			result.Name = legacy.Name
		}
		result.applyContact(legacy.Contact)
		if len(result.Education) == 0 {
			result.Education = legacy.Education
		}
		if len(result.Certifications) == 0 {
			result.Certifications = legacy.Certifications
		}
		if len(result.Languages) == 0 {
			result.Languages = legacy.Languages
		}
	}

	*c = result
	return nil
}

func (c *CandidateMetadata) applyContact(contact legacyContact) {
	if c.Email == "" {
		c.Email = contact.Email
	}
	if c.Phone == "" {
		c.Phone = contact.Phone
	}
	if c.LinkedIn == "" {
		c.LinkedIn = contact.LinkedIn
	}
	if c.Location == "" {
		c.Location = contact.Location
	}
}

// ContactLine joins the non-empty contact fields with a pipe separator
func (c *CandidateMetadata) ContactLine() string {
	if c == nil {
		return ""
	}
	parts := make([]string, 0, 5)
	for _, p := range []string{c.Name, c.Email, c.Phone, c.LinkedIn, c.Location} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}

// Validate validates the metadata using the validator.
func (c *CandidateMetadata) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
