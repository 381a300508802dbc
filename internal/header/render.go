// Package header provides the header assembler: it runs skills selection, profile generation
// and grounding for one job, and renders the assembled header as markdown.
package header

import (
	"embed"
	"strings"
	"text/template"

	"github.com/jonathan/cv-tailor/internal/roles"
	"github.com/jonathan/cv-tailor/internal/types"
)

//go:embed templates/header.md.tmpl
var templateFS embed.FS

var headerTemplate = template.Must(template.New("header.md.tmpl").Funcs(template.FuncMap{
	"md":     escapeMarkdown,
	"mdjoin": joinEscaped,
}).ParseFS(templateFS, "templates/header.md.tmpl"))

// markdownData is the flattened header handed to the template
type markdownData struct {
	Contact        string
	Heading        string
	Headline       string
	Tagline        string
	Achievements   []string
	Core           []string
	Skills         []skillLine
	Education      []string
	Certifications []string
	Languages      []string
}

type skillLine struct {
	Category string
	Names    []string
}

// RenderMarkdown renders the header in document order: contact line, summary heading,
// headline, tagline, key achievements, core competency line, skills by category,
// education, certifications and languages. The output depends only on h.
func RenderMarkdown(h *types.HeaderOutput) (string, error) {
	if h == nil {
		return "", &RenderError{Message: "header is nil"}
	}

	var sb strings.Builder
	if err := headerTemplate.Execute(&sb, buildMarkdownData(h)); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	out := sb.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

func buildMarkdownData(h *types.HeaderOutput) markdownData {
	data := markdownData{
		Contact:        h.Candidate.ContactLine(),
		Heading:        summaryHeading(h),
		Headline:       strings.TrimSpace(h.Profile.Headline),
		Tagline:        strings.TrimSpace(h.Profile.Tagline),
		Achievements:   h.Profile.KeyAchievements,
		Core:           h.Profile.CoreCompetencies,
		Certifications: h.Certifications,
		Languages:      h.Languages,
	}
	for _, section := range h.SkillsSections {
		if len(section.Skills) == 0 {
			continue
		}
		data.Skills = append(data.Skills, skillLine{Category: section.Category, Names: section.Names()})
	}
	for _, e := range h.Education {
		if line := e.String(); line != "" {
			data.Education = append(data.Education, line)
		}
	}
	return data
}

func summaryHeading(h *types.HeaderOutput) string {
	if c, err := roles.Parse(h.RoleCategory); err == nil {
		return c.SummaryHeading()
	}
	if h.Executive {
		return "EXECUTIVE SUMMARY"
	}
	return "PROFESSIONAL SUMMARY"
}

func joinEscaped(items []string, sep string) string {
	escaped := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			escaped = append(escaped, escapeMarkdown(item))
		}
	}
	return strings.Join(escaped, sep)
}

// escapeMarkdown escapes the characters that change inline markdown formatting
// Special characters: \ ` * _ [ ]
func escapeMarkdown(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + 8)

	for _, r := range text {
		switch r {
		case '\\', '`', '*', '_', '[', ']':
			result.WriteRune('\\')
			result.WriteRune(r)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
