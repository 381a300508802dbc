// Package profile provides the header profile generator: the algorithmic headline, the
// LLM-written value proposition with its mechanical checks, and the role fallback path.
package profile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// defaultYearsExperience is used when no role period carries a year
	defaultYearsExperience = 10
	// minYearsExperience floors the computed span
	minYearsExperience = 5
)

var (
	yearPattern     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	presentPattern  = regexp.MustCompile(`(?i)\b(present|current|now|today)\b`)
	teamSizePattern = regexp.MustCompile(`(?i)\bteams? of (\d+)`)
)

// Headline renders "{title} | {years}+ Years Technology Leadership" from the exact JD title
func Headline(title string, years int) string {
	return fmt.Sprintf("%s | %d+ Years Technology Leadership", strings.TrimSpace(title), years)
}

// YearsExperience is the span between the earliest and latest year named in the role periods,
// floored at 5. "Present" counts as currentYear. Returns 10 when no year is found.
func YearsExperience(periods []string, currentYear int) int {
	earliest, latest := 0, 0
	record := func(year int) {
		if earliest == 0 || year < earliest {
			earliest = year
		}
		if year > latest {
			latest = year
		}
	}

	for _, period := range periods {
		for _, match := range yearPattern.FindAllString(period, -1) {
			year, err := strconv.Atoi(match)
			if err == nil {
				record(year)
			}
		}
		if presentPattern.MatchString(period) {
			record(currentYear)
		}
	}

	if earliest == 0 {
		return defaultYearsExperience
	}
	if span := latest - earliest; span > minYearsExperience {
		return span
	}
	return minYearsExperience
}

// TeamSize returns the largest "team of N" figure in texts
func TeamSize(texts []string) (int, bool) {
	largest := 0
	for _, text := range texts {
		for _, match := range teamSizePattern.FindAllStringSubmatch(text, -1) {
			if n, err := strconv.Atoi(match[1]); err == nil && n > largest {
				largest = n
			}
		}
	}
	return largest, largest > 0
}
