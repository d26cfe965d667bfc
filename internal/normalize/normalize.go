// Package normalize converts raw search-result text into structured posting
// fields. Every function is pure and synchronous; callers decide what to do
// with fields that stay absent.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"jobdeck/internal/model"
)

// CompanyUnknown is the sentinel company used when the raw text carries no
// recognisable separator.
const CompanyUnknown = "Unknown"

// hoursPerYear annualises hourly rates: 40 hours × 52 weeks.
const hoursPerYear = 2080

var digitGroups = regexp.MustCompile(`\d+[,\d]*`)

// ParseTitleCompany splits a raw result title into job title and company.
// The first " at " occurrence wins; failing that, the first " - "; failing
// both, the whole trimmed input becomes the title and the company falls back
// to CompanyUnknown.
func ParseTitleCompany(raw string) (title, company string) {
	if before, after, ok := strings.Cut(raw, " at "); ok {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	if before, after, ok := strings.Cut(raw, " - "); ok {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	return strings.TrimSpace(raw), CompanyUnknown
}

// ParseSalaryRange extracts an annualised salary range from free text.
// Digit groups are taken in order of appearance: the first becomes min, the
// second (if any) max. When the text mentions an hourly rate ("hour" or
// "/hr", case-insensitive) every figure is multiplied by 2080.
//
// The text order is trusted as-is: a string listing the larger figure first
// yields min > max. Known limitation, kept deliberately so stored values can
// be traced back to the source text.
func ParseSalaryRange(raw string) (min, max *int) {
	if raw == "" {
		return nil, nil
	}

	groups := digitGroups.FindAllString(raw, -1)
	if len(groups) == 0 {
		return nil, nil
	}

	multiplier := 1
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "hour") || strings.Contains(lower, "/hr") {
		multiplier = hoursPerYear
	}

	values := make([]int, 0, len(groups))
	for _, g := range groups {
		n, err := strconv.Atoi(strings.ReplaceAll(g, ",", ""))
		if err != nil {
			continue
		}
		values = append(values, n*multiplier)
	}

	switch {
	case len(values) >= 2:
		return &values[0], &values[1]
	case len(values) == 1:
		return &values[0], nil
	}
	return nil, nil
}

// InferLocationType classifies working arrangements by keyword, checked in
// priority order: remote beats hybrid beats onsite. Returns the zero value
// when nothing matches.
func InferLocationType(text string) model.LocationType {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "remote"):
		return model.LocationRemote
	case strings.Contains(lower, "hybrid"):
		return model.LocationHybrid
	case strings.Contains(lower, "on-site"), strings.Contains(lower, "onsite"), strings.Contains(lower, "in-office"):
		return model.LocationOnsite
	}
	return ""
}

// DetectPlatform attributes a posting to a job board by its URL host.
// Anything that is neither linkedin.com nor glassdoor.com is classified as
// indeed, so indeed doubles as the catch-all for unrecognised domains.
func DetectPlatform(url string) model.Platform {
	switch {
	case strings.Contains(url, "linkedin.com"):
		return model.PlatformLinkedIn
	case strings.Contains(url, "glassdoor.com"):
		return model.PlatformGlassdoor
	}
	return model.PlatformIndeed
}

// DetectEasyApply reports whether either the title text or the source URL
// advertises a simplified application flow.
func DetectEasyApply(titleText, sourceURL string) bool {
	const marker = "easy apply"
	return strings.Contains(strings.ToLower(titleText), marker) ||
		strings.Contains(strings.ToLower(sourceURL), marker)
}
