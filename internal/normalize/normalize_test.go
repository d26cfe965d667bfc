package normalize_test

import (
	"strconv"
	"testing"

	"jobdeck/internal/model"
	"jobdeck/internal/normalize"
)

// ── ParseTitleCompany ──────────────────────────────────────────────────────

func TestParseTitleCompany(t *testing.T) {
	cases := []struct {
		name        string
		raw         string
		wantTitle   string
		wantCompany string
	}{
		{"at separator", "Senior Engineer at Acme Corp", "Senior Engineer", "Acme Corp"},
		{"dash separator", "Data Analyst - Initech", "Data Analyst", "Initech"},
		{"at wins over dash", "Engineer - Platform at Acme", "Engineer - Platform", "Acme"},
		{"first at wins", "Engineer at Acme at Berlin", "Engineer", "Acme at Berlin"},
		{"no separator", "Backend Developer", "Backend Developer", "Unknown"},
		{"surrounding whitespace", "  DevOps Engineer at  Globex  ", "DevOps Engineer", "Globex"},
		{"empty input", "", "", "Unknown"},
		{"hyphen without spaces is no separator", "Front-End Developer", "Front-End Developer", "Unknown"},
	}

	for _, c := range cases {
		title, company := normalize.ParseTitleCompany(c.raw)
		if title != c.wantTitle || company != c.wantCompany {
			t.Errorf("%s: ParseTitleCompany(%q) = (%q, %q), want (%q, %q)",
				c.name, c.raw, title, company, c.wantTitle, c.wantCompany)
		}
	}
}

// ── ParseSalaryRange ───────────────────────────────────────────────────────

func TestParseSalaryRange(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		min  *int
		max  *int
	}{
		{"annual range", "$120,000 - $150,000", intp(120000), intp(150000)},
		{"hourly single", "$45/hr", intp(93600), nil},
		{"hourly range", "$30 - $40 per hour", intp(62400), intp(83200)},
		{"single annual", "$95,000", intp(95000), nil},
		{"empty input", "", nil, nil},
		{"no numbers", "competitive salary", nil, nil},
		{"extra numbers keep first two", "$80,000 - $100,000 (up to $120,000 with bonus)", intp(80000), intp(100000)},
		{"inverted text is not reordered", "up to $150,000 from $120,000", intp(150000), intp(120000)},
	}

	for _, c := range cases {
		min, max := normalize.ParseSalaryRange(c.raw)
		if !eqIntp(min, c.min) || !eqIntp(max, c.max) {
			t.Errorf("%s: ParseSalaryRange(%q) = (%s, %s), want (%s, %s)",
				c.name, c.raw, fmtIntp(min), fmtIntp(max), fmtIntp(c.min), fmtIntp(c.max))
		}
	}
}

// ── InferLocationType ──────────────────────────────────────────────────────

func TestInferLocationType(t *testing.T) {
	cases := []struct {
		text string
		want model.LocationType
	}{
		{"Fully Remote position", model.LocationRemote},
		{"Remote (Hybrid eligible)", model.LocationRemote}, // remote outranks hybrid
		{"Hybrid, 2 days in office", model.LocationHybrid},
		{"On-site in Austin, TX", model.LocationOnsite},
		{"onsite role", model.LocationOnsite},
		{"in-office culture", model.LocationOnsite},
		{"Software Engineer, Berlin", ""},
		{"", ""},
	}

	for _, c := range cases {
		if got := normalize.InferLocationType(c.text); got != c.want {
			t.Errorf("InferLocationType(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

// ── DetectPlatform ─────────────────────────────────────────────────────────

func TestDetectPlatform(t *testing.T) {
	cases := []struct {
		url  string
		want model.Platform
	}{
		{"https://www.linkedin.com/jobs/view/123", model.PlatformLinkedIn},
		{"https://www.glassdoor.com/job-listing/456", model.PlatformGlassdoor},
		{"https://www.indeed.com/viewjob?jk=789", model.PlatformIndeed},
		// everything unrecognised lands on indeed
		{"https://boards.greenhouse.io/x", model.PlatformIndeed},
		{"", model.PlatformIndeed},
	}

	for _, c := range cases {
		if got := normalize.DetectPlatform(c.url); got != c.want {
			t.Errorf("DetectPlatform(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}

// ── DetectEasyApply ────────────────────────────────────────────────────────

func TestDetectEasyApply(t *testing.T) {
	cases := []struct {
		title string
		url   string
		want  bool
	}{
		{"Backend Engineer - Easy Apply", "https://indeed.com/j/1", true},
		{"Backend Engineer", "https://indeed.com/j/1?src=easy apply", true},
		{"EASY APPLY: Platform Engineer", "https://indeed.com/j/1", true},
		{"Backend Engineer", "https://indeed.com/j/1", false},
		// hyphenated variant must not match: exact substring only
		{"Backend Engineer easy-apply", "https://indeed.com/j/1", false},
	}

	for _, c := range cases {
		if got := normalize.DetectEasyApply(c.title, c.url); got != c.want {
			t.Errorf("DetectEasyApply(%q, %q) = %v, want %v", c.title, c.url, got, c.want)
		}
	}
}

// ── helpers ────────────────────────────────────────────────────────────────

func intp(n int) *int { return &n }

func eqIntp(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtIntp(p *int) string {
	if p == nil {
		return "nil"
	}
	return strconv.Itoa(*p)
}
