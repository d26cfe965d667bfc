// Package model defines the shared data structures for the jobdeck backend.
package model

import (
	"fmt"
	"time"
)

// Platform identifies the job board a posting was discovered on.
type Platform string

const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformIndeed    Platform = "indeed"
	PlatformGlassdoor Platform = "glassdoor"
)

// ParsePlatform converts a raw string to a Platform, returning an error for
// unknown values.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	switch p {
	case PlatformLinkedIn, PlatformIndeed, PlatformGlassdoor:
		return p, nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// LocationType classifies where the work happens. The zero value means the
// posting did not say.
type LocationType string

const (
	LocationRemote LocationType = "remote"
	LocationHybrid LocationType = "hybrid"
	LocationOnsite LocationType = "onsite"
)

// JobPosting is a normalised posting produced by the search pipeline.
// The URL is the natural key: re-discovering the same URL updates the stored
// row instead of creating a duplicate.
type JobPosting struct {
	ID           string       `json:"id"`
	Platform     Platform     `json:"platform"`
	Title        string       `json:"title"`
	Company      string       `json:"company"`
	Location     *string      `json:"location"`
	LocationType LocationType `json:"locationType,omitempty"`
	SalaryMin    *int         `json:"salaryMin"`
	SalaryMax    *int         `json:"salaryMax"`
	URL          string       `json:"url"`
	Description  *string      `json:"description"`
	EasyApply    bool         `json:"easyApply"`
	MatchScore   *float64     `json:"matchScore"`
}

// StoredJob is a JobPosting that has been persisted, carrying the timestamp
// of its first discovery.
type StoredJob struct {
	JobPosting
	DiscoveredAt time.Time `json:"discoveredAt"`
}

// SavedSearch mirrors a saved_searches row driving the background refresh.
type SavedSearch struct {
	ID        string   `json:"id"`
	Query     string   `json:"query"`
	Platforms []string `json:"platforms"`
	Limit     int      `json:"limit"`
	IsActive  bool     `json:"isActive"`
}
