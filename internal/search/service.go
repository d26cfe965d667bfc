// Package search orchestrates the job search pipeline: one raw search call,
// normalisation of every hit, then a best-effort enrichment pass over the
// top results. The gateway sits behind an interface so the pipeline can be
// exercised without the network.
package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"jobdeck/internal/firecrawl"
	"jobdeck/internal/model"
	"jobdeck/internal/normalize"
)

const cacheTTL = 15 * time.Minute

// Gateway is the slice of the Firecrawl client the pipeline needs.
type Gateway interface {
	Search(ctx context.Context, query string, limit int) ([]firecrawl.SearchResult, error)
	Extract(ctx context.Context, urls []string) ([]*firecrawl.JobDetail, error)
}

// ValidationError rejects a search before any network call is made.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// Options narrow a search to specific platforms and cap the result count.
type Options struct {
	Platforms []model.Platform
	Limit     int
}

// Service runs searches. It is stateless apart from the optional Redis
// result cache, so concurrent searches need no coordination.
type Service struct {
	gw  Gateway
	rdb *redis.Client // nil disables caching
	log zerolog.Logger
}

// NewService constructs a Service. Pass a nil Redis client to disable the
// result cache.
func NewService(gw Gateway, rdb *redis.Client, log zerolog.Logger) *Service {
	return &Service{gw: gw, rdb: rdb, log: log.With().Str("component", "search").Logger()}
}

// Search runs the full pipeline and returns normalised postings in discovery
// order: the enriched top results first, then the unenriched remainder.
//
// A raw search failure propagates to the caller with no partial results. An
// enrichment failure never does: the pipeline logs it and returns the
// unenriched postings instead.
func (s *Service) Search(ctx context.Context, query string, opts Options) ([]model.JobPosting, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Msg: "query must not be empty"}
	}
	if len(opts.Platforms) == 0 {
		return nil, &ValidationError{Msg: "at least one platform is required"}
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}

	key := cacheKey(query, opts)
	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	hits, err := s.gw.Search(ctx, buildQuery(query, opts.Platforms), opts.Limit)
	if err != nil {
		return nil, err
	}

	results := make([]model.JobPosting, 0, len(hits))
	for _, hit := range hits {
		results = append(results, fromHit(hit))
	}

	s.enrich(ctx, results)
	s.cacheSet(ctx, key, results)
	return results, nil
}

// buildQuery ORs one site-restriction fragment per requested platform onto
// the free-text query.
func buildQuery(query string, platforms []model.Platform) string {
	filters := make([]string, 0, len(platforms))
	for _, p := range platforms {
		switch p {
		case model.PlatformIndeed:
			filters = append(filters, "site:indeed.com")
		case model.PlatformGlassdoor:
			filters = append(filters, "site:glassdoor.com")
		case model.PlatformLinkedIn:
			filters = append(filters, "site:linkedin.com/jobs")
		}
	}
	return fmt.Sprintf("%s (%s)", query, strings.Join(filters, " OR "))
}

// fromHit normalises one raw search hit into a posting. Location and salary
// stay absent until enrichment fills them in.
func fromHit(hit firecrawl.SearchResult) model.JobPosting {
	title, company := normalize.ParseTitleCompany(hit.Title)

	locationText := hit.Description
	if locationText == "" {
		locationText = hit.Title
	}

	p := model.JobPosting{
		ID:           uuid.NewString(),
		Platform:     normalize.DetectPlatform(hit.URL),
		Title:        title,
		Company:      company,
		LocationType: normalize.InferLocationType(locationText),
		URL:          hit.URL,
		EasyApply:    normalize.DetectEasyApply(hit.Title, hit.URL),
	}
	if hit.Description != "" {
		desc := hit.Description
		p.Description = &desc
	}
	return p
}

// enrich overlays extracted details onto the top postings in place.
// Extraction failure is logged and swallowed: callers always get the full
// result set, enriched or not.
func (s *Service) enrich(ctx context.Context, results []model.JobPosting) {
	if len(results) == 0 {
		return
	}

	top := len(results)
	if top > firecrawl.ExtractLimit {
		top = firecrawl.ExtractLimit
	}
	urls := make([]string, top)
	for i := 0; i < top; i++ {
		urls[i] = results[i].URL
	}

	details, err := s.gw.Extract(ctx, urls)
	if err != nil {
		s.log.Warn().Err(err).Msg("enrichment failed, returning raw results")
		return
	}

	for i, d := range details {
		if d == nil || i >= top {
			continue
		}
		applyDetail(&results[i], d)
	}
}

// applyDetail overwrites only the fields the extractor actually filled in.
// Salary text replaces both bounds at once: a detail salary wins over
// anything previously derived.
func applyDetail(p *model.JobPosting, d *firecrawl.JobDetail) {
	if d.Title != "" {
		p.Title = d.Title
	}
	if d.Company != "" {
		p.Company = d.Company
	}
	if d.Location != "" {
		loc := d.Location
		p.Location = &loc
	}
	if d.LocationType != "" {
		// Replace with the parsed value even when it parses to absence:
		// the extractor's answer supersedes the keyword guess.
		p.LocationType = normalize.InferLocationType(d.LocationType)
	}
	if d.Salary != "" {
		p.SalaryMin, p.SalaryMax = normalize.ParseSalaryRange(d.Salary)
	}
	if d.Description != "" {
		desc := d.Description
		p.Description = &desc
	}
}

// ── Result cache ───────────────────────────────────────────────────────────

func cacheKey(query string, opts Options) string {
	parts := make([]string, 0, len(opts.Platforms)+2)
	parts = append(parts, query)
	for _, p := range opts.Platforms {
		parts = append(parts, string(p))
	}
	parts = append(parts, fmt.Sprintf("%d", opts.Limit))
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return "search:" + hex.EncodeToString(sum[:])
}

func (s *Service) cacheGet(ctx context.Context, key string) ([]model.JobPosting, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var results []model.JobPosting
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, false
	}
	s.log.Debug().Str("key", key).Msg("cache hit")
	return results, true
}

func (s *Service) cacheSet(ctx context.Context, key string, results []model.JobPosting) {
	if s.rdb == nil || len(results) == 0 {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("cache write failed")
	}
}
