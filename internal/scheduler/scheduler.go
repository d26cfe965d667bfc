// Package scheduler wires up the cron job that periodically re-runs every
// active saved search and upserts the discoveries into the jobs table.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"jobdeck/internal/model"
	"jobdeck/internal/search"
	"jobdeck/internal/store"
)

// Scheduler wraps robfig/cron and manages the refresh loop.
type Scheduler struct {
	cron     *cron.Cron
	searches *store.SavedSearchStore
	search   *search.Service
	jobs     *store.JobStore
	spec     string // cron spec, e.g. "@every 6h"
	log      zerolog.Logger
}

// New creates a Scheduler that fires every intervalHours hours.
func New(searches *store.SavedSearchStore, svc *search.Service, jobs *store.JobStore, intervalHours int, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		searches: searches,
		search:   svc,
		jobs:     jobs,
		spec:     fmt.Sprintf("@every %dh", intervalHours),
		log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the job and starts the scheduler. Also runs one refresh
// immediately so the board is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runRefresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("cron started")

	go s.runRefresh(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("cron stopped")
}

// runRefresh loads all active saved searches and runs each one end to end.
// Per-search failures are logged and skipped so one bad query cannot stall
// the whole cycle.
func (s *Scheduler) runRefresh(ctx context.Context) {
	s.log.Info().Msg("refresh cycle started")

	active, err := s.searches.ListActive(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("loading saved searches failed")
		return
	}
	if len(active) == 0 {
		s.log.Info().Msg("no active saved searches")
		return
	}

	for _, sv := range active {
		platforms := parsePlatforms(sv.Platforms)
		if len(platforms) == 0 {
			s.log.Warn().Str("id", sv.ID).Msg("saved search has no valid platforms, skipping")
			continue
		}

		results, err := s.search.Search(ctx, sv.Query, search.Options{
			Platforms: platforms,
			Limit:     sv.Limit,
		})
		if err != nil {
			s.log.Warn().Err(err).Str("id", sv.ID).Str("query", sv.Query).Msg("saved search failed, continuing")
			continue
		}

		written := s.jobs.UpsertBatch(ctx, results)
		s.log.Info().
			Str("id", sv.ID).
			Str("query", sv.Query).
			Int("found", len(results)).
			Int("written", written).
			Msg("saved search refreshed")
	}

	s.log.Info().Msg("refresh cycle complete")
}

// parsePlatforms keeps the valid platform names and drops the rest.
func parsePlatforms(raw []string) []model.Platform {
	platforms := make([]model.Platform, 0, len(raw))
	for _, r := range raw {
		p, err := model.ParsePlatform(r)
		if err != nil {
			continue
		}
		platforms = append(platforms, p)
	}
	return platforms
}
