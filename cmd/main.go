// jobdeck backend
//
// Single service behind the job-application dashboard:
//   - POST /api/v1/search runs the Firecrawl search pipeline and auto-saves
//   - jobs, applications, resumes, saved searches and candidate profile CRUD
//   - cron refresh re-runs active saved searches on an interval
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"jobdeck/internal/api"
	"jobdeck/internal/config"
	"jobdeck/internal/db"
	"jobdeck/internal/firecrawl"
	"jobdeck/internal/profile"
	"jobdeck/internal/resume"
	"jobdeck/internal/scheduler"
	"jobdeck/internal/search"
	"jobdeck/internal/store"
	"jobdeck/internal/tracker"
)

func main() {
	// .env is optional: production supplies real environment variables.
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config error")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()
	logger.Info().Msg("postgres connected")

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("schema bootstrap failed")
	}

	// ── Redis ────────────────────────────────────────────────────────────────
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()
	logger.Info().Msg("redis connected")

	// ── Services ─────────────────────────────────────────────────────────────
	if cfg.FirecrawlAPIKey == "" {
		logger.Warn().Msg("FIRECRAWL_API_KEY not set, searches will fail until configured")
	}
	gateway := firecrawl.NewClient(cfg.FirecrawlAPIKey)
	searchSvc := search.NewService(gateway, rdb, logger)

	jobStore := store.NewJobStore(pool, logger)
	searchStore := store.NewSavedSearchStore(pool)
	trackerSvc := tracker.NewService(pool, rdb, logger)
	resumeStore := resume.NewStore(pool)
	profileStore := profile.NewStore(pool)

	// ── Scheduler ────────────────────────────────────────────────────────────
	sched := scheduler.New(searchStore, searchSvc, jobStore, cfg.RefreshIntervalHours, logger)
	if err := sched.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("scheduler start failed")
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	handler := api.NewHandler(searchSvc, jobStore, searchStore, trackerSvc, resumeStore, profileStore, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // searches wait on two upstream calls
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
	logger.Info().Msg("stopped")
}
