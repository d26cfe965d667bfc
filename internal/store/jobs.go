// Package store persists job postings in PostgreSQL.
//
// The url column is the natural key: upserts resolve conflicts with
// last-write-wins on every mutable field, while id and discovered_at survive
// from the first discovery so application links and history stay intact.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"jobdeck/internal/model"
)

// ErrNotFound is returned when a job id matches no stored row.
var ErrNotFound = errors.New("job not found")

// DB is the subset of pgxpool.Pool the stores use. Satisfied by *pgxpool.Pool
// and by test doubles.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DB = (*pgxpool.Pool)(nil)

// JobStore wraps all reads and writes on the jobs table.
type JobStore struct {
	pool DB
	log  zerolog.Logger
}

// NewJobStore returns a configured JobStore.
func NewJobStore(pool DB, log zerolog.Logger) *JobStore {
	return &JobStore{pool: pool, log: log.With().Str("component", "store").Logger()}
}

const upsertJobSQL = `
	INSERT INTO jobs (id, platform, title, company, location, location_type,
	                  salary_min, salary_max, url, description, easy_apply,
	                  match_score, discovered_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $12, NOW(), NOW())
	ON CONFLICT (url) DO UPDATE SET
		platform      = EXCLUDED.platform,
		title         = EXCLUDED.title,
		company       = EXCLUDED.company,
		location      = EXCLUDED.location,
		location_type = EXCLUDED.location_type,
		salary_min    = EXCLUDED.salary_min,
		salary_max    = EXCLUDED.salary_max,
		description   = EXCLUDED.description,
		easy_apply    = EXCLUDED.easy_apply,
		match_score   = COALESCE(EXCLUDED.match_score, jobs.match_score),
		updated_at    = NOW()`

// UpsertBatch writes postings one by one, keyed on url, and returns how many
// rows were actually written. The batch is deliberately not atomic: a bad
// record is logged and skipped so the rest still lands.
func (s *JobStore) UpsertBatch(ctx context.Context, postings []model.JobPosting) int {
	written := 0
	for _, p := range postings {
		if p.URL == "" {
			s.log.Warn().Str("title", p.Title).Msg("skipping posting without url")
			continue
		}
		_, err := s.pool.Exec(ctx, upsertJobSQL,
			p.ID, p.Platform, p.Title, p.Company, p.Location, string(p.LocationType),
			p.SalaryMin, p.SalaryMax, p.URL, p.Description, p.EasyApply, p.MatchScore,
		)
		if err != nil {
			s.log.Warn().Err(err).Str("url", p.URL).Msg("upsert failed")
			continue
		}
		written++
	}
	return written
}

// Filters narrow a job listing. Zero values mean "no filter".
type Filters struct {
	Platform     string
	LocationType string
	Search       string // matched against title and company
}

const selectJobSQL = `
	SELECT id, platform, title, company, location, COALESCE(location_type, ''),
	       salary_min, salary_max, url, description, easy_apply, match_score,
	       discovered_at
	FROM jobs`

// List returns stored jobs, newest discoveries first.
func (s *JobStore) List(ctx context.Context, f Filters) ([]model.StoredJob, error) {
	query := selectJobSQL
	args := []any{}
	where := []string{}

	if f.Platform != "" {
		args = append(args, f.Platform)
		where = append(where, fmt.Sprintf("platform = $%d", len(args)))
	}
	if f.LocationType != "" {
		args = append(args, f.LocationType)
		where = append(where, fmt.Sprintf("location_type = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR company ILIKE $%d)", len(args), len(args)))
	}

	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY discovered_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.StoredJob, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// Get returns one job by id.
func (s *JobStore) Get(ctx context.Context, id string) (*model.StoredJob, error) {
	row := s.pool.QueryRow(ctx, selectJobSQL+" WHERE id = $1", id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &j, nil
}

// Delete removes a job by id.
func (s *JobStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetMatchScore stores an externally computed match score on a job.
func (s *JobStore) SetMatchScore(ctx context.Context, id string, score float64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET match_score = $1, updated_at = NOW() WHERE id = $2`,
		score, id,
	)
	if err != nil {
		return fmt.Errorf("set match score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (model.StoredJob, error) {
	var j model.StoredJob
	var locationType string
	err := row.Scan(
		&j.ID, &j.Platform, &j.Title, &j.Company, &j.Location, &locationType,
		&j.SalaryMin, &j.SalaryMax, &j.URL, &j.Description, &j.EasyApply,
		&j.MatchScore, &j.DiscoveredAt,
	)
	j.LocationType = model.LocationType(locationType)
	return j, err
}
