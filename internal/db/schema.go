package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied on startup. Statements are idempotent so restarting the
// service against an existing database is safe.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		id            TEXT PRIMARY KEY,
		platform      TEXT NOT NULL,
		title         TEXT NOT NULL,
		company       TEXT NOT NULL,
		location      TEXT,
		location_type TEXT,
		salary_min    INTEGER,
		salary_max    INTEGER,
		url           TEXT NOT NULL UNIQUE,
		description   TEXT,
		easy_apply    BOOLEAN NOT NULL DEFAULT false,
		match_score   DOUBLE PRECISION,
		discovered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS resumes (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		file_path  TEXT NOT NULL,
		skills     TEXT,
		is_default BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id          TEXT PRIMARY KEY,
		job_id      TEXT UNIQUE REFERENCES jobs(id) ON DELETE SET NULL,
		resume_id   TEXT REFERENCES resumes(id) ON DELETE SET NULL,
		status      TEXT NOT NULL DEFAULT 'UNAPPLIED'
		            CHECK (status IN ('UNAPPLIED','APPLIED','OA','INTERVIEW','OFFER','REJECTED')),
		applied_at  TIMESTAMPTZ,
		notes       TEXT,
		history_log JSONB NOT NULL DEFAULT '[]'::jsonb,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// Single-user service: the candidate profile is one row.
	`CREATE TABLE IF NOT EXISTS profile (
		id         SMALLINT PRIMARY KEY CHECK (id = 1),
		data       JSONB NOT NULL DEFAULT '{}'::jsonb,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS saved_searches (
		id            TEXT PRIMARY KEY,
		query         TEXT NOT NULL,
		platforms     TEXT[] NOT NULL,
		result_limit  INTEGER NOT NULL DEFAULT 20,
		is_active     BOOLEAN NOT NULL DEFAULT true,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates the tables the service needs if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
