package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ─── Sentinel errors ─────────────────────────────────────────────────────────

// ErrNotFound is returned when an application id matches no row.
var ErrNotFound = errors.New("application not found")

// ErrDuplicate is returned when the job already has an application.
var ErrDuplicate = errors.New("application for this job already exists")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// ─── Types ───────────────────────────────────────────────────────────────────

// Application is one tracked job application.
type Application struct {
	ID         string          `json:"id"`
	JobID      *string         `json:"jobId"`
	ResumeID   *string         `json:"resumeId"`
	Status     string          `json:"status"`
	AppliedAt  *time.Time      `json:"appliedAt"`
	Notes      *string         `json:"notes"`
	HistoryLog json.RawMessage `json:"historyLog"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// DB is the querying subset of pgxpool.Pool the tracker uses. Satisfied by
// *pgxpool.Pool and by test doubles.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DB = (*pgxpool.Pool)(nil)

// Service encapsulates the application board's business logic. It has no
// dependency on the HTTP layer.
type Service struct {
	pool DB
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewService returns a configured Service.
func NewService(pool DB, rdb *redis.Client, log zerolog.Logger) *Service {
	return &Service{pool: pool, rdb: rdb, log: log.With().Str("component", "tracker").Logger()}
}

const selectAppCols = `id, job_id, resume_id, status, applied_at, notes,
	       history_log, created_at, updated_at`

// List returns applications, newest activity first. A non-empty statusFilter
// restricts the result to one column of the board.
func (s *Service) List(ctx context.Context, statusFilter string) ([]Application, error) {
	base := `SELECT ` + selectAppCols + ` FROM applications`

	var (
		rows pgx.Rows
		err  error
	)
	if statusFilter != "" {
		if _, perr := ParseStatus(statusFilter); perr != nil {
			return nil, &ValidationError{Msg: perr.Error()}
		}
		rows, err = s.pool.Query(ctx, base+` WHERE status = $1 ORDER BY updated_at DESC`, statusFilter)
	} else {
		rows, err = s.pool.Query(ctx, base+` ORDER BY updated_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := make([]Application, 0)
	for rows.Next() {
		var a Application
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.ResumeID, &a.Status, &a.AppliedAt,
			&a.Notes, &a.HistoryLog, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// Create opens a new application for a job at UNAPPLIED. At most one
// application may exist per job.
func (s *Service) Create(ctx context.Context, id, jobID string, resumeID *string) (*Application, error) {
	var a Application
	err := s.pool.QueryRow(ctx,
		`INSERT INTO applications (id, job_id, resume_id, status)
		 VALUES ($1, $2, $3, 'UNAPPLIED')
		 ON CONFLICT (job_id) DO NOTHING
		 RETURNING `+selectAppCols,
		id, jobID, resumeID,
	).Scan(
		&a.ID, &a.JobID, &a.ResumeID, &a.Status, &a.AppliedAt,
		&a.Notes, &a.HistoryLog, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create application: %w", err)
	}
	return &a, nil
}

// Move transitions an application to a new status, appending the move to its
// history log. entering APPLIED stamps applied_at once.
func (s *Service) Move(ctx context.Context, appID, newStatusStr string) (*Application, error) {
	newStatus, err := ParseStatus(newStatusStr)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	var currentStatusStr string
	err = s.pool.QueryRow(ctx,
		`SELECT status FROM applications WHERE id = $1`, appID,
	).Scan(&currentStatusStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load application status: %w", err)
	}

	currentStatus, _ := ParseStatus(currentStatusStr)
	if !IsTransitionAllowed(currentStatus, newStatus) {
		return nil, &ValidationError{
			Msg: fmt.Sprintf("transition %s -> %s is not allowed", currentStatus, newStatus),
		}
	}

	historyEntry, _ := json.Marshal(map[string]string{
		"from": string(currentStatus),
		"to":   string(newStatus),
		"at":   time.Now().UTC().Format(time.RFC3339),
	})

	var a Application
	err = s.pool.QueryRow(ctx,
		`UPDATE applications
		 SET status      = $1,
		     history_log = history_log || $2::jsonb,
		     applied_at  = CASE WHEN $3 AND applied_at IS NULL THEN NOW() ELSE applied_at END,
		     updated_at  = NOW()
		 WHERE id = $4
		 RETURNING `+selectAppCols,
		string(newStatus),
		fmt.Sprintf("[%s]", historyEntry),
		MarksApplied(newStatus),
		appID,
	).Scan(
		&a.ID, &a.JobID, &a.ResumeID, &a.Status, &a.AppliedAt,
		&a.Notes, &a.HistoryLog, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		// The row can disappear between the status read and the update.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("move application: %w", err)
	}

	s.publish(ctx, map[string]string{
		"type":          "EVENT_CARD_MOVED",
		"applicationId": appID,
		"from":          string(currentStatus),
		"to":            string(newStatus),
	})

	return &a, nil
}

// AddNote sets or replaces the free-text note on an application.
func (s *Service) AddNote(ctx context.Context, appID, note string) (*Application, error) {
	var a Application
	err := s.pool.QueryRow(ctx,
		`UPDATE applications SET notes = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING `+selectAppCols,
		note, appID,
	).Scan(
		&a.ID, &a.JobID, &a.ResumeID, &a.Status, &a.AppliedAt,
		&a.Notes, &a.HistoryLog, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("add note: %w", err)
	}
	return &a, nil
}

// publish emits a board event for SSE forwarding. Failures are non-fatal.
func (s *Service) publish(ctx context.Context, event map[string]string) {
	if s.rdb == nil {
		return
	}
	raw, _ := json.Marshal(event)
	if err := s.rdb.Publish(ctx, event["type"], raw).Err(); err != nil {
		s.log.Warn().Err(err).Str("type", event["type"]).Msg("event publish failed")
	}
}
