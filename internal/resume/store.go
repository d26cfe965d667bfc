// Package resume manages resume metadata. The files themselves live outside
// this service; only name, path and skills are tracked here.
package resume

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a resume id matches no row.
var ErrNotFound = errors.New("resume not found")

// Resume is one stored resume's metadata.
type Resume struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FilePath  string    `json:"filePath"`
	Skills    *string   `json:"skills"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store wraps reads and writes on the resumes table.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a configured Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// List returns all resumes, default first, then newest first.
func (s *Store) List(ctx context.Context) ([]Resume, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, file_path, skills, is_default, created_at
		 FROM resumes
		 ORDER BY is_default DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	resumes := make([]Resume, 0)
	for rows.Next() {
		var r Resume
		if err := rows.Scan(&r.ID, &r.Name, &r.FilePath, &r.Skills, &r.IsDefault, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	return resumes, rows.Err()
}

// Create stores a new resume. The first resume ever created becomes the
// default automatically.
func (s *Store) Create(ctx context.Context, id, name, filePath string, skills *string) (*Resume, error) {
	var r Resume
	err := s.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, name, file_path, skills, is_default, created_at)
		 VALUES ($1, $2, $3, $4,
		         NOT EXISTS (SELECT 1 FROM resumes), NOW())
		 RETURNING id, name, file_path, skills, is_default, created_at`,
		id, name, filePath, skills,
	).Scan(&r.ID, &r.Name, &r.FilePath, &r.Skills, &r.IsDefault, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create resume: %w", err)
	}
	return &r, nil
}

// SetDefault marks one resume as the default, clearing the flag everywhere
// else in the same transaction.
func (s *Store) SetDefault(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE resumes SET is_default = false WHERE is_default`); err != nil {
		return fmt.Errorf("clear default: %w", err)
	}

	tag, err := tx.Exec(ctx, `UPDATE resumes SET is_default = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("set default: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// Get returns one resume by id.
func (s *Store) Get(ctx context.Context, id string) (*Resume, error) {
	var r Resume
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, file_path, skills, is_default, created_at
		 FROM resumes WHERE id = $1`, id,
	).Scan(&r.ID, &r.Name, &r.FilePath, &r.Skills, &r.IsDefault, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get resume: %w", err)
	}
	return &r, nil
}

// Delete removes a resume by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
