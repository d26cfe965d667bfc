package store

import (
	"context"
	"errors"
	"fmt"

	"jobdeck/internal/model"
)

// ErrSearchNotFound is returned when a saved search id matches no row.
var ErrSearchNotFound = errors.New("saved search not found")

// SavedSearchStore wraps reads and writes on the saved_searches table.
type SavedSearchStore struct {
	pool DB
}

// NewSavedSearchStore returns a configured SavedSearchStore.
func NewSavedSearchStore(pool DB) *SavedSearchStore {
	return &SavedSearchStore{pool: pool}
}

// List returns every saved search, newest first.
func (s *SavedSearchStore) List(ctx context.Context) ([]model.SavedSearch, error) {
	return s.list(ctx, `SELECT id, query, platforms, result_limit, is_active
		FROM saved_searches ORDER BY created_at DESC`)
}

// ListActive returns the saved searches the scheduler should run.
func (s *SavedSearchStore) ListActive(ctx context.Context) ([]model.SavedSearch, error) {
	return s.list(ctx, `SELECT id, query, platforms, result_limit, is_active
		FROM saved_searches WHERE is_active = true`)
}

func (s *SavedSearchStore) list(ctx context.Context, query string) ([]model.SavedSearch, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query saved_searches: %w", err)
	}
	defer rows.Close()

	searches := make([]model.SavedSearch, 0)
	for rows.Next() {
		var sv model.SavedSearch
		if err := rows.Scan(&sv.ID, &sv.Query, &sv.Platforms, &sv.Limit, &sv.IsActive); err != nil {
			return nil, fmt.Errorf("scan saved search: %w", err)
		}
		searches = append(searches, sv)
	}
	return searches, rows.Err()
}

// Create stores a new active saved search.
func (s *SavedSearchStore) Create(ctx context.Context, sv model.SavedSearch) (*model.SavedSearch, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO saved_searches (id, query, platforms, result_limit)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, query, platforms, result_limit, is_active`,
		sv.ID, sv.Query, sv.Platforms, sv.Limit,
	).Scan(&sv.ID, &sv.Query, &sv.Platforms, &sv.Limit, &sv.IsActive)
	if err != nil {
		return nil, fmt.Errorf("create saved search: %w", err)
	}
	return &sv, nil
}

// SetActive toggles whether the scheduler runs a saved search.
func (s *SavedSearchStore) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE saved_searches SET is_active = $1, updated_at = NOW() WHERE id = $2`,
		active, id,
	)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSearchNotFound
	}
	return nil
}

// Delete removes a saved search by id.
func (s *SavedSearchStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM saved_searches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete saved search: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSearchNotFound
	}
	return nil
}
