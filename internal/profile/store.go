// Package profile stores the candidate profile the dashboard's settings page
// edits: personal info, search preferences and the stock answers used to
// pre-fill application forms. The service is single-user, so the profile is
// one row.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PersonalInfo identifies the candidate on application forms.
type PersonalInfo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	LinkedInURL string `json:"linkedinUrl"`
	GitHubURL   string `json:"githubUrl"`
}

// SearchPreferences seed new searches and filter their results.
type SearchPreferences struct {
	DefaultKeywords    []string `json:"defaultKeywords"`
	DefaultLocation    string   `json:"defaultLocation"`
	RemotePreference   string   `json:"remotePreference"`
	SalaryMin          int      `json:"salaryMin"`
	ExcludedCompanies  []string `json:"excludedCompanies"`
	PreferredCompanies []string `json:"preferredCompanies"`
}

// CommonAnswers hold the candidate's stock answers to screening questions.
type CommonAnswers struct {
	WillingToRelocate       string `json:"willingToRelocate"`
	WorkAuthorization       string `json:"workAuthorization"`
	VisaSponsorshipRequired string `json:"visaSponsorshipRequired"`
	SalaryExpectation       string `json:"salaryExpectation"`
}

// Profile is the full candidate profile document.
type Profile struct {
	PersonalInfo      PersonalInfo      `json:"personalInfo"`
	SearchPreferences SearchPreferences `json:"searchPreferences"`
	CommonAnswers     CommonAnswers     `json:"commonAnswers"`
}

// DB is the subset of pgxpool.Pool the store needs. Satisfied by
// *pgxpool.Pool and by test doubles.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DB = (*pgxpool.Pool)(nil)

// Store reads and writes the single profile row.
type Store struct {
	db DB
}

// NewStore returns a configured Store.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// Default returns an empty profile with the list fields present, so the
// settings page always receives arrays rather than nulls.
func Default() *Profile {
	return &Profile{
		SearchPreferences: SearchPreferences{
			DefaultKeywords:    []string{},
			ExcludedCompanies:  []string{},
			PreferredCompanies: []string{},
		},
	}
}

// Get returns the stored profile, or a default one before the first save.
func (s *Store) Get(ctx context.Context) (*Profile, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, `SELECT data FROM profile WHERE id = 1`).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Default(), nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	p := Default()
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// Save replaces the whole profile document.
func (s *Store) Save(ctx context.Context, p *Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO profile (id, data) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		raw,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// UpdatePersonalInfo replaces one section, leaving the rest intact.
func (s *Store) UpdatePersonalInfo(ctx context.Context, info PersonalInfo) (*Profile, error) {
	p, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	p.PersonalInfo = info
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateSearchPreferences replaces one section, leaving the rest intact.
func (s *Store) UpdateSearchPreferences(ctx context.Context, prefs SearchPreferences) (*Profile, error) {
	p, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	p.SearchPreferences = prefs
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateCommonAnswers replaces one section, leaving the rest intact.
func (s *Store) UpdateCommonAnswers(ctx context.Context, answers CommonAnswers) (*Profile, error) {
	p, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	p.CommonAnswers = answers
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
