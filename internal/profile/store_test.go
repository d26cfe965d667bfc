package profile_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"

	"jobdeck/internal/profile"
)

var profileUpsert = regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE")

func newMockedStore(t *testing.T) (*profile.Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mock.Close)
	return profile.NewStore(mock), mock
}

func TestGetBeforeFirstSaveReturnsDefaults(t *testing.T) {
	s, mock := newMockedStore(t)

	mock.ExpectQuery("SELECT data FROM profile").
		WillReturnError(pgx.ErrNoRows)

	p, err := s.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.PersonalInfo.Email != "" {
		t.Errorf("default email = %q, want empty", p.PersonalInfo.Email)
	}
	// The settings page expects arrays, never null.
	if p.SearchPreferences.DefaultKeywords == nil {
		t.Error("DefaultKeywords is nil")
	}
	if p.SearchPreferences.ExcludedCompanies == nil {
		t.Error("ExcludedCompanies is nil")
	}
}

func TestGetDecodesStoredDocument(t *testing.T) {
	s, mock := newMockedStore(t)

	raw := []byte(`{
		"personalInfo": {"firstName": "Ada", "email": "ada@example.com"},
		"searchPreferences": {"defaultKeywords": ["golang"], "salaryMin": 120000},
		"commonAnswers": {"workAuthorization": "yes"}
	}`)
	mock.ExpectQuery("SELECT data FROM profile").
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow(raw))

	p, err := s.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.PersonalInfo.FirstName != "Ada" {
		t.Errorf("firstName = %q, want Ada", p.PersonalInfo.FirstName)
	}
	if p.SearchPreferences.SalaryMin != 120000 {
		t.Errorf("salaryMin = %d, want 120000", p.SearchPreferences.SalaryMin)
	}
	if p.CommonAnswers.WorkAuthorization != "yes" {
		t.Errorf("workAuthorization = %q, want yes", p.CommonAnswers.WorkAuthorization)
	}
}

func TestGetStorageFailurePropagates(t *testing.T) {
	s, mock := newMockedStore(t)

	mock.ExpectQuery("SELECT data FROM profile").
		WillReturnError(errors.New("connection reset by peer"))

	if _, err := s.Get(context.Background()); err == nil {
		t.Error("Get returned nil error on storage failure")
	}
}

func TestSaveUpsertsSingleRow(t *testing.T) {
	s, mock := newMockedStore(t)

	mock.ExpectExec(profileUpsert).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	p := profile.Default()
	p.PersonalInfo.Email = "ada@example.com"
	if err := s.Save(context.Background(), p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdatePersonalInfoKeepsOtherSections(t *testing.T) {
	s, mock := newMockedStore(t)

	raw := []byte(`{
		"personalInfo": {"firstName": "Ada"},
		"searchPreferences": {"defaultKeywords": ["golang"]},
		"commonAnswers": {"workAuthorization": "yes"}
	}`)
	mock.ExpectQuery("SELECT data FROM profile").
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow(raw))
	mock.ExpectExec(profileUpsert).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	p, err := s.UpdatePersonalInfo(context.Background(), profile.PersonalInfo{
		FirstName: "Grace", Email: "grace@example.com",
	})
	if err != nil {
		t.Fatalf("UpdatePersonalInfo: %v", err)
	}
	if p.PersonalInfo.FirstName != "Grace" {
		t.Errorf("firstName = %q, want Grace", p.PersonalInfo.FirstName)
	}
	if p.CommonAnswers.WorkAuthorization != "yes" {
		t.Error("unrelated section was dropped by the partial update")
	}
	if len(p.SearchPreferences.DefaultKeywords) != 1 {
		t.Error("search preferences were dropped by the partial update")
	}
}
