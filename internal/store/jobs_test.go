package store_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"

	"jobdeck/internal/model"
	"jobdeck/internal/store"
)

// Every record must go through the url-keyed upsert so re-running a search
// updates rows in place instead of inserting duplicates.
var upsertPattern = regexp.QuoteMeta("ON CONFLICT (url) DO UPDATE")

// The upsert statement binds 12 parameters per record; these tests pin the
// statement shape and the written counts, not the bound values.
var anyUpsertArgs = []interface{}{
	pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
	pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
	pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
}

func posting(id, url string) model.JobPosting {
	return model.JobPosting{
		ID:       id,
		Platform: model.PlatformIndeed,
		Title:    "Software Engineer",
		Company:  "Acme Corp",
		URL:      url,
	}
}

func TestUpsertBatchRepeatedBatchUpdatesInPlace(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	batch := []model.JobPosting{
		posting("id-1", "https://indeed.com/viewjob?jk=1"),
		posting("id-2", "https://indeed.com/viewjob?jk=2"),
	}

	// Both passes over the same batch hit the conflict-updating statement,
	// so the second pass rewrites the two existing rows.
	for i := 0; i < 4; i++ {
		mock.ExpectExec(upsertPattern).
			WithArgs(anyUpsertArgs...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	s := store.NewJobStore(mock, zerolog.Nop())
	if got := s.UpsertBatch(context.Background(), batch); got != 2 {
		t.Errorf("first pass: written = %d, want 2", got)
	}
	if got := s.UpsertBatch(context.Background(), batch); got != 2 {
		t.Errorf("second pass: written = %d, want 2", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpsertBatchSkipsFailedRecords(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectExec(upsertPattern).
		WithArgs(anyUpsertArgs...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(upsertPattern).
		WithArgs(anyUpsertArgs...).
		WillReturnError(errors.New("value too long for type"))
	mock.ExpectExec(upsertPattern).
		WithArgs(anyUpsertArgs...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s := store.NewJobStore(mock, zerolog.Nop())
	batch := []model.JobPosting{
		posting("id-1", "https://indeed.com/viewjob?jk=1"),
		posting("id-2", "https://indeed.com/viewjob?jk=2"),
		posting("id-3", "https://indeed.com/viewjob?jk=3"),
	}
	if got := s.UpsertBatch(context.Background(), batch); got != 2 {
		t.Errorf("written = %d, want 2 (middle record failed)", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpsertBatchSkipsPostingsWithoutURL(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	// Only the posting with a url reaches the database.
	mock.ExpectExec(upsertPattern).
		WithArgs(anyUpsertArgs...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s := store.NewJobStore(mock, zerolog.Nop())
	batch := []model.JobPosting{
		posting("id-1", ""),
		posting("id-2", "https://indeed.com/viewjob?jk=2"),
	}
	if got := s.UpsertBatch(context.Background(), batch); got != 1 {
		t.Errorf("written = %d, want 1", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetMissingJobIsNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectQuery("FROM jobs WHERE id").
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	s := store.NewJobStore(mock, zerolog.Nop())
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestGetStorageFailureIsNotMaskedAsNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectQuery("FROM jobs WHERE id").
		WithArgs("id-1").
		WillReturnError(errors.New("connection reset by peer"))

	s := store.NewJobStore(mock, zerolog.Nop())
	_, err = s.Get(context.Background(), "id-1")
	if err == nil {
		t.Fatal("Get returned nil error")
	}
	if errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get error = %v, storage failure must not look like a missing row", err)
	}
}

func TestDeleteMissingJobIsNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectExec("DELETE FROM jobs").
		WithArgs("nope").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	s := store.NewJobStore(mock, zerolog.Nop())
	if err := s.Delete(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Delete error = %v, want ErrNotFound", err)
	}
}
