package tracker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"

	"jobdeck/internal/tracker"
)

func newMockedService(t *testing.T) (*tracker.Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mock.Close)
	return tracker.NewService(mock, nil, zerolog.Nop()), mock
}

func TestMoveMissingApplicationIsNotFound(t *testing.T) {
	svc, mock := newMockedService(t)

	mock.ExpectQuery("SELECT status FROM applications").
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	if _, err := svc.Move(context.Background(), "nope", "APPLIED"); !errors.Is(err, tracker.ErrNotFound) {
		t.Errorf("Move error = %v, want ErrNotFound", err)
	}
}

func TestMoveStorageFailureIsNotMaskedAsNotFound(t *testing.T) {
	svc, mock := newMockedService(t)

	mock.ExpectQuery("SELECT status FROM applications").
		WithArgs("app-1").
		WillReturnError(errors.New("connection reset by peer"))

	_, err := svc.Move(context.Background(), "app-1", "APPLIED")
	if err == nil {
		t.Fatal("Move returned nil error")
	}
	if errors.Is(err, tracker.ErrNotFound) {
		t.Errorf("Move error = %v, storage failure must not look like a missing row", err)
	}
}

func TestMoveRowDeletedBetweenReadAndUpdateIsNotFound(t *testing.T) {
	svc, mock := newMockedService(t)

	mock.ExpectQuery("SELECT status FROM applications").
		WithArgs("app-1").
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow("UNAPPLIED"))
	mock.ExpectQuery("UPDATE applications").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	if _, err := svc.Move(context.Background(), "app-1", "APPLIED"); !errors.Is(err, tracker.ErrNotFound) {
		t.Errorf("Move error = %v, want ErrNotFound", err)
	}
}

func TestAddNoteMissingApplicationIsNotFound(t *testing.T) {
	svc, mock := newMockedService(t)

	mock.ExpectQuery("UPDATE applications SET notes").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	if _, err := svc.AddNote(context.Background(), "nope", "call recruiter"); !errors.Is(err, tracker.ErrNotFound) {
		t.Errorf("AddNote error = %v, want ErrNotFound", err)
	}
}

func TestAddNoteStorageFailureIsNotMaskedAsNotFound(t *testing.T) {
	svc, mock := newMockedService(t)

	mock.ExpectQuery("UPDATE applications SET notes").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset by peer"))

	_, err := svc.AddNote(context.Background(), "app-1", "call recruiter")
	if err == nil {
		t.Fatal("AddNote returned nil error")
	}
	if errors.Is(err, tracker.ErrNotFound) {
		t.Errorf("AddNote error = %v, storage failure must not look like a missing row", err)
	}
}
