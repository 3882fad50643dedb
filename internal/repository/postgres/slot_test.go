package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"xeghep/internal/repository"
)

func newMockStore(t *testing.T) (*SlotStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSlotStore(db), mock
}

var (
	selectPayload = regexp.QuoteMeta(`SELECT payload FROM collection_slots WHERE key = $1`)
	insertSlot    = regexp.QuoteMeta(`INSERT INTO collection_slots`)
)

func TestSlotStore_Load(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)

	mock.ExpectQuery(selectPayload).
		WithArgs(repository.SlotRides).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(`[{"id":"1"}]`)))
	mock.ExpectQuery(selectPayload).
		WithArgs(repository.SlotBookings).
		WillReturnError(sql.ErrNoRows)

	got, err := s.Load(ctx, repository.SlotRides)
	if err != nil || string(got) != `[{"id":"1"}]` {
		t.Errorf("unexpected payload %q, err %v", got, err)
	}
	if _, err := s.Load(ctx, repository.SlotBookings); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSlotStore_SaveAll_OneTransactionInKeyOrder(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertSlot).WithArgs(repository.SlotBookings, `[]`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertSlot).WithArgs(repository.SlotRides, `[{"id":"1"}]`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.SaveAll(context.Background(), map[string][]byte{
		repository.SlotRides:    []byte(`[{"id":"1"}]`),
		repository.SlotBookings: []byte(`[]`),
	})
	if err != nil {
		t.Fatalf("save all: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSlotStore_SaveAll_RollsBackOnError(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("disk full")

	mock.ExpectBegin()
	mock.ExpectExec(insertSlot).WithArgs(repository.SlotBookings, `[]`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertSlot).WithArgs(repository.SlotRides, `[]`).WillReturnError(boom)
	mock.ExpectRollback()

	err := s.SaveAll(context.Background(), map[string][]byte{
		repository.SlotRides:    []byte(`[]`),
		repository.SlotBookings: []byte(`[]`),
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSlotStore_EnsureSchema(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS collection_slots`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
