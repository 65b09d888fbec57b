package audit

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStoreRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO log_entries`).
		WithArgs(
			at,
			"success",
			"CreatePerson succeeded",
			sql.NullString{},
			"CreatePerson",
			sql.NullString{String: "alice", Valid: true},
			sql.NullString{String: "req-1", Valid: true},
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.Record(context.Background(), Entry{
		Timestamp: at,
		Level:     LevelSuccess,
		Message:   "CreatePerson succeeded",
		Source:    "CreatePerson",
		UserID:    "alice",
		RequestID: "req-1",
	})
	if err != nil {
		t.Errorf("Record() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreRecordError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStore(db)

	mock.ExpectExec(`INSERT INTO log_entries`).
		WillReturnError(errors.New("connection refused"))

	err = store.Record(context.Background(), Entry{Level: LevelError, Message: "boom"})
	if err == nil {
		t.Error("Record() expected error, got nil")
	}
}

func TestStoreRecordNilDB(t *testing.T) {
	store := NewStore(nil)
	if err := store.Record(context.Background(), Entry{}); err != nil {
		t.Errorf("Record() with nil db error = %v", err)
	}
}

func TestStoreList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	columns := []string{"timestamp", "level", "message", "exception", "source", "user_id", "request_id"}
	mock.ExpectQuery(`SELECT timestamp, level, message, exception, source, user_id, request_id FROM log_entries WHERE level = \$1 ORDER BY id DESC LIMIT \$2`).
		WithArgs("error", 10).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(at, "error", "CreatePerson failed", "person already exists", "CreatePerson", nil, "req-2"))

	lvl := LevelError
	entries, err := store.List(context.Background(), Filter{Level: &lvl, Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("List() returned %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.Level != LevelError {
		t.Errorf("Level = %v, want error", e.Level)
	}
	if e.Exception != "person already exists" {
		t.Errorf("Exception = %q", e.Exception)
	}
	if e.UserID != "" {
		t.Errorf("UserID = %q, want empty", e.UserID)
	}
	if e.RequestID != "req-2" {
		t.Errorf("RequestID = %q, want req-2", e.RequestID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreListUnfiltered(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStore(db)

	mock.ExpectQuery(`SELECT .* FROM log_entries ORDER BY id DESC$`).
		WillReturnRows(sqlmock.NewRows([]string{"timestamp", "level", "message", "exception", "source", "user_id", "request_id"}))

	entries, err := store.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List() returned %d entries, want 0", len(entries))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
