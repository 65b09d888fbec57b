package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Store persists audit entries to the log_entries table.
type Store struct {
	db *sql.DB
}

// NewStore creates a store with an existing database connection
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record persists e.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if s.db == nil {
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO log_entries (timestamp, level, message, exception, source, user_id, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		e.Timestamp,
		e.Level.String(),
		e.Message,
		nullString(e.Exception),
		e.Source,
		nullString(e.UserID),
		nullString(e.RequestID),
	)
	if err != nil {
		return fmt.Errorf("failed to insert log entry: %w", err)
	}
	return nil
}

// Filter narrows List results.
type Filter struct {
	// Level restricts results to a single level when set.
	Level *Level
	// Limit caps the number of entries returned, newest first.
	Limit int
}

// List returns the most recent entries matching f, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if f.Level != nil {
		args = append(args, f.Level.String())
		where = append(where, fmt.Sprintf("level = $%d", len(args)))
	}

	query := `SELECT timestamp, level, message, exception, source, user_id, request_id FROM log_entries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var exception, userID, requestID sql.NullString
		if err := rows.Scan(&e.Timestamp, &e.Level, &e.Message, &exception, &e.Source, &userID, &requestID); err != nil {
			return nil, err
		}
		e.Exception = exception.String
		e.UserID = userID.String
		e.RequestID = requestID.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
