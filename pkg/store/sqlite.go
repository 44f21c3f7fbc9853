// Package store persists streak records in a local libsql/sqlite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/tursodatabase/go-libsql"

	"logbobot/pkg/ledger"
)

type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and ensures the
// schema exists. The parent directory is created as well; failing to create
// it is a startup-fatal condition for the caller.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS logbo_records (
		user_id TEXT PRIMARY KEY,
		username TEXT,
		total_days INTEGER DEFAULT 0,
		consecutive_days INTEGER DEFAULT 0,
		last_logbo_date TEXT
	)`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create logbo_records table: %w", err)
	}
	return nil
}

// Get returns the record for userID, or nil when the user has never
// checked in.
func (s *Store) Get(ctx context.Context, userID string) (*ledger.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, username, total_days, consecutive_days, last_logbo_date
		 FROM logbo_records WHERE user_id = ?`, userID)

	var record ledger.Record
	err := row.Scan(&record.UserID, &record.Acct, &record.TotalDays, &record.ConsecutiveDays, &record.LastBonusDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record for %s: %w", userID, err)
	}
	return &record, nil
}

// Put upserts the record in a single statement.
func (s *Store) Put(ctx context.Context, record *ledger.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO logbo_records (user_id, username, total_days, consecutive_days, last_logbo_date)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			username = excluded.username,
			total_days = excluded.total_days,
			consecutive_days = excluded.consecutive_days,
			last_logbo_date = excluded.last_logbo_date`,
		record.UserID, record.Acct, record.TotalDays, record.ConsecutiveDays, record.LastBonusDate)
	if err != nil {
		return fmt.Errorf("failed to store record for %s: %w", record.UserID, err)
	}
	return nil
}

// TopStreaks returns the best streaks, longest current streak first.
func (s *Store) TopStreaks(ctx context.Context, limit int) ([]ledger.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, username, total_days, consecutive_days, last_logbo_date
		 FROM logbo_records
		 ORDER BY consecutive_days DESC, total_days DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking: %w", err)
	}
	defer rows.Close()

	var records []ledger.Record
	for rows.Next() {
		var record ledger.Record
		if err := rows.Scan(&record.UserID, &record.Acct, &record.TotalDays, &record.ConsecutiveDays, &record.LastBonusDate); err != nil {
			return nil, fmt.Errorf("failed to scan ranking row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ranking rows: %w", err)
	}
	return records, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
