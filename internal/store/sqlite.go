package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/faizmokh/gideon/internal/files"
	"github.com/faizmokh/gideon/internal/journal"
)

const sqliteDriverName = "sqlite"

const schemaBlogEntries = `
CREATE TABLE IF NOT EXISTS blog_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT UNIQUE NOT NULL,
    content TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

const (
	queryEntryByDate = `SELECT id, date, content, created_at FROM blog_entries WHERE date = ? LIMIT 2`
	queryUpsertEntry = `INSERT INTO blog_entries (date, content, created_at) VALUES (?, ?, ?)
ON CONFLICT(date) DO UPDATE SET content = excluded.content`
	queryListDates = `SELECT date FROM blog_entries ORDER BY date`
)

// SQLStore mirrors the hosted blog_entries table in a local database.
type SQLStore struct {
	db *sql.DB
}

// NewSQL wraps an existing connection. The schema is assumed to exist.
func NewSQL(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// OpenSQLite opens/creates a SQLite file and ensures the table exists.
func OpenSQLite(path string) (*SQLStore, error) {
	if path == "" {
		return nil, errors.New("store: sqlite path is required")
	}
	if err := files.EnsureParent(path); err != nil {
		return nil, err
	}

	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite is not great with many writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaBlogEntries); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLStore{db: db}, nil
}

// Close releases the underlying connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Entry loads the row for date.
func (s *SQLStore) Entry(ctx context.Context, date time.Time) (journal.Entry, error) {
	key := journal.Key(date)

	rows, err := s.db.QueryContext(ctx, queryEntryByDate, key)
	if err != nil {
		return journal.Entry{}, &journal.FetchError{Date: key, Err: err}
	}
	defer rows.Close()

	var found []journal.Entry
	for rows.Next() {
		var (
			entry   journal.Entry
			created sql.NullTime
		)
		if err := rows.Scan(&entry.ID, &entry.Date, &entry.Content, &created); err != nil {
			return journal.Entry{}, &journal.FetchError{Date: key, Err: err}
		}
		if created.Valid {
			entry.CreatedAt = created.Time
		}
		found = append(found, entry)
	}
	if err := rows.Err(); err != nil {
		return journal.Entry{}, &journal.FetchError{Date: key, Err: err}
	}

	switch len(found) {
	case 0:
		return journal.Entry{}, journal.ErrEntryNotFound
	case 1:
		return found[0], nil
	default:
		return journal.Entry{}, &journal.FetchError{Date: key, Err: journal.ErrMultipleEntries}
	}
}

// Put inserts or replaces the entry for date.
func (s *SQLStore) Put(ctx context.Context, date time.Time, content string) error {
	key := journal.Key(date)
	if _, err := s.db.ExecContext(ctx, queryUpsertEntry, key, content, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert entry %s: %w", key, err)
	}
	return nil
}

// Dates lists the dates that have an entry, oldest first.
func (s *SQLStore) Dates(ctx context.Context) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, queryListDates)
	if err != nil {
		return nil, fmt.Errorf("list dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		day, err := journal.ParseKey(key)
		if err != nil {
			continue
		}
		dates = append(dates, day)
	}
	return dates, rows.Err()
}
