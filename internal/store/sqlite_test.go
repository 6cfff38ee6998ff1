package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/faizmokh/gideon/internal/journal"
)

var march1 = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)

func newMock(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSQL(db), mock
}

func TestSQLStoreEntryReturnsRow(t *testing.T) {
	s, mock := newMock(t)
	created := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, date, content, created_at FROM blog_entries WHERE date = ?")).
		WithArgs("2024-03-01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "content", "created_at"}).
			AddRow(int64(3), "2024-03-01", "# Hello", created))

	entry, err := s.Entry(context.Background(), march1)
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if entry.ID != 3 || entry.Content != "# Hello" || !entry.CreatedAt.Equal(created) {
		t.Fatalf("Entry = %#v", entry)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStoreEntryNoRowsIsNotFound(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM blog_entries WHERE date = ?")).
		WithArgs("2024-03-01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "content", "created_at"}))

	_, err := s.Entry(context.Background(), march1)
	if !errors.Is(err, journal.ErrEntryNotFound) {
		t.Fatalf("Entry error = %v, want ErrEntryNotFound", err)
	}
}

func TestSQLStoreEntryQueryFailureIsFetchError(t *testing.T) {
	s, mock := newMock(t)
	boom := errors.New("database is locked")
	mock.ExpectQuery(regexp.QuoteMeta("FROM blog_entries WHERE date = ?")).
		WithArgs("2024-03-01").
		WillReturnError(boom)

	_, err := s.Entry(context.Background(), march1)
	var fetchErr *journal.FetchError
	if !errors.As(err, &fetchErr) || !errors.Is(err, boom) {
		t.Fatalf("Entry error = %v, want FetchError wrapping %v", err, boom)
	}
}

func TestSQLStorePutUpserts(t *testing.T) {
	s, mock := newMock(t)

	anyTime := sqlmockArgumentFunc(func(v driver.Value) bool {
		_, ok := v.(time.Time)
		return ok
	})
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO blog_entries (date, content, created_at)")).
		WithArgs("2024-03-01", "# Hello", anyTime).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := s.Put(context.Background(), march1, "# Hello"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStoreDatesSkipsMalformedKeys(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT date FROM blog_entries ORDER BY date")).
		WillReturnRows(sqlmock.NewRows([]string{"date"}).
			AddRow("2024-02-29").
			AddRow("garbage").
			AddRow("2024-03-01"))

	dates, err := s.Dates(context.Background())
	if err != nil {
		t.Fatalf("Dates: %v", err)
	}
	if len(dates) != 2 || journal.Key(dates[1]) != "2024-03-01" {
		t.Fatalf("Dates = %v", dates)
	}
}

func TestOpenSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "gideon.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	if err := s.Put(ctx, march1, "first"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, march1, "second"); err != nil {
		t.Fatalf("Put again: %v", err)
	}

	entry, err := s.Entry(ctx, march1)
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if entry.Content != "second" {
		t.Fatalf("Entry.Content = %q, want upserted value", entry.Content)
	}

	if _, err := s.Entry(ctx, march1.AddDate(0, 0, 1)); !errors.Is(err, journal.ErrEntryNotFound) {
		t.Fatalf("Entry next day error = %v, want ErrEntryNotFound", err)
	}
}

type sqlmockArgumentFunc func(driver.Value) bool

func (f sqlmockArgumentFunc) Match(v driver.Value) bool { return f(v) }
