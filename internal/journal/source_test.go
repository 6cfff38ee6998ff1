package journal

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLookupMapsNotFoundToAbsent(t *testing.T) {
	src := SourceFunc(func(ctx context.Context, date time.Time) (Entry, error) {
		return Entry{}, ErrEntryNotFound
	})

	_, ok, err := Lookup(context.Background(), src, time.Now())
	if err != nil {
		t.Fatalf("Lookup error = %v, want nil", err)
	}
	if ok {
		t.Fatal("Lookup ok = true, want false")
	}
}

func TestLookupKeepsFetchErrors(t *testing.T) {
	boom := errors.New("boom")
	src := SourceFunc(func(ctx context.Context, date time.Time) (Entry, error) {
		return Entry{}, &FetchError{Date: Key(date), Err: boom}
	})

	_, _, err := Lookup(context.Background(), src, time.Now())
	if !errors.Is(err, boom) {
		t.Fatalf("Lookup error = %v, want wrapping %v", err, boom)
	}
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Lookup error = %T, want *FetchError", err)
	}
}

func TestLookupReturnsEntry(t *testing.T) {
	src := SourceFunc(func(ctx context.Context, date time.Time) (Entry, error) {
		return Entry{Date: Key(date), Content: "# Hello"}, nil
	})

	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	entry, ok, err := Lookup(context.Background(), src, day)
	if err != nil || !ok {
		t.Fatalf("Lookup = (%v, %v), want entry", ok, err)
	}
	if entry.Date != "2024-03-01" || entry.Content != "# Hello" {
		t.Fatalf("Lookup entry = %#v", entry)
	}
}
