package journal

import (
	"context"
	"errors"
	"time"
)

// Source loads at most one entry per calendar date.
//
// Implementations return ErrEntryNotFound when the date has no record and a
// *FetchError for anything else that went wrong.
type Source interface {
	Entry(ctx context.Context, date time.Time) (Entry, error)
}

// Lookup resolves the entry for date, mapping absence to ok=false.
func Lookup(ctx context.Context, src Source, date time.Time) (entry Entry, ok bool, err error) {
	if src == nil {
		return Entry{}, false, errors.New("journal source not configured")
	}
	entry, err = src.Entry(ctx, date)
	if err != nil {
		if IsNotFound(err) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	return entry, true, nil
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(ctx context.Context, date time.Time) (Entry, error)

// Entry calls f.
func (f SourceFunc) Entry(ctx context.Context, date time.Time) (Entry, error) {
	return f(ctx, date)
}
