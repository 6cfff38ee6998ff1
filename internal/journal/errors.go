package journal

import (
	"errors"
	"fmt"
)

// ErrEntryNotFound is returned when no record exists for the requested date.
var ErrEntryNotFound = errors.New("entry not found")

// ErrMultipleEntries indicates the backend returned more than one record for a date.
var ErrMultipleEntries = errors.New("multiple entries for date")

// FetchError wraps a failure to load the entry for a date from a backend.
type FetchError struct {
	Date string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch entry %s: %v", e.Date, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the date simply has no entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntryNotFound)
}
