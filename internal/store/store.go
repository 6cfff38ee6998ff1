// Package store provides local journal.Source implementations.
package store

import (
	"context"
	"time"

	"github.com/faizmokh/gideon/internal/journal"
)

// Writable is a local source that also accepts new entries.
type Writable interface {
	journal.Source
	Put(ctx context.Context, date time.Time, content string) error
	Dates(ctx context.Context) ([]time.Time, error)
}

var (
	_ Writable = (*DiskStore)(nil)
	_ Writable = (*SQLStore)(nil)
)
