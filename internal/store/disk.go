package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/faizmokh/gideon/internal/journal"
)

const (
	entryExt     = ".md"
	cacheSizeMax = 1024 * 1024 // 1MB
)

// DiskStore keeps one Markdown file per date under <base>/YYYY/MM/YYYY-MM-DD.md.
type DiskStore struct {
	d        *diskv.Diskv
	basePath string
}

// OpenDisk returns a DiskStore rooted at basePath. The directory is created lazily on first write.
func OpenDisk(basePath string) (*DiskStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: disk path is required")
	}
	return &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      cacheSizeMax,
		}),
		basePath: basePath,
	}, nil
}

// BasePath returns the journal root.
func (s *DiskStore) BasePath() string {
	return s.basePath
}

// Entry reads the Markdown file for date.
func (s *DiskStore) Entry(ctx context.Context, date time.Time) (journal.Entry, error) {
	key := journal.Key(date)
	if err := ctx.Err(); err != nil {
		return journal.Entry{}, &journal.FetchError{Date: key, Err: err}
	}
	if !s.d.Has(key) {
		return journal.Entry{}, journal.ErrEntryNotFound
	}
	val, err := s.d.Read(key)
	if err != nil {
		return journal.Entry{}, &journal.FetchError{Date: key, Err: err}
	}
	return journal.Entry{Date: key, Content: string(val)}, nil
}

// Put writes content as the entry for date, replacing any existing one.
func (s *DiskStore) Put(ctx context.Context, date time.Time, content string) error {
	key := journal.Key(date)
	if err := s.d.Write(key, []byte(content)); err != nil {
		return fmt.Errorf("write entry %s: %w", key, err)
	}
	return nil
}

// Dates lists the dates that have an entry, oldest first.
func (s *DiskStore) Dates(ctx context.Context) ([]time.Time, error) {
	var dates []time.Time
	for key := range s.d.Keys(ctx.Done()) {
		day, err := journal.ParseKey(key)
		if err != nil {
			continue
		}
		dates = append(dates, day)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// keyToPathTransform maps 2024-03-01 to 2024/03/2024-03-01.md.
func keyToPathTransform(key string) *diskv.PathKey {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return &diskv.PathKey{FileName: key + entryExt}
	}
	return &diskv.PathKey{
		Path:     parts[:2],
		FileName: key + entryExt,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, entryExt)
}
