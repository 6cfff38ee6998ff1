package cli

import (
	"errors"
	"fmt"
	"sync"

	"github.com/faizmokh/gideon/internal/config"
	"github.com/faizmokh/gideon/internal/files"
	"github.com/faizmokh/gideon/internal/journal"
	"github.com/faizmokh/gideon/internal/logger"
	"github.com/faizmokh/gideon/internal/render"
	"github.com/faizmokh/gideon/internal/store"
	"github.com/faizmokh/gideon/internal/supabase"
	"github.com/faizmokh/gideon/internal/ui"
)

// app holds the collaborators shared by every subcommand. Configuration is
// loaded on first use so that --help works without a config file.
type app struct {
	manager   *files.Manager
	clipboard ui.Clipboard
	renderer  *render.Renderer

	once sync.Once
	cfg  config.Config
	err  error
}

func newApp(manager *files.Manager) *app {
	return &app{
		manager:   manager,
		clipboard: ui.SystemClipboard{},
		renderer:  render.New(),
	}
}

func (a *app) config() (config.Config, error) {
	a.once.Do(func() {
		a.cfg, a.err = config.Load(a.manager)
	})
	return a.cfg, a.err
}

// logger opens the operator log. The TUI writes to the configured file;
// everything else logs to stderr.
func (a *app) logger(toFile bool) (*logger.Logger, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	opts := logger.Options{Level: cfg.Log.Level}
	if toFile {
		opts.Path = cfg.Log.File
	}
	return logger.New(opts)
}

// openSource builds the configured backend. The returned closer is never nil.
func (a *app) openSource(log *logger.Logger) (journal.Source, func() error, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Local() {
		client, err := supabase.New(supabase.Config{
			URL:        cfg.Supabase.URL,
			Key:        cfg.Supabase.Key,
			Table:      cfg.Supabase.Table,
			DateColumn: cfg.Supabase.DateColumn,
			Timeout:    cfg.Supabase.Timeout,
			Log:        log,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, noopClose, nil
	}
	src, closer, err := a.openWritable()
	if err != nil {
		return nil, nil, err
	}
	return src, closer, nil
}

// openWritable opens the local backend, refusing the hosted one.
func (a *app) openWritable() (store.Writable, func() error, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, nil, err
	}
	switch cfg.Backend {
	case config.BackendDisk:
		disk, err := store.OpenDisk(cfg.Disk.Path)
		if err != nil {
			return nil, nil, err
		}
		return disk, noopClose, nil
	case config.BackendSQLite:
		db, err := store.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: backend %q is read-only here", errReadOnlyBackend, cfg.Backend)
	}
}

var errReadOnlyBackend = errors.New("local backend required")

func noopClose() error { return nil }

