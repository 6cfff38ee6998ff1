package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/faizmokh/gideon/internal/files"
)

// Backend kinds.
const (
	BackendSupabase = "supabase"
	BackendDisk     = "disk"
	BackendSQLite   = "sqlite"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

const envPrefix = "GIDEON"

// Config is the resolved runtime configuration.
type Config struct {
	Backend  string
	Supabase Supabase
	Disk     Disk
	SQLite   SQLite
	Theme    string
	Log      Log
	Server   Server
}

// Supabase describes the hosted PostgREST table.
type Supabase struct {
	URL        string
	Key        string
	Table      string
	DateColumn string
	Timeout    time.Duration
}

// Disk points at the on-disk Markdown journal.
type Disk struct {
	Path string
}

// SQLite points at the local mirror database.
type SQLite struct {
	Path string
}

// Log configures the operator log.
type Log struct {
	Level string
	File  string
}

// Server configures the development server.
type Server struct {
	Port string
	Key  string
}

// Load reads config.yaml from the gideon home (if present) and applies
// GIDEON_* environment overrides, e.g. GIDEON_SUPABASE_URL.
func Load(manager *files.Manager) (Config, error) {
	if manager == nil {
		return Config{}, errors.New("config: files manager is nil")
	}

	v := viper.New()
	setDefaults(v, manager)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(manager.BasePath())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Backend: strings.ToLower(strings.TrimSpace(v.GetString("backend"))),
		Supabase: Supabase{
			URL:        strings.TrimRight(strings.TrimSpace(v.GetString("supabase.url")), "/"),
			Key:        strings.TrimSpace(v.GetString("supabase.key")),
			Table:      v.GetString("supabase.table"),
			DateColumn: v.GetString("supabase.date_column"),
			Timeout:    v.GetDuration("supabase.timeout"),
		},
		Disk:   Disk{Path: v.GetString("disk.path")},
		SQLite: SQLite{Path: v.GetString("sqlite.path")},
		Theme:  strings.ToLower(strings.TrimSpace(v.GetString("theme"))),
		Log: Log{
			Level: strings.ToLower(v.GetString("log.level")),
			File:  v.GetString("log.file"),
		},
		Server: Server{
			Port: v.GetString("server.port"),
			Key:  v.GetString("server.key"),
		},
	}

	if err := cfg.expandPaths(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, manager *files.Manager) {
	v.SetDefault("backend", BackendSupabase)
	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.key", "")
	v.SetDefault("supabase.table", "blog_entries")
	v.SetDefault("supabase.date_column", "date")
	v.SetDefault("supabase.timeout", 10*time.Second)
	v.SetDefault("disk.path", manager.EntriesDir())
	v.SetDefault("sqlite.path", manager.DatabasePath())
	v.SetDefault("theme", ThemeLight)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", manager.LogPath())
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.key", "")
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Disk.Path, &c.SQLite.Path, &c.Log.File} {
		if *p == "" {
			continue
		}
		expanded, err := files.ExpandPath(*p)
		if err != nil {
			return fmt.Errorf("expand path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks the values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSupabase:
		if c.Supabase.URL == "" {
			return errors.New("config: supabase.url is required for the supabase backend (set GIDEON_SUPABASE_URL)")
		}
	case BackendDisk, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown backend %q (expected supabase, disk or sqlite)", c.Backend)
	}
	switch c.Theme {
	case ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("config: unknown theme %q (expected light or dark)", c.Theme)
	}
	return nil
}

// Local reports whether the configured backend lives on this machine.
func (c Config) Local() bool {
	return c.Backend == BackendDisk || c.Backend == BackendSQLite
}
