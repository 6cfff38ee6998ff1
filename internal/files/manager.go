package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const dirPermissions = 0o755

const (
	configFileName   = "config.yaml"
	logFileName      = "gideon.log"
	entriesDirName   = "entries"
	databaseFileName = "gideon.db"
)

// Manager centralizes where gideon keeps files on disk.
type Manager struct {
	basePath string
}

// NewManager constructs a Manager rooted at the provided directory. If basePath
// is empty, it falls back to ~/.gideon (or another location determined by
// ResolveBasePath).
func NewManager(basePath string) (*Manager, error) {
	var err error
	if basePath == "" {
		basePath, err = ResolveBasePath()
		if err != nil {
			return nil, err
		}
	} else {
		basePath, err = ExpandPath(basePath)
		if err != nil {
			return nil, err
		}
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Manager{basePath: abs}, nil
}

// BasePath returns the gideon home directory.
func (m *Manager) BasePath() string {
	return m.basePath
}

// ConfigPath is where the optional config.yaml lives.
func (m *Manager) ConfigPath() string {
	return filepath.Join(m.basePath, configFileName)
}

// LogPath is the default operator log file.
func (m *Manager) LogPath() string {
	return filepath.Join(m.basePath, logFileName)
}

// EntriesDir is the default root of the on-disk journal.
func (m *Manager) EntriesDir() string {
	return filepath.Join(m.basePath, entriesDirName)
}

// DatabasePath is the default SQLite mirror location.
func (m *Manager) DatabasePath() string {
	return filepath.Join(m.basePath, databaseFileName)
}

// EnsureBase creates the home directory if it does not exist yet.
func (m *Manager) EnsureBase() error {
	if m == nil {
		return errors.New("files.Manager is nil")
	}
	if err := os.MkdirAll(m.basePath, dirPermissions); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	return nil
}

// EnsureParent creates the directory holding path.
func EnsureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	return nil
}
