package files

import (
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

const (
	// DefaultDirName defines the folder under the user's home directory.
	DefaultDirName = ".gideon"

	// HomeEnvVar overrides where gideon keeps its config, log and local journal.
	HomeEnvVar = "GIDEON_HOME"
)

// ResolveBasePath determines the gideon home directory, defaulting to ~/.gideon.
// The location can be overridden by exporting GIDEON_HOME.
func ResolveBasePath() (string, error) {
	if override, ok := os.LookupEnv(HomeEnvVar); ok {
		override = strings.TrimSpace(override)
		if override != "" {
			return ExpandPath(override)
		}
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDirName), nil
}

// ExpandPath resolves a leading ~ against the user's home directory.
func ExpandPath(input string) (string, error) {
	return homedir.Expand(input)
}
