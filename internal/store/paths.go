package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/initium-labs/initium/internal/branding"
	"github.com/initium-labs/initium/internal/platform"
)

// File and directory names under the prefs root.
const (
	PrefsDir        = "prefs"
	YAMLPrefsFile   = "prefs.yaml"
	SQLitePrefsFile = "prefs.db"
)

// Permission constants.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
	FilePermNormal os.FileMode = 0644
)

// PrefsRoot returns the directory holding the prefs store.
// It checks the INITIUM_PREFS environment variable first,
// then falls back to ~/.initium/prefs.
func PrefsRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("PREFS")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir(), PrefsDir), nil
}

// ensureRoot creates root with owner-only permissions.
func ensureRoot(root string) error {
	if err := os.MkdirAll(root, DirPermSecure); err != nil {
		return fmt.Errorf("creating prefs directory %s: %w", root, err)
	}
	if err := platform.Chmod(root, DirPermSecure); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", root, err)
	}
	return nil
}
