package store

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Keys under which session state is kept.
const (
	KeyConfig   = "InitiumConfig"
	KeyAutoSave = "InitiumAutoSave"
	KeyLogging  = "InitiumLogging"
)

// Backend names accepted by OpenPrefs.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// ErrKeyNotFound is returned by getters for keys that were never set.
var ErrKeyNotFound = errors.New("key not found")

// Prefs is a persistent string/bool key-value store. Writes are durable
// once the setter returns.
type Prefs interface {
	HasKey(key string) (bool, error)
	GetString(key string) (string, error)
	SetString(key, value string) error
	GetBool(key string) (bool, error)
	SetBool(key string, value bool) error
	DeleteKey(key string) error
	Close() error
}

// OpenPrefs opens the named backend under root. An empty backend selects
// the YAML store.
func OpenPrefs(backend, root string) (Prefs, error) {
	if err := ensureRoot(root); err != nil {
		return nil, err
	}
	switch backend {
	case "", BackendYAML:
		return OpenYAMLPrefs(filepath.Join(root, YAMLPrefsFile))
	case BackendSQLite:
		return OpenSQLitePrefs(filepath.Join(root, SQLitePrefsFile))
	default:
		return nil, fmt.Errorf("unknown prefs backend %q (want %s or %s)", backend, BackendYAML, BackendSQLite)
	}
}
