package store

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/initium-labs/initium/internal/platform"
	"github.com/spf13/viper"
)

// YAMLPrefs keeps prefs in a YAML file through a dedicated viper instance.
// Keys are case-insensitive.
type YAMLPrefs struct {
	mu   sync.Mutex
	path string
	v    *viper.Viper
}

// OpenYAMLPrefs reads path if it exists. The file is created on first write.
func OpenYAMLPrefs(path string) (*YAMLPrefs, error) {
	p := &YAMLPrefs{path: path, v: newPrefsViper(path)}
	if _, err := os.Stat(path); err == nil {
		if err := p.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading prefs %s: %w", path, err)
		}
	}
	return p, nil
}

func newPrefsViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	return v
}

func (p *YAMLPrefs) HasKey(key string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.v.IsSet(key), nil
}

func (p *YAMLPrefs) GetString(key string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.v.IsSet(key) {
		return "", fmt.Errorf("%s: %w", key, ErrKeyNotFound)
	}
	return p.v.GetString(key), nil
}

func (p *YAMLPrefs) SetString(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.v.Set(key, value)
	return p.write()
}

func (p *YAMLPrefs) GetBool(key string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.v.IsSet(key) {
		return false, fmt.Errorf("%s: %w", key, ErrKeyNotFound)
	}
	return p.v.GetBool(key), nil
}

func (p *YAMLPrefs) SetBool(key string, value bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.v.Set(key, value)
	return p.write()
}

// DeleteKey removes key. Viper has no delete, so the instance is rebuilt
// from the remaining settings.
func (p *YAMLPrefs) DeleteKey(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.v.IsSet(key) {
		return nil
	}

	settings := p.v.AllSettings()
	delete(settings, strings.ToLower(key))

	next := newPrefsViper(p.path)
	for k, val := range settings {
		next.Set(k, val)
	}
	p.v = next
	return p.write()
}

func (p *YAMLPrefs) Close() error { return nil }

func (p *YAMLPrefs) write() error {
	if err := p.v.WriteConfigAs(p.path); err != nil {
		return fmt.Errorf("writing prefs %s: %w", p.path, err)
	}
	if err := platform.Chmod(p.path, FilePermSecure); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", p.path, err)
	}
	return nil
}
