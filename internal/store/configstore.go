package store

import (
	"errors"
	"fmt"

	"github.com/initium-labs/initium/internal/setup"
)

// Status lines reported after store operations.
const (
	StatusSaved      = "Config saved."
	StatusLoaded     = "Config loaded."
	StatusNotSaved   = "No saved config."
	StatusSaveFailed = "Failed to save."
	StatusLoadFailed = "Failed to load."
	StatusDeleted    = "Saved config deleted."
	statusFileSaved  = "Config file saved to %s"
	statusFileLoaded = "Config file loaded from %s"
)

// ConfigStore keeps one serialized configuration in a Prefs store.
type ConfigStore struct {
	prefs Prefs
}

// NewConfigStore returns a ConfigStore over prefs.
func NewConfigStore(prefs Prefs) *ConfigStore {
	return &ConfigStore{prefs: prefs}
}

// Save serializes cfg under KeyConfig, replacing any previous value.
func (s *ConfigStore) Save(cfg *setup.Config) (string, error) {
	data, err := setup.Marshal(cfg)
	if err != nil {
		return StatusSaveFailed, fmt.Errorf("serializing config: %w", err)
	}
	if err := s.prefs.SetString(KeyConfig, string(data)); err != nil {
		return StatusSaveFailed, err
	}
	return StatusSaved, nil
}

// Load restores the saved configuration. It returns ErrNotFound when
// nothing was saved and a *setup.MalformedConfigError when the stored text
// does not parse.
func (s *ConfigStore) Load() (*setup.Config, string, error) {
	text, err := s.prefs.GetString(KeyConfig)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, StatusNotSaved, ErrNotFound
	}
	if err != nil {
		return nil, StatusLoadFailed, err
	}

	cfg, err := decode(KeyConfig, []byte(text))
	if err != nil {
		return nil, StatusLoadFailed, err
	}
	return cfg, StatusLoaded, nil
}

// Exists reports whether a configuration has been saved.
func (s *ConfigStore) Exists() (bool, error) {
	return s.prefs.HasKey(KeyConfig)
}

// Delete removes the saved configuration.
func (s *ConfigStore) Delete() (string, error) {
	if err := s.prefs.DeleteKey(KeyConfig); err != nil {
		return StatusSaveFailed, err
	}
	return StatusDeleted, nil
}
