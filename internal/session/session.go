package session

import (
	"errors"
	"fmt"

	"github.com/initium-labs/initium/internal/logging"
	"github.com/initium-labs/initium/internal/scaffold"
	"github.com/initium-labs/initium/internal/setup"
	"github.com/initium-labs/initium/internal/store"
)

// Notices describing where the current configuration came from.
const (
	NoticeLoaded   = "Loaded config from preferences."
	NoticeNotSaved = "Not saved in preferences."
)

// Session is the state of one editing session.
type Session struct {
	Config   *setup.Config
	AutoSave bool
	Logger   *logging.Logger

	prefs   store.Prefs
	configs *store.ConfigStore
	file    string
}

// Open restores the session state from prefs. A missing or unreadable saved
// configuration yields the defaults. Auto-save defaults to on and that
// default is written back on first use.
func Open(prefs store.Prefs, logger *logging.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Session{
		Logger:  logger,
		prefs:   prefs,
		configs: store.NewConfigStore(prefs),
	}

	cfg, _, err := s.configs.Load()
	switch {
	case err == nil:
		s.Config = cfg
	case errors.Is(err, store.ErrNotFound):
		s.Config = setup.Default()
	case errors.Is(err, setup.ErrMalformedConfig):
		s.Logger.Error("Failed to load saved config: %v", err)
		s.Config = setup.Default()
	default:
		return nil, err
	}

	if ok, err := prefs.HasKey(store.KeyLogging); err != nil {
		return nil, err
	} else if ok {
		on, err := prefs.GetBool(store.KeyLogging)
		if err != nil {
			return nil, err
		}
		s.Logger.SetEnabled(on)
	}

	ok, err := prefs.HasKey(store.KeyAutoSave)
	if err != nil {
		return nil, err
	}
	if ok {
		if s.AutoSave, err = prefs.GetBool(store.KeyAutoSave); err != nil {
			return nil, err
		}
	} else {
		s.AutoSave = true
		if err := prefs.SetBool(store.KeyAutoSave, true); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Close releases the prefs store.
func (s *Session) Close() error {
	return s.prefs.Close()
}

// BindFile switches the session to a config file. The file's content
// replaces the current configuration and later commits write to it. A file
// that does not exist yet starts from the defaults.
func (s *Session) BindFile(path string) error {
	cfg, _, err := store.LoadFromFile(path)
	var nf *store.FileNotFoundError
	switch {
	case err == nil:
		s.Config = cfg
	case errors.As(err, &nf):
		s.Config = setup.Default()
	default:
		return err
	}
	s.file = path
	return nil
}

// File returns the bound config file, or "".
func (s *Session) File() string { return s.file }

// Notice reports whether the configuration is saved in preferences.
func (s *Session) Notice() (string, error) {
	ok, err := s.configs.Exists()
	if err != nil {
		return "", err
	}
	if ok {
		return NoticeLoaded, nil
	}
	return NoticeNotSaved, nil
}

// Save persists the configuration to the bound file, or to preferences.
func (s *Session) Save() (string, error) {
	if s.file != "" {
		status, err := store.SaveToFile(s.Config, s.file)
		if err != nil {
			s.Logger.Error("Failed to save config file: %v", err)
			return status, err
		}
		s.Logger.Info("Config file saved to %s", s.file)
		return status, nil
	}

	status, err := s.configs.Save(s.Config)
	if err != nil {
		s.Logger.Error("Failed to save config: %v", err)
		return status, err
	}
	s.Logger.Info("Config saved to preferences.")
	return status, nil
}

// Commit saves when auto-save is on or force is set. It returns "" when
// nothing was written.
func (s *Session) Commit(force bool) (string, error) {
	if !s.AutoSave && !force {
		return "", nil
	}
	return s.Save()
}

// Reset drops the saved configuration and returns to the defaults.
func (s *Session) Reset() (string, error) {
	status, err := s.configs.Delete()
	if err != nil {
		return status, err
	}
	s.Config = setup.Default()
	return status, nil
}

// SetAutoSave changes the auto-save toggle. Turning it on saves right away.
func (s *Session) SetAutoSave(on bool) error {
	if on == s.AutoSave {
		return nil
	}
	if err := s.prefs.SetBool(store.KeyAutoSave, on); err != nil {
		return err
	}
	s.AutoSave = on
	if on {
		if _, err := s.Save(); err != nil {
			return err
		}
	}
	return nil
}

// SetLogging changes the logging toggle and persists it.
func (s *Session) SetLogging(on bool) error {
	if on == s.Logger.Enabled() {
		return nil
	}
	if err := s.prefs.SetBool(store.KeyLogging, on); err != nil {
		return err
	}
	s.Logger.SetEnabled(on)
	return nil
}

// SetNamespace sets the base namespace after validating it.
func (s *Session) SetNamespace(ns string) error {
	if err := setup.ValidateNamespace(ns); err != nil {
		return err
	}
	s.Config.BaseNamespace = ns
	return nil
}

// ImportFile replaces the configuration with the content of a config file.
// The current configuration is kept when the file cannot be used.
func (s *Session) ImportFile(path string) (string, error) {
	if path == "" {
		s.Logger.Warn("No config file path set.")
		return store.StatusLoadFailed, fmt.Errorf("no config file path set")
	}

	cfg, status, err := store.LoadFromFile(path)
	if err != nil {
		var nf *store.FileNotFoundError
		if errors.As(err, &nf) {
			s.Logger.Error("Config file not found at %s", path)
		} else {
			s.Logger.Error("Failed to load config file: %v", err)
		}
		return status, err
	}

	s.Config = cfg
	s.Logger.Info("Config file loaded successfully!")
	return status, nil
}

// ExportFile writes the configuration to a config file.
func (s *Session) ExportFile(path string) (string, error) {
	if path == "" {
		s.Logger.Warn("No config file path set.")
		return store.StatusSaveFailed, fmt.Errorf("no config file path set")
	}
	status, err := store.SaveToFile(s.Config, path)
	if err != nil {
		s.Logger.Error("Failed to save config file: %v", err)
		return status, err
	}
	s.Logger.Info("Config file saved to %s", path)
	return status, nil
}

// InitializeProject runs the initializer against projectDir and saves the
// configuration afterwards when auto-save is on.
func (s *Session) InitializeProject(projectDir string, mixerTemplatePath string) *scaffold.Result {
	res := scaffold.Run(&scaffold.Env{
		ProjectDir:        projectDir,
		Config:            s.Config,
		Logger:            s.Logger,
		MixerTemplatePath: mixerTemplatePath,
	})
	if s.AutoSave {
		// Save failures are already logged.
		_, _ = s.Save()
	}
	return res
}
