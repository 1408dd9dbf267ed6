package session

import (
	"fmt"

	"github.com/initium-labs/initium/internal/setup"
)

// Set returns the entry set backing a set role.
func (s *Session) Set(role setup.Role) (*setup.EntrySet, error) {
	switch role {
	case setup.RolePackage:
		return s.Config.Packages, nil
	case setup.RolePackageFile:
		return s.Config.PackageFiles, nil
	default:
		return nil, fmt.Errorf("%s is not a set", role)
	}
}

// Add inserts each name as an included entry. It returns how many were new.
func (s *Session) Add(role setup.Role, names ...string) (int, error) {
	set, err := s.Set(role)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, name := range names {
		if name == "" {
			continue
		}
		if set.Add(setup.NewEntry(name, true)) {
			added++
		}
	}
	return added, nil
}

// Remove deletes every entry with one of the given names, whatever its
// include state. It returns how many entries went away.
func (s *Session) Remove(role setup.Role, names ...string) (int, error) {
	set, err := s.Set(role)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, name := range names {
		removed += set.RemoveName(name)
	}
	return removed, nil
}

// Toggle sets the include state of the named entry.
func (s *Session) Toggle(role setup.Role, name string, include bool) error {
	if role == setup.RoleScriptsFolder || role == setup.RoleAudioFolder {
		return s.Config.SetFolderInclude(role, name, include)
	}
	set, err := s.Set(role)
	if err != nil {
		return err
	}
	if !set.SetInclude(name, include) {
		return fmt.Errorf("no %s named %q", role, name)
	}
	return nil
}

// RemoveSelectedPackages drops every included package and returns them.
func (s *Session) RemoveSelectedPackages() []setup.Entry {
	return s.Config.Packages.RemoveIncluded()
}

// ClearPackages empties the package set.
func (s *Session) ClearPackages() {
	s.Config.Packages.Clear()
}

// SetPackages replaces the package set with names, all included, and saves
// when auto-save is on.
func (s *Session) SetPackages(names []string) (string, error) {
	s.Config.ReplacePackages(names)
	return s.Commit(false)
}
