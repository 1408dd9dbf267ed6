package setup

import (
	"fmt"
	"slices"
)

// DefaultNamespace is the base namespace of a fresh configuration.
const DefaultNamespace = "Game"

// BaseFolders are created under the project root on every run. They are not
// configurable.
var BaseFolders = []string{
	"Animations",
	"Audio",
	"Materials",
	"Plugins",
	"Prefabs",
	"Presets",
	"Resources",
	"Textures",
	"Scenes",
	"Scripts",
	"StreamingAssets",
}

// Config aggregates every user choice that drives project setup.
type Config struct {
	BaseNamespace  string
	ScriptsFolders []Entry
	AudioFolders   []Entry
	Packages       *EntrySet
	PackageFiles   *EntrySet
}

// Default returns the configuration used when nothing has been saved yet.
func Default() *Config {
	return &Config{
		BaseNamespace: DefaultNamespace,
		ScriptsFolders: []Entry{
			NewEntry("Editor", true),
			NewEntry("Runtime", true),
			NewEntry("Tests", true),
		},
		AudioFolders: []Entry{
			NewEntry("Music", true),
			NewEntry("SFX", true),
			NewEntry("Voice", true),
		},
		Packages:     NewEntrySet(),
		PackageFiles: NewEntrySet(),
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	return &Config{
		BaseNamespace:  c.BaseNamespace,
		ScriptsFolders: slices.Clone(c.ScriptsFolders),
		AudioFolders:   slices.Clone(c.AudioFolders),
		Packages:       c.Packages.Clone(),
		PackageFiles:   c.PackageFiles.Clone(),
	}
}

// Equal compares two configurations entry by entry. Folder lists must match
// in order; package sets only in content.
func (c *Config) Equal(other *Config) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.BaseNamespace == other.BaseNamespace &&
		slices.Equal(c.ScriptsFolders, other.ScriptsFolders) &&
		slices.Equal(c.AudioFolders, other.AudioFolders) &&
		c.Packages.Equal(other.Packages) &&
		c.PackageFiles.Equal(other.PackageFiles)
}

// Folders returns the folder list for a folder role.
func (c *Config) Folders(role Role) ([]Entry, error) {
	switch role {
	case RoleScriptsFolder:
		return c.ScriptsFolders, nil
	case RoleAudioFolder:
		return c.AudioFolders, nil
	default:
		return nil, fmt.Errorf("%s is not a folder group", role)
	}
}

// SetFolderInclude toggles the named folder of a folder group in place.
func (c *Config) SetFolderInclude(role Role, name string, include bool) error {
	folders, err := c.Folders(role)
	if err != nil {
		return err
	}
	found := false
	for i := range folders {
		if folders[i].Name == name {
			folders[i].Include = include
			found = true
		}
	}
	if !found {
		return fmt.Errorf("no %s folder named %q", role, name)
	}
	return nil
}

// ReplacePackages swaps the package set for the given names, all included.
func (c *Config) ReplacePackages(names []string) {
	c.Packages.Clear()
	for _, n := range names {
		c.Packages.Add(NewEntry(n, true))
	}
}
