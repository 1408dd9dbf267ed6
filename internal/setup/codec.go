package setup

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Document is the wire shape of a Config. Field names are part of the saved
// format and must not change.
type Document struct {
	BaseNamespace  string  `json:"baseNamespace" yaml:"baseNamespace" toml:"baseNamespace"`
	ScriptsFolders []Entry `json:"ScriptsFolders" yaml:"ScriptsFolders" toml:"ScriptsFolders"`
	AudioFolders   []Entry `json:"AudioFolders" yaml:"AudioFolders" toml:"AudioFolders"`
	Packages       []Entry `json:"Packages" yaml:"Packages" toml:"Packages"`
	PackageFiles   []Entry `json:"PackageFiles" yaml:"PackageFiles" toml:"PackageFiles"`
}

// Document converts c to its wire shape. Collections are never nil.
func (c *Config) Document() *Document {
	return &Document{
		BaseNamespace:  c.BaseNamespace,
		ScriptsFolders: nonNil(c.ScriptsFolders),
		AudioFolders:   nonNil(c.AudioFolders),
		Packages:       nonNil(c.Packages.Entries()),
		PackageFiles:   nonNil(c.PackageFiles.Entries()),
	}
}

// FromDocument builds a Config from its wire shape. Missing collections
// become empty; package sets are rebuilt under entry equality.
func FromDocument(d *Document) *Config {
	return &Config{
		BaseNamespace:  d.BaseNamespace,
		ScriptsFolders: nonNil(d.ScriptsFolders),
		AudioFolders:   nonNil(d.AudioFolders),
		Packages:       NewEntrySet(d.Packages...),
		PackageFiles:   NewEntrySet(d.PackageFiles...),
	}
}

// Marshal serializes c as compact JSON.
func Marshal(c *Config) ([]byte, error) {
	return json.Marshal(c.Document())
}

// MarshalIndent serializes c as pretty-printed JSON.
func MarshalIndent(c *Config) ([]byte, error) {
	return json.MarshalIndent(c.Document(), "", "    ")
}

// Unmarshal parses serialized JSON into a Config. Any parse or type error is
// returned as a *MalformedConfigError.
func Unmarshal(data []byte) (*Config, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &MalformedConfigError{Err: errors.New("empty document")}
	}
	if trimmed[0] != '{' {
		return nil, &MalformedConfigError{Err: errors.New("document is not a JSON object")}
	}

	var d Document
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return nil, &MalformedConfigError{Err: err}
	}
	return FromDocument(&d), nil
}

func nonNil(list []Entry) []Entry {
	if list == nil {
		return []Entry{}
	}
	out := make([]Entry, len(list))
	copy(out, list)
	return out
}
