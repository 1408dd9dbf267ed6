package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/initium-labs/initium/internal/platform"
)

// Project layout used by the package service.
const (
	AssetsDir    = "Assets"
	PackagesDir  = "Packages"
	ManifestFile = "manifest.json"
	CacheDir     = "Library/PackageCache"
)

// Manifest is a project's Packages/manifest.json. Keys other than
// "dependencies" are kept untouched.
type Manifest struct {
	path         string
	Dependencies map[string]string
	other        map[string]json.RawMessage
}

// ManifestPath returns the manifest location for a project.
func ManifestPath(projectDir string) string {
	return filepath.Join(projectDir, PackagesDir, ManifestFile)
}

// ReadManifest loads the project manifest. A missing file yields an empty
// manifest.
func ReadManifest(projectDir string) (*Manifest, error) {
	m := &Manifest{
		path:         ManifestPath(projectDir),
		Dependencies: map[string]string{},
		other:        map[string]json.RawMessage{},
	}

	data, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	if err := json.Unmarshal(data, &m.other); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", m.path, err)
	}
	if raw, ok := m.other["dependencies"]; ok {
		if err := json.Unmarshal(raw, &m.Dependencies); err != nil {
			return nil, fmt.Errorf("parsing manifest dependencies: %w", err)
		}
		if m.Dependencies == nil {
			m.Dependencies = map[string]string{}
		}
		delete(m.other, "dependencies")
	}
	return m, nil
}

// Write saves the manifest, creating the Packages directory if needed.
func (m *Manifest) Write() error {
	deps, err := json.Marshal(m.Dependencies)
	if err != nil {
		return fmt.Errorf("encoding dependencies: %w", err)
	}

	doc := make(map[string]json.RawMessage, len(m.other)+1)
	for k, v := range m.other {
		doc[k] = v
	}
	doc["dependencies"] = deps

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(m.path), err)
	}
	if err := platform.WriteFileAtomic(m.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Packages lists the recorded dependencies sorted by name.
func (m *Manifest) Packages() []PackageInfo {
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]PackageInfo, 0, len(names))
	for _, name := range names {
		version := m.Dependencies[name]
		source := SourceRegistry
		if isURL(version) {
			source = Identifier{URL: version}.Source()
		}
		out = append(out, PackageInfo{Name: name, Version: version, Source: source})
	}
	return out
}
