package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestReadManifestMissing(t *testing.T) {
	m, err := ReadManifest(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Dependencies) != 0 {
		t.Errorf("Dependencies = %v", m.Dependencies)
	}
}

func TestManifestKeepsOtherKeys(t *testing.T) {
	project := t.TempDir()
	path := ManifestPath(project)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	original := `{
  "dependencies": {"com.unity.ugui": "1.0.0"},
  "scopedRegistries": [{"name": "acme", "url": "https://npm.acme.dev", "scopes": ["com.acme"]}],
  "testables": ["com.unity.ugui"]
}`
	if err := os.WriteFile(path, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := ReadManifest(project)
	if err != nil {
		t.Fatal(err)
	}
	m.Dependencies["com.acme.kit"] = "2.0.0"
	if err := m.Write(); err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(readFile(t, path)), &doc); err != nil {
		t.Fatal(err)
	}
	if _, ok := doc["scopedRegistries"]; !ok {
		t.Error("scopedRegistries dropped")
	}
	if _, ok := doc["testables"]; !ok {
		t.Error("testables dropped")
	}
	deps := doc["dependencies"].(map[string]any)
	if deps["com.unity.ugui"] != "1.0.0" || deps["com.acme.kit"] != "2.0.0" {
		t.Errorf("dependencies = %v", deps)
	}
}

func TestManifestPackagesSorted(t *testing.T) {
	m := &Manifest{Dependencies: map[string]string{
		"com.b":   "1.0.0",
		"com.a":   "2.0.0",
		"com.git": "https://github.com/acme/git.git",
		"com.loc": "file:../loc",
	}}
	pkgs := m.Packages()
	want := []PackageInfo{
		{Name: "com.a", Version: "2.0.0", Source: SourceRegistry},
		{Name: "com.b", Version: "1.0.0", Source: SourceRegistry},
		{Name: "com.git", Version: "https://github.com/acme/git.git", Source: SourceGit},
		{Name: "com.loc", Version: "file:../loc", Source: SourceLocal},
	}
	if len(pkgs) != len(want) {
		t.Fatalf("Packages() = %v", pkgs)
	}
	for i := range want {
		if pkgs[i] != want[i] {
			t.Errorf("Packages()[%d] = %+v, want %+v", i, pkgs[i], want[i])
		}
	}
}

func TestReadManifestMalformed(t *testing.T) {
	project := t.TempDir()
	path := ManifestPath(project)
	os.MkdirAll(filepath.Dir(path), 0755)
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadManifest(project); err == nil {
		t.Error("expected parse error")
	}
}
