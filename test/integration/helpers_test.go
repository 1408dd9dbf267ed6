//go:build integration

package integration_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/initium-labs/initium/internal/logging"
	"github.com/initium-labs/initium/internal/session"
	"github.com/initium-labs/initium/internal/store"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	PrefsDir   string // INITIUM_PREFS — preferences store root
	ConfigDir  string // INITIUM_CONFIG_DIR — user settings and registry cache
	ProjectDir string // a mock Unity project
	Logs       *bytes.Buffer
}

// setupTestEnv creates isolated temp directories and points the environment
// at them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		PrefsDir:   t.TempDir(),
		ConfigDir:  t.TempDir(),
		ProjectDir: t.TempDir(),
		Logs:       &bytes.Buffer{},
	}
	t.Setenv("INITIUM_PREFS", env.PrefsDir)
	t.Setenv("INITIUM_CONFIG_DIR", env.ConfigDir)
	return env
}

// openSession opens a session on the given prefs backend, closing it when
// the test ends.
func openSession(t *testing.T, env *testEnv, backend string) *session.Session {
	t.Helper()

	prefs, err := store.OpenPrefs(backend, env.PrefsDir)
	if err != nil {
		t.Fatalf("OpenPrefs(%q): %v", backend, err)
	}
	s, err := session.Open(prefs, logging.New(env.Logs, "initium"))
	if err != nil {
		prefs.Close()
		t.Fatalf("session.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type tarFile struct {
	Name string
	Body string
}

func tarGz(t *testing.T, files []tarFile) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, f := range files {
		hdr := &tar.Header{Name: f.Name, Mode: 0644, Size: int64(len(f.Body)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(f.Body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// registryPackage is one package served by the mock registry.
type registryPackage struct {
	Name    string
	Version string
	Files   []tarFile
}

// setupRegistry starts an npm-style registry serving pkgs. Unknown names
// get a 404.
func setupRegistry(t *testing.T, pkgs ...registryPackage) *httptest.Server {
	t.Helper()

	tarballs := map[string][]byte{}
	mux := http.NewServeMux()
	for _, p := range pkgs {
		data := tarGz(t, p.Files)
		sum := sha1.Sum(data)
		tarballs[p.Name] = data

		p := p
		shasum := hex.EncodeToString(sum[:])
		mux.HandleFunc("/"+p.Name, func(w http.ResponseWriter, r *http.Request) {
			base := "http://" + r.Host
			doc := map[string]any{
				"name":      p.Name,
				"dist-tags": map[string]string{"latest": p.Version},
				"versions": map[string]any{
					p.Version: map[string]any{
						"dist": map[string]string{"tarball": base + "/tarballs/" + p.Name + ".tgz", "shasum": shasum},
					},
				},
			}
			json.NewEncoder(w).Encode(doc)
		})
	}
	mux.HandleFunc("/tarballs/", func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Base(r.URL.Path)
		data, ok := tarballs[name[:len(name)-len(".tgz")]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// writeUnityPackage writes a .unitypackage holding one asset at pathname.
func writeUnityPackage(t *testing.T, dir, name, pathname, body string) string {
	t.Helper()
	data := tarGz(t, []tarFile{
		{Name: "0a1b2c/pathname", Body: pathname},
		{Name: "0a1b2c/asset", Body: body},
		{Name: "0a1b2c/asset.meta", Body: "fileFormatVersion: 2\n"},
	})
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
		return
	}
	if info.IsDir() {
		t.Errorf("expected %s to be a file, got a directory", path)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory %s to exist: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory", path)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s to not exist, got err=%v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
