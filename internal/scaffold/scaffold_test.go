package scaffold

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/initium-labs/initium/internal/logging"
	"github.com/initium-labs/initium/internal/setup"
)

func newEnv(t *testing.T, cfg *setup.Config) (*Env, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return &Env{
		ProjectDir: t.TempDir(),
		Config:     cfg,
		Logger:     logging.New(&buf, "scaffold"),
	}, &buf
}

func assertDir(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", path)
	}
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s to be absent (err=%v)", path, err)
	}
}

func readDescriptor(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("descriptor %s is not JSON: %v", path, err)
	}
	return m
}

func TestRunDefaultConfig(t *testing.T) {
	env, logs := newEnv(t, setup.Default())
	res := Run(env)

	root := filepath.Join(env.ProjectDir, "Assets")
	if res.Root != root {
		t.Errorf("Root = %q, want %q", res.Root, root)
	}
	for _, name := range setup.BaseFolders {
		assertDir(t, filepath.Join(root, name))
	}
	for _, name := range []string{"Editor", "Runtime", "Tests"} {
		assertDir(t, filepath.Join(root, "Scripts", name))
		m := readDescriptor(t, filepath.Join(root, "Scripts", name, "Game."+name+".asmdef"))
		if m["name"] != "Game."+name {
			t.Errorf("descriptor name = %v", m["name"])
		}
		if m["rootNamespace"] != "Game" {
			t.Errorf("rootNamespace = %v", m["rootNamespace"])
		}
	}
	for _, name := range []string{"Music", "SFX", "Voice"} {
		assertDir(t, filepath.Join(root, "Audio", name))
	}

	mixer, err := os.ReadFile(filepath.Join(root, "Audio", "Master.mixer"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(mixer, DefaultMixerTemplate()) {
		t.Error("mixer does not match the embedded template")
	}

	if len(res.Warnings) != 0 || len(res.Errors) != 0 {
		t.Errorf("unexpected warnings %v / errors %v", res.Warnings, res.Errors)
	}
	for _, msg := range []string{
		"Project folders created successfully!",
		"Scripts folders created successfully!",
		"Assembly definitions created successfully!",
		"Audio folders created successfully!",
		"Audio Mixer created at Assets/Audio/Master.mixer",
	} {
		if !strings.Contains(logs.String(), msg) {
			t.Errorf("log missing %q", msg)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	env, _ := newEnv(t, setup.Default())
	first := Run(env)
	if len(first.Created) == 0 {
		t.Fatal("first run created nothing")
	}

	second := Run(env)
	if len(second.Created) != 0 {
		t.Errorf("second run created %v", second.Created)
	}
	slices.Sort(first.Created)
	slices.Sort(second.Skipped)
	if !slices.Equal(first.Created, second.Skipped) {
		t.Errorf("second run skipped %v, want %v", second.Skipped, first.Created)
	}
}

func TestRunEditorOnly(t *testing.T) {
	cfg := setup.Default()
	cfg.BaseNamespace = "Foo"
	for i := range cfg.ScriptsFolders {
		cfg.ScriptsFolders[i].Include = cfg.ScriptsFolders[i].Name == "Editor"
	}
	for i := range cfg.AudioFolders {
		cfg.AudioFolders[i].Include = false
	}

	env, _ := newEnv(t, cfg)
	Run(env)
	root := Root(env.ProjectDir)

	descPath := filepath.Join(root, "Scripts", "Editor", "Foo.Editor.asmdef")
	m := readDescriptor(t, descPath)
	platforms, _ := m["includePlatforms"].([]any)
	if len(platforms) != 1 || platforms[0] != "Editor" {
		t.Errorf("includePlatforms = %v, want [Editor]", m["includePlatforms"])
	}
	if m["autoReferenced"] != true {
		t.Errorf("autoReferenced = %v", m["autoReferenced"])
	}

	assertMissing(t, filepath.Join(root, "Scripts", "Runtime"))
	assertMissing(t, filepath.Join(root, "Scripts", "Tests"))
	assertMissing(t, filepath.Join(root, "Audio", "Music"))
	// The mixer is written even without audio subfolders.
	if _, err := os.Stat(filepath.Join(root, "Audio", "Master.mixer")); err != nil {
		t.Errorf("mixer missing: %v", err)
	}
}

func TestDescriptorFields(t *testing.T) {
	for _, folder := range []string{"Runtime", "Editor", "EditorTools"} {
		t.Run(folder, func(t *testing.T) {
			data, err := NewAssemblyDefinition("Game", folder).Marshal()
			if err != nil {
				t.Fatal(err)
			}
			var m map[string]any
			if err := json.Unmarshal(data, &m); err != nil {
				t.Fatal(err)
			}

			want := map[string]any{
				"name":               "Game." + folder,
				"rootNamespace":      "Game",
				"allowUnsafeCode":    false,
				"overrideReferences": false,
				"autoReferenced":     true,
				"noEngineReferences": false,
			}
			for k, v := range want {
				if m[k] != v {
					t.Errorf("%s = %v, want %v", k, m[k], v)
				}
			}
			for _, k := range []string{"references", "excludePlatforms", "precompiledReferences", "defineConstraints", "versionDefines"} {
				list, ok := m[k].([]any)
				if !ok || len(list) != 0 {
					t.Errorf("%s = %v, want []", k, m[k])
				}
			}

			platforms := m["includePlatforms"].([]any)
			wantEditor := folder == "Editor"
			if wantEditor != (len(platforms) == 1) {
				t.Errorf("includePlatforms = %v for folder %s", platforms, folder)
			}
			if len(m) != 12 {
				t.Errorf("descriptor has %d fields, want 12", len(m))
			}

			issues, err := validateDescriptor(data)
			if err != nil || len(issues) != 0 {
				t.Errorf("validateDescriptor = %v, %v", issues, err)
			}
		})
	}
}

func TestDescriptorNotOverwritten(t *testing.T) {
	env, _ := newEnv(t, setup.Default())
	Run(env)

	path := filepath.Join(Root(env.ProjectDir), "Scripts", "Runtime", "Game.Runtime.asmdef")
	if err := os.WriteFile(path, []byte("custom"), 0644); err != nil {
		t.Fatal(err)
	}
	mixerPath := filepath.Join(Root(env.ProjectDir), "Audio", "Master.mixer")
	if err := os.WriteFile(mixerPath, []byte("my mixer"), 0644); err != nil {
		t.Fatal(err)
	}

	Run(env)

	if data, _ := os.ReadFile(path); string(data) != "custom" {
		t.Errorf("descriptor overwritten: %q", data)
	}
	if data, _ := os.ReadFile(mixerPath); string(data) != "my mixer" {
		t.Errorf("mixer overwritten: %q", data)
	}
}

func TestModuleDescriptorsMissingFolder(t *testing.T) {
	env, logs := newEnv(t, setup.Default())
	res := &Result{Root: Root(env.ProjectDir)}

	// Only the base folders exist; scripts subfolders were never created.
	CreateBaseFolders(env, res)
	CreateModuleDescriptors(env, res)

	if len(res.Warnings) != 3 {
		t.Fatalf("Warnings = %v, want one per scripts folder", res.Warnings)
	}
	if res.Warnings[0] != "Folder Assets/Scripts/Editor does not exist." {
		t.Errorf("warning = %q", res.Warnings[0])
	}
	if !strings.Contains(logs.String(), "level=WARN") {
		t.Error("expected a WARN log entry")
	}
	assertMissing(t, filepath.Join(res.Root, "Scripts", "Editor"))
}

func TestModuleDescriptorsInvalidNamespace(t *testing.T) {
	for _, ns := range []string{"", "../evil", "My Game", "1Game"} {
		t.Run(ns, func(t *testing.T) {
			cfg := setup.Default()
			cfg.BaseNamespace = ns
			env, _ := newEnv(t, cfg)
			res := Run(env)

			if len(res.Errors) != 1 || !strings.HasPrefix(res.Errors[0], "Skipping assembly definitions") {
				t.Errorf("Errors = %v", res.Errors)
			}
			entries, err := os.ReadDir(filepath.Join(res.Root, "Scripts", "Editor"))
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				t.Errorf("descriptor written for invalid namespace: %v", entries)
			}
			// Later stages still run.
			assertDir(t, filepath.Join(res.Root, "Audio", "Music"))
		})
	}
}

func TestUnsafeFolderNamesSkipped(t *testing.T) {
	cfg := setup.Default()
	cfg.ScriptsFolders = []setup.Entry{setup.NewEntry("../outside", true), setup.NewEntry("Runtime", true)}
	cfg.AudioFolders = []setup.Entry{setup.NewEntry("", true)}
	env, _ := newEnv(t, cfg)
	res := Run(env)

	assertMissing(t, filepath.Join(env.ProjectDir, "Assets", "outside"))
	assertDir(t, filepath.Join(res.Root, "Scripts", "Runtime"))
	if len(res.Warnings) == 0 {
		t.Error("expected warnings for unsafe folder names")
	}
}

func TestNoIncludedFoldersIsNoop(t *testing.T) {
	cfg := setup.Default()
	cfg.ScriptsFolders = nil
	cfg.AudioFolders = []setup.Entry{setup.NewEntry("Music", false)}
	env, logs := newEnv(t, cfg)
	res := Run(env)

	if strings.Contains(logs.String(), "Scripts folders created") {
		t.Error("scripts stage should be silent with no included folders")
	}
	if strings.Contains(logs.String(), "Audio folders created") {
		t.Error("audio stage should be silent with no included folders")
	}
	entries, _ := os.ReadDir(filepath.Join(res.Root, "Scripts"))
	if len(entries) != 0 {
		t.Errorf("Scripts not empty: %v", entries)
	}
}

func TestCustomMixerTemplate(t *testing.T) {
	t.Run("bytes", func(t *testing.T) {
		env, _ := newEnv(t, setup.Default())
		env.MixerTemplate = []byte("custom mixer")
		res := Run(env)
		data, _ := os.ReadFile(filepath.Join(res.Root, "Audio", "Master.mixer"))
		if string(data) != "custom mixer" {
			t.Errorf("mixer = %q", data)
		}
	})

	t.Run("path", func(t *testing.T) {
		env, _ := newEnv(t, setup.Default())
		tmpl := filepath.Join(t.TempDir(), "mixer.txt")
		if err := os.WriteFile(tmpl, []byte("from file"), 0644); err != nil {
			t.Fatal(err)
		}
		env.MixerTemplatePath = tmpl
		res := Run(env)
		data, _ := os.ReadFile(filepath.Join(res.Root, "Audio", "Master.mixer"))
		if string(data) != "from file" {
			t.Errorf("mixer = %q", data)
		}
	})

	t.Run("unreadable", func(t *testing.T) {
		env, _ := newEnv(t, setup.Default())
		env.MixerTemplatePath = filepath.Join(t.TempDir(), "missing.mixer")
		res := Run(env)
		assertMissing(t, filepath.Join(res.Root, "Audio", "Master.mixer"))
		if len(res.Errors) != 1 {
			t.Errorf("Errors = %v", res.Errors)
		}
	})
}

func TestDisabledLoggerStillReports(t *testing.T) {
	env, logs := newEnv(t, setup.Default())
	env.Logger.SetEnabled(false)
	res := &Result{Root: Root(env.ProjectDir)}
	CreateModuleDescriptors(env, res)

	if logs.Len() != 0 {
		t.Errorf("disabled logger wrote %q", logs.String())
	}
	if len(res.Warnings) != 3 {
		t.Errorf("Warnings = %v", res.Warnings)
	}
}

func TestEnsureFileRemovesPartialWrite(t *testing.T) {
	orig := writeContent
	t.Cleanup(func() { writeContent = orig })
	writeContent = func(f *os.File, content []byte) error {
		f.Write(content[:len(content)/2])
		return errors.New("no space left on device")
	}

	path := filepath.Join(t.TempDir(), "Master.mixer")
	created, err := ensureFile(path, []byte("%YAML 1.1\nAudioMixerController: {}\n"))
	if err == nil || created {
		t.Fatalf("ensureFile = %v, %v; want a write error", created, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("partial file left behind: %v", err)
	}

	writeContent = orig
	if created, err := ensureFile(path, []byte("full")); err != nil || !created {
		t.Errorf("retry = %v, %v; want a fresh file", created, err)
	}
}
