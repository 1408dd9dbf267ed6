package scaffold

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/initium-labs/initium/internal/logging"
	"github.com/initium-labs/initium/internal/setup"
)

// Project layout names.
const (
	AssetsDir  = "Assets"
	ScriptsDir = "Scripts"
	AudioDir   = "Audio"
)

// Env carries everything the pipeline needs.
type Env struct {
	ProjectDir string
	Config     *setup.Config
	Logger     *logging.Logger

	// MixerTemplate is written verbatim as the master mixer. When nil the
	// file at MixerTemplatePath is used, and when that is empty too the
	// embedded default.
	MixerTemplate     []byte
	MixerTemplatePath string
}

// Result holds the outcome of a pipeline run. Paths are slash-separated and
// relative to the project directory.
type Result struct {
	Root     string
	Created  []string
	Skipped  []string
	Warnings []string
	Errors   []string
}

// Root returns the initializer root of a project.
func Root(projectDir string) string {
	return filepath.Join(projectDir, AssetsDir)
}

// Run executes the five stages in order. A failing stage is logged and the
// next one still runs; nothing is rolled back.
func Run(env *Env) *Result {
	res := &Result{Root: Root(env.ProjectDir)}
	if env.Logger == nil {
		env.Logger = logging.Discard()
	}

	CreateBaseFolders(env, res)
	CreateScriptsFolders(env, res)
	CreateModuleDescriptors(env, res)
	CreateAudioFolders(env, res)
	CreateAudioMixer(env, res)
	return res
}

// CreateBaseFolders creates the fixed folder set under the root, creating
// the root itself if needed.
func CreateBaseFolders(env *Env, res *Result) {
	root := Root(env.ProjectDir)
	if err := os.MkdirAll(root, dirPerm); err != nil {
		res.fail(env.Logger, "Could not create %s: %v", AssetsDir, err)
		return
	}
	createFolders(env, res, setup.BaseFolders, AssetsDir)
	env.Logger.Info("Project folders created successfully!")
}

// CreateScriptsFolders creates Scripts/<name> for every included scripts
// folder.
func CreateScriptsFolders(env *Env, res *Result) {
	names := includedFolderNames(env, res, env.Config.ScriptsFolders)
	if len(names) == 0 {
		return
	}
	createFolders(env, res, names, path.Join(AssetsDir, ScriptsDir))
	env.Logger.Info("Scripts folders created successfully!")
}

// CreateModuleDescriptors writes an assembly definition into every included
// scripts folder that exists. Existing descriptors are left alone.
func CreateModuleDescriptors(env *Env, res *Result) {
	ns := env.Config.BaseNamespace
	if err := setup.ValidateNamespace(ns); err != nil {
		res.fail(env.Logger, "Skipping assembly definitions: %v", err)
		return
	}

	names := includedFolderNames(env, res, env.Config.ScriptsFolders)
	if len(names) == 0 {
		return
	}

	for _, folder := range names {
		dir := path.Join(AssetsDir, ScriptsDir, folder)
		if !isDir(res.abs(env, dir)) {
			res.warn(env.Logger, "Folder %s does not exist.", dir)
			continue
		}
		createDescriptor(env, res, ns, folder)
	}

	env.Logger.Info("Assembly definitions created successfully!")
}

func createDescriptor(env *Env, res *Result, ns, folder string) {
	rel := path.Join(AssetsDir, ScriptsDir, folder, DescriptorFile(ns, folder))

	data, err := NewAssemblyDefinition(ns, folder).Marshal()
	if err != nil {
		res.fail(env.Logger, "%v", err)
		return
	}

	issues, err := validateDescriptor(data)
	if err != nil {
		res.warn(env.Logger, "Could not validate %s: %v", rel, err)
	}
	for _, issue := range issues {
		res.warn(env.Logger, "%s: %s", rel, issue)
	}

	created, err := ensureFile(res.abs(env, rel), data)
	if err != nil {
		res.fail(env.Logger, "%v", err)
		return
	}
	if !created {
		res.Skipped = append(res.Skipped, rel)
		return
	}
	res.Created = append(res.Created, rel)
	env.Logger.Info("Assembly definition created at %s", rel)
}

// CreateAudioFolders creates Audio/<name> for every included audio folder.
func CreateAudioFolders(env *Env, res *Result) {
	names := includedFolderNames(env, res, env.Config.AudioFolders)
	if len(names) == 0 {
		return
	}
	createFolders(env, res, names, path.Join(AssetsDir, AudioDir))
	env.Logger.Info("Audio folders created successfully!")
}

// CreateAudioMixer writes the mixer template to Audio/Master.mixer unless a
// mixer is already there.
func CreateAudioMixer(env *Env, res *Result) {
	template := env.MixerTemplate
	if template == nil {
		var err error
		template, err = LoadMixerTemplate(env.MixerTemplatePath)
		if err != nil {
			res.fail(env.Logger, "Skipping audio mixer: %v", err)
			return
		}
	}

	rel := path.Join(AssetsDir, AudioDir, MixerFile)
	created, err := ensureFile(res.abs(env, rel), template)
	if err != nil {
		res.fail(env.Logger, "%v", err)
		return
	}
	if !created {
		res.Skipped = append(res.Skipped, rel)
		return
	}
	res.Created = append(res.Created, rel)
	env.Logger.Info("Audio Mixer created at %s", rel)
}

// createFolders creates each name under parent (slash-separated, relative
// to the project directory).
func createFolders(env *Env, res *Result, names []string, parent string) {
	for _, name := range names {
		rel := path.Join(parent, name)
		created, err := ensureDir(res.abs(env, rel))
		if err != nil {
			res.fail(env.Logger, "%v", err)
			continue
		}
		if created {
			res.Created = append(res.Created, rel)
		} else {
			res.Skipped = append(res.Skipped, rel)
		}
	}
}

// includedFolderNames returns the included folder names that are safe to
// use as a single path component. Unsafe names are reported and dropped.
func includedFolderNames(env *Env, res *Result, folders []setup.Entry) []string {
	var names []string
	for _, name := range setup.Names(setup.IncludedOf(folders)) {
		if err := setup.ValidateFolderName(name); err != nil {
			res.warn(env.Logger, "Skipping folder: %v", err)
			continue
		}
		names = append(names, name)
	}
	return names
}

func (r *Result) abs(env *Env, rel string) string {
	return filepath.Join(env.ProjectDir, filepath.FromSlash(rel))
}

func (r *Result) warn(log *logging.Logger, format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
	log.Warn(format, args...)
}

func (r *Result) fail(log *logging.Logger, format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	log.Error(format, args...)
}
