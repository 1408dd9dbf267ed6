package scaffold

import (
	"encoding/json"
	"fmt"

	"github.com/initium-labs/initium/internal/schema"
)

// editorFolder is the only scripts folder whose assembly is Editor-only.
const editorFolder = "Editor"

// VersionDefine is one entry of an assembly definition's versionDefines.
type VersionDefine struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
	Define     string `json:"define"`
}

// AssemblyDefinition is the content of a Unity .asmdef file.
type AssemblyDefinition struct {
	Name                  string          `json:"name"`
	RootNamespace         string          `json:"rootNamespace"`
	References            []string        `json:"references"`
	IncludePlatforms      []string        `json:"includePlatforms"`
	ExcludePlatforms      []string        `json:"excludePlatforms"`
	AllowUnsafeCode       bool            `json:"allowUnsafeCode"`
	OverrideReferences    bool            `json:"overrideReferences"`
	PrecompiledReferences []string        `json:"precompiledReferences"`
	AutoReferenced        bool            `json:"autoReferenced"`
	DefineConstraints     []string        `json:"defineConstraints"`
	VersionDefines        []VersionDefine `json:"versionDefines"`
	NoEngineReferences    bool            `json:"noEngineReferences"`
}

// NewAssemblyDefinition returns the descriptor for a scripts folder.
func NewAssemblyDefinition(namespace, folder string) *AssemblyDefinition {
	include := []string{}
	if folder == editorFolder {
		include = []string{editorFolder}
	}
	return &AssemblyDefinition{
		Name:                  DescriptorName(namespace, folder),
		RootNamespace:         namespace,
		References:            []string{},
		IncludePlatforms:      include,
		ExcludePlatforms:      []string{},
		PrecompiledReferences: []string{},
		AutoReferenced:        true,
		DefineConstraints:     []string{},
		VersionDefines:        []VersionDefine{},
	}
}

// DescriptorName is "<namespace>.<folder>".
func DescriptorName(namespace, folder string) string {
	return namespace + "." + folder
}

// DescriptorFile is the descriptor's file name inside its folder.
func DescriptorFile(namespace, folder string) string {
	return DescriptorName(namespace, folder) + ".asmdef"
}

// Marshal renders the descriptor as pretty JSON.
func (a *AssemblyDefinition) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(a, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encoding assembly definition %s: %w", a.Name, err)
	}
	return append(data, '\n'), nil
}

// validateDescriptor checks rendered descriptor JSON against the embedded schema and
// returns its issues as messages.
func validateDescriptor(data []byte) ([]string, error) {
	res, err := schema.Validate(schema.Descriptor, data)
	if err != nil {
		return nil, err
	}
	if res.Valid {
		return nil, nil
	}
	return res.Messages(), nil
}
