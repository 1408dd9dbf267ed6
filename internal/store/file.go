package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/initium-labs/initium/internal/platform"
	"github.com/initium-labs/initium/internal/schema"
	"github.com/initium-labs/initium/internal/setup"
	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"
)

// Format is a config file encoding.
type Format string

// Supported file formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from the file extension. Unknown extensions
// are treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a format name given on the command line.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, yaml or toml)", name)
	}
}

// Encode renders cfg in the given format, pretty-printed.
func Encode(cfg *setup.Config, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(cfg.Document())
	case FormatTOML:
		return toml.Marshal(cfg.Document())
	default:
		data, err := setup.MarshalIndent(cfg)
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

// SaveToFile writes cfg to path, overwriting any existing file.
func SaveToFile(cfg *setup.Config, path string) (string, error) {
	data, err := Encode(cfg, FormatFor(path))
	if err != nil {
		return StatusSaveFailed, fmt.Errorf("encoding config: %w", err)
	}
	if err := platform.WriteFileAtomic(path, data, FilePermNormal); err != nil {
		return StatusSaveFailed, &IOError{Op: "write", Path: path, Err: err}
	}
	return fmt.Sprintf(statusFileSaved, path), nil
}

var utf8BOM = []byte("\xef\xbb\xbf")

// LoadFromFile reads a configuration file written by SaveToFile or by hand.
// Content is schema-validated before it is decoded.
func LoadFromFile(path string) (*setup.Config, string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, StatusLoadFailed, &FileNotFoundError{Path: path, Err: err}
	}
	if err != nil {
		return nil, StatusLoadFailed, &IOError{Op: "read", Path: path, Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	jsonData, err := toJSON(data, FormatFor(path))
	if err != nil {
		return nil, StatusLoadFailed, &setup.MalformedConfigError{Source: path, Err: err}
	}

	cfg, err := decode(path, jsonData)
	if err != nil {
		return nil, StatusLoadFailed, err
	}
	return cfg, fmt.Sprintf(statusFileLoaded, path), nil
}

// toJSON converts file content to JSON so one validator and decoder serve
// every format.
func toJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return schema.YAMLToJSON(data)
	case FormatTOML:
		var raw map[string]interface{}
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
		return json.Marshal(raw)
	default:
		return data, nil
	}
}
