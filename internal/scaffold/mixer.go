package scaffold

import (
	_ "embed"
	"fmt"
	"os"
)

// MixerFile is the audio mixer's file name inside the Audio folder.
const MixerFile = "Master.mixer"

//go:embed templates/Master.mixer
var defaultMixer []byte

// DefaultMixerTemplate returns a copy of the embedded mixer asset.
func DefaultMixerTemplate() []byte {
	out := make([]byte, len(defaultMixer))
	copy(out, defaultMixer)
	return out
}

// LoadMixerTemplate reads a custom template, or returns the embedded one
// when path is empty.
func LoadMixerTemplate(path string) ([]byte, error) {
	if path == "" {
		return DefaultMixerTemplate(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mixer template: %w", err)
	}
	return data, nil
}
