package branding

import "testing"

func TestDefaults(t *testing.T) {
	if got := CLIName(); got != "initium" {
		t.Errorf("CLIName() = %q, want %q", got, "initium")
	}
	if got := HomeDir(); got != ".initium" {
		t.Errorf("HomeDir() = %q, want %q", got, ".initium")
	}
	if got := RegistryURL(); got == "" {
		t.Error("RegistryURL() should not be empty")
	}
}

func TestEnvVar(t *testing.T) {
	tests := []struct {
		suffix string
		want   string
	}{
		{"prefs", "INITIUM_PREFS"},
		{"REGISTRY_URL", "INITIUM_REGISTRY_URL"},
	}
	for _, tt := range tests {
		if got := EnvVar(tt.suffix); got != tt.want {
			t.Errorf("EnvVar(%q) = %q, want %q", tt.suffix, got, tt.want)
		}
	}
}
