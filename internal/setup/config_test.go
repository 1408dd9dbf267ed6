package setup

import (
	"errors"
	"slices"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.BaseNamespace != "Game" {
		t.Errorf("BaseNamespace = %q, want %q", c.BaseNamespace, "Game")
	}
	if got := Names(c.ScriptsFolders); !slices.Equal(got, []string{"Editor", "Runtime", "Tests"}) {
		t.Errorf("ScriptsFolders = %v", got)
	}
	if got := Names(c.AudioFolders); !slices.Equal(got, []string{"Music", "SFX", "Voice"}) {
		t.Errorf("AudioFolders = %v", got)
	}
	for _, e := range append(slices.Clone(c.ScriptsFolders), c.AudioFolders...) {
		if !e.Include {
			t.Errorf("default folder %s should be included", e.Name)
		}
	}
	if c.Packages.Len() != 0 || c.PackageFiles.Len() != 0 {
		t.Error("default package sets should be empty")
	}
}

func TestDefaultReturnsFreshInstances(t *testing.T) {
	a := Default()
	b := Default()
	a.ScriptsFolders[0].Include = false
	a.Packages.Add(NewEntry("x", true))
	if !b.ScriptsFolders[0].Include || b.Packages.Len() != 0 {
		t.Error("Default() instances share state")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := Default()
	a.Packages.Add(NewEntry("com.unity.cinemachine", true))
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatal("clone should equal original")
	}
	b.AudioFolders[1].Include = false
	b.Packages.Add(NewEntry("com.unity.inputsystem", true))
	if a.Equal(b) {
		t.Error("mutating clone changed original")
	}
}

func TestEqualFolderOrderMatters(t *testing.T) {
	a := Default()
	b := Default()
	b.ScriptsFolders[0], b.ScriptsFolders[1] = b.ScriptsFolders[1], b.ScriptsFolders[0]
	if a.Equal(b) {
		t.Error("folder order should matter for equality")
	}
}

func TestSetFolderInclude(t *testing.T) {
	c := Default()
	if err := c.SetFolderInclude(RoleScriptsFolder, "Tests", false); err != nil {
		t.Fatalf("SetFolderInclude: %v", err)
	}
	if c.ScriptsFolders[2].Include {
		t.Error("Tests should be excluded")
	}
	if err := c.SetFolderInclude(RoleAudioFolder, "Ambience", true); err == nil {
		t.Error("expected error for unknown folder")
	}
	if err := c.SetFolderInclude(RolePackage, "x", true); err == nil {
		t.Error("expected error for non-folder role")
	}
}

func TestReplacePackages(t *testing.T) {
	c := Default()
	c.Packages.Add(NewEntry("old", false))
	c.ReplacePackages([]string{"a", "b"})
	want := NewEntrySet(NewEntry("a", true), NewEntry("b", true))
	if !c.Packages.Equal(want) {
		t.Errorf("Packages = %v", c.Packages.Entries())
	}
}

func TestValidateNamespace(t *testing.T) {
	tests := []struct {
		ns      string
		wantErr bool
	}{
		{"Game", false},
		{"Studio.Game_2", false},
		{"_Internal", false},
		{"", true},
		{"2Fast", true},
		{"My Game", true},
		{"Game/../../etc", true},
		{"Game.", true},
	}
	for _, tt := range tests {
		err := ValidateNamespace(tt.ns)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateNamespace(%q) error = %v, wantErr %v", tt.ns, err, tt.wantErr)
		}
	}
}

func TestValidateFolderName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"Editor", false},
		{"Play Mode", false},
		{"", true},
		{"..", true},
		{"a/b", true},
		{`a\b`, true},
	}
	for _, tt := range tests {
		err := ValidateFolderName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFolderName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestMalformedConfigErrorIs(t *testing.T) {
	err := error(&MalformedConfigError{Source: "x.json", Err: errors.New("boom")})
	if !errors.Is(err, ErrMalformedConfig) {
		t.Error("errors.Is(err, ErrMalformedConfig) = false")
	}
	var mce *MalformedConfigError
	if !errors.As(err, &mce) || mce.Source != "x.json" {
		t.Error("errors.As did not recover the typed error")
	}
}
