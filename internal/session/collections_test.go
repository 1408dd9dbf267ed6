package session

import (
	"testing"

	"github.com/initium-labs/initium/internal/setup"
)

func TestAddAndRemove(t *testing.T) {
	s, _ := openSession(t, t.TempDir())

	n, err := s.Add(setup.RolePackage, "a", "b", "a", "")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Add returned %d, want 2", n)
	}

	if err := s.Toggle(setup.RolePackage, "a", false); err != nil {
		t.Fatal(err)
	}
	// Adding the included pair again yields a second "a" entry.
	if n, _ := s.Add(setup.RolePackage, "a"); n != 1 {
		t.Errorf("re-adding included a returned %d", n)
	}
	if s.Config.Packages.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Config.Packages.Len())
	}

	if n, _ := s.Remove(setup.RolePackage, "a"); n != 2 {
		t.Errorf("Remove returned %d, want 2", n)
	}
	if s.Config.Packages.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Config.Packages.Len())
	}
}

func TestToggleFolders(t *testing.T) {
	s, _ := openSession(t, t.TempDir())
	if err := s.Toggle(setup.RoleAudioFolder, "SFX", false); err != nil {
		t.Fatal(err)
	}
	if s.Config.AudioFolders[1].Include {
		t.Error("SFX still included")
	}
	if err := s.Toggle(setup.RoleScriptsFolder, "Nope", true); err == nil {
		t.Error("expected error for unknown folder")
	}
	if err := s.Toggle(setup.RolePackageFile, "nope", true); err == nil {
		t.Error("expected error for unknown file")
	}
}

func TestSetRejectsFolderRole(t *testing.T) {
	s, _ := openSession(t, t.TempDir())
	if _, err := s.Add(setup.RoleAudioFolder, "X"); err == nil {
		t.Error("expected error adding to a folder group")
	}
}

func TestRemoveSelectedAndClear(t *testing.T) {
	s, _ := openSession(t, t.TempDir())
	s.Add(setup.RolePackage, "a", "b", "c")
	s.Toggle(setup.RolePackage, "b", false)

	removed := s.RemoveSelectedPackages()
	if len(removed) != 2 {
		t.Errorf("removed %v", removed)
	}
	if got := setup.Names(s.Config.Packages.Entries()); len(got) != 1 || got[0] != "b" {
		t.Errorf("remaining = %v", got)
	}

	s.ClearPackages()
	if s.Config.Packages.Len() != 0 {
		t.Error("ClearPackages left entries")
	}
}

func TestSetPackagesAutoSaves(t *testing.T) {
	s, _ := openSession(t, t.TempDir())
	s.Add(setup.RolePackage, "old")

	status, err := s.SetPackages([]string{"x", "y"})
	if err != nil {
		t.Fatal(err)
	}
	if status == "" {
		t.Error("SetPackages should save with auto-save on")
	}
	got := setup.Names(s.Config.Packages.Entries())
	if len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("packages = %v", got)
	}
	if len(s.Config.Packages.Included()) != 2 {
		t.Error("replaced packages should all be included")
	}
}
