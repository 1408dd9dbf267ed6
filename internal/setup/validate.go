package setup

import (
	"fmt"
	"regexp"
	"strings"
)

var namespacePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ValidateNamespace checks that ns can serve both as a C# root namespace and
// as a file name component.
func ValidateNamespace(ns string) error {
	if ns == "" {
		return fmt.Errorf("namespace must not be empty")
	}
	if !namespacePattern.MatchString(ns) {
		return fmt.Errorf("invalid namespace %q: use dot-separated identifiers (letters, digits, underscores)", ns)
	}
	return nil
}

// ValidateFolderName checks that name is a single path segment.
func ValidateFolderName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("folder name must not be empty")
	case name == "." || name == "..":
		return fmt.Errorf("invalid folder name %q", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("folder name %q must not contain path separators", name)
	}
	return nil
}
