package registry

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var packageNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Identifier is a parsed package identifier: "name", "name@constraint",
// a git or file URL, or "name@url".
type Identifier struct {
	Name       string
	Constraint string // semver constraint, empty for "latest"
	URL        string // set for git and file identifiers
}

// IsURL reports whether the package is fetched from a URL rather than the
// registry.
func (id Identifier) IsURL() bool { return id.URL != "" }

// Source returns where the package comes from.
func (id Identifier) Source() string {
	switch {
	case strings.HasPrefix(id.URL, "file:"):
		return SourceLocal
	case id.URL != "":
		return SourceGit
	default:
		return SourceRegistry
	}
}

func (id Identifier) String() string {
	switch {
	case id.URL != "":
		return id.Name + "@" + id.URL
	case id.Constraint != "":
		return id.Name + "@" + id.Constraint
	default:
		return id.Name
	}
}

func isURL(s string) bool {
	for _, prefix := range []string{"https://", "http://", "git+", "git@", "ssh://", "file:"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// ParseIdentifier parses a package identifier. Names must be lower-case
// reverse-domain style; constraints must parse as semver constraints.
func ParseIdentifier(s string) (Identifier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Identifier{}, serviceErrorf(ErrInvalidParameter, "package identifier must not be empty")
	}

	if isURL(s) {
		name := nameFromURL(s)
		if !packageNamePattern.MatchString(name) {
			return Identifier{}, serviceErrorf(ErrInvalidParameter, "cannot derive a package name from %s; use name@url", s)
		}
		return Identifier{Name: name, URL: s}, nil
	}

	name, rest, hasAt := strings.Cut(s, "@")
	if !packageNamePattern.MatchString(name) {
		return Identifier{}, serviceErrorf(ErrInvalidParameter, "invalid package name %q", name)
	}
	if !hasAt {
		return Identifier{Name: name}, nil
	}
	if rest == "" {
		return Identifier{}, serviceErrorf(ErrInvalidParameter, "missing version after @ in %q", s)
	}
	if isURL(rest) {
		return Identifier{Name: name, URL: rest}, nil
	}
	if _, err := semver.NewConstraint(rest); err != nil {
		return Identifier{}, serviceErrorf(ErrInvalidParameter, "invalid version %q for %s: %v", rest, name, err)
	}
	return Identifier{Name: name, Constraint: rest}, nil
}

// nameFromURL takes the last path segment of a URL, without a ".git"
// suffix, fragment or query.
func nameFromURL(u string) string {
	u, _, _ = strings.Cut(u, "#")
	u, _, _ = strings.Cut(u, "?")
	u = strings.TrimPrefix(u, "file:")
	u = strings.TrimRight(u, "/")
	if i := strings.LastIndexAny(u, ":/"); i >= 0 {
		u = u[i+1:]
	}
	return strings.ToLower(strings.TrimSuffix(path.Base(u), ".git"))
}

// resolveVersion picks the version to install: the highest version matching
// the constraint, or the "latest" dist-tag when there is none.
func resolveVersion(doc *packument, constraint string) (string, error) {
	if constraint == "" {
		if latest := doc.DistTags["latest"]; latest != "" {
			if _, ok := doc.Versions[latest]; ok {
				return latest, nil
			}
		}
		constraint = "*"
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return "", serviceErrorf(ErrInvalidParameter, "invalid version %q: %v", constraint, err)
	}

	var candidates []*semver.Version
	for v := range doc.Versions {
		sv, err := semver.NewVersion(v)
		if err != nil {
			continue
		}
		if c.Check(sv) {
			candidates = append(candidates, sv)
		}
	}
	if len(candidates) == 0 {
		return "", serviceErrorf(ErrNotFound, "no version of %s matches %s", doc.Name, constraint)
	}

	sort.Sort(semver.Collection(candidates))
	return candidates[len(candidates)-1].Original(), nil
}

// Validate checks an identifier without contacting the registry.
func Validate(identifier string) error {
	_, err := ParseIdentifier(identifier)
	if err != nil {
		return fmt.Errorf("invalid package %q: %w", identifier, err)
	}
	return nil
}
