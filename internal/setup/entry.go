package setup

import (
	"fmt"
	"strings"
)

// Entry is a named, independently toggleable item. Two entries are equal only
// when both Name and Include match, so a set may hold the same name twice
// with different toggle states.
type Entry struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Include bool   `json:"include" yaml:"include" toml:"include"`
}

// NewEntry returns an Entry.
func NewEntry(name string, include bool) Entry {
	return Entry{Name: name, Include: include}
}

// Role identifies the collection an entry belongs to.
type Role int

const (
	RoleScriptsFolder Role = iota
	RoleAudioFolder
	RolePackage
	RolePackageFile
)

// String returns the CLI name of the role.
func (r Role) String() string {
	switch r {
	case RoleScriptsFolder:
		return "scripts"
	case RoleAudioFolder:
		return "audio"
	case RolePackage:
		return "package"
	case RolePackageFile:
		return "package-file"
	default:
		return "unknown"
	}
}

// ParseFolderRole maps "scripts" or "audio" to a folder role.
func ParseFolderRole(s string) (Role, error) {
	switch strings.ToLower(s) {
	case "scripts", "script":
		return RoleScriptsFolder, nil
	case "audio":
		return RoleAudioFolder, nil
	default:
		return 0, fmt.Errorf("unknown folder group %q (want scripts or audio)", s)
	}
}

// EntrySet is an insertion-ordered set of entries keyed on the (Name, Include)
// pair. The zero value is ready to use.
type EntrySet struct {
	order []Entry
	index map[Entry]struct{}
}

// NewEntrySet returns a set holding the given entries; duplicates collapse.
func NewEntrySet(entries ...Entry) *EntrySet {
	s := &EntrySet{}
	for _, e := range entries {
		s.Add(e)
	}
	return s
}

// Add inserts e. It returns false if an equal entry is already present.
func (s *EntrySet) Add(e Entry) bool {
	if s.index == nil {
		s.index = make(map[Entry]struct{})
	}
	if _, ok := s.index[e]; ok {
		return false
	}
	s.index[e] = struct{}{}
	s.order = append(s.order, e)
	return true
}

// Contains reports whether an equal entry is present.
func (s *EntrySet) Contains(e Entry) bool {
	_, ok := s.index[e]
	return ok
}

// ContainsName reports whether any entry carries name, whatever its toggle.
func (s *EntrySet) ContainsName(name string) bool {
	for _, e := range s.order {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Remove deletes e and reports whether it was present.
func (s *EntrySet) Remove(e Entry) bool {
	if !s.Contains(e) {
		return false
	}
	delete(s.index, e)
	s.filter(func(x Entry) bool { return x != e })
	return true
}

// RemoveName deletes every entry named name and returns how many went.
func (s *EntrySet) RemoveName(name string) int {
	before := len(s.order)
	s.filter(func(x Entry) bool {
		if x.Name == name {
			delete(s.index, x)
			return false
		}
		return true
	})
	return before - len(s.order)
}

// RemoveIncluded deletes every entry with Include set and returns them.
func (s *EntrySet) RemoveIncluded() []Entry {
	removed := s.Included()
	s.filter(func(x Entry) bool {
		if x.Include {
			delete(s.index, x)
			return false
		}
		return true
	})
	return removed
}

// SetInclude sets the toggle of every entry named name, keeping its position.
// If that makes two entries equal, the later one is dropped. It reports
// whether any entry matched.
func (s *EntrySet) SetInclude(name string, include bool) bool {
	matched := false
	rebuilt := make([]Entry, 0, len(s.order))
	index := make(map[Entry]struct{}, len(s.order))
	for _, e := range s.order {
		if e.Name == name {
			matched = true
			e.Include = include
		}
		if _, dup := index[e]; dup {
			continue
		}
		index[e] = struct{}{}
		rebuilt = append(rebuilt, e)
	}
	s.order, s.index = rebuilt, index
	return matched
}

// Clear removes every entry.
func (s *EntrySet) Clear() {
	s.order = nil
	s.index = nil
}

// Len returns the number of entries.
func (s *EntrySet) Len() int { return len(s.order) }

// Entries returns a copy of the entries in insertion order.
func (s *EntrySet) Entries() []Entry {
	out := make([]Entry, len(s.order))
	copy(out, s.order)
	return out
}

// Included returns the entries with Include set, in insertion order.
func (s *EntrySet) Included() []Entry {
	return IncludedOf(s.order)
}

// Equal reports whether both sets hold the same entries, ignoring order.
func (s *EntrySet) Equal(other *EntrySet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, e := range s.order {
		if !other.Contains(e) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s *EntrySet) Clone() *EntrySet {
	return NewEntrySet(s.order...)
}

func (s *EntrySet) filter(keep func(Entry) bool) {
	kept := s.order[:0]
	for _, e := range s.order {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	s.order = kept
}

// IncludedOf returns the entries of list with Include set.
func IncludedOf(list []Entry) []Entry {
	var out []Entry
	for _, e := range list {
		if e.Include {
			out = append(out, e)
		}
	}
	return out
}

// Names returns the names of entries, in order.
func Names(list []Entry) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Name
	}
	return out
}
