package setup

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedConfig matches every *MalformedConfigError via errors.Is.
var ErrMalformedConfig = errors.New("malformed config")

// MalformedConfigError reports text that is not a valid serialized Config.
type MalformedConfigError struct {
	Source string   // file path or store key, may be empty
	Issues []string // schema issues, if validation ran
	Err    error
}

func (e *MalformedConfigError) Error() string {
	var b strings.Builder
	b.WriteString("malformed config")
	if e.Source != "" {
		fmt.Fprintf(&b, " %s", e.Source)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Issues) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Issues, "; "))
	}
	return b.String()
}

func (e *MalformedConfigError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMalformedConfig) hold.
func (e *MalformedConfigError) Is(target error) bool { return target == ErrMalformedConfig }
