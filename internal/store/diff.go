package store

import (
	"strings"

	"github.com/initium-labs/initium/internal/setup"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a line diff between the pretty JSON renderings of current
// and incoming. Added lines start with "+ ", removed ones with "- ", and
// unchanged ones with two spaces. Equal configurations yield "".
func Diff(current, incoming *setup.Config) string {
	a, b := render(current), render(incoming)
	if a == b {
		return ""
	}

	dmp := diffmatchpatch.New()
	ra, rb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ra, rb, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
		}
	}
	return out.String()
}

func render(cfg *setup.Config) string {
	// Marshalling a Document cannot fail.
	data, _ := setup.MarshalIndent(cfg)
	return string(data) + "\n"
}
