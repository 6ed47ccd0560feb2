package entity

import (
	"strings"

	"github.com/namanrajpal/openchamber/internal/errs"
	"github.com/namanrajpal/openchamber/internal/slugs"
)

// ValidateName rejects names that cannot be used as a markdown file name
// under the kind's directory. The error suggests a slugified alternative.
func ValidateName(name string) error {
	reason := ""
	switch {
	case strings.TrimSpace(name) == "":
		reason = "name is empty"
	case name != strings.TrimSpace(name):
		reason = "name has surrounding whitespace"
	case name == "." || name == "..":
		reason = "name is a relative directory"
	case strings.HasPrefix(name, "."):
		reason = "name starts with a dot"
	case strings.ContainsAny(name, `/\`):
		reason = "name contains a path separator"
	case strings.ContainsRune(name, 0):
		reason = "name contains a NUL byte"
	}
	if reason == "" {
		return nil
	}
	return &errs.InvalidNameError{Name: name, Reason: reason, Suggestion: slugs.Suggest(name)}
}
