// Package fileref handles "{file:<path>}" values, which tell opencode to load
// a field's content from an external file instead of holding it inline.
package fileref

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/namanrajpal/openchamber/internal/atomicfile"
	"github.com/namanrajpal/openchamber/internal/errs"
	"github.com/namanrajpal/openchamber/internal/paths"
)

var referencePattern = regexp.MustCompile(`(?i)^\{file:(.+)\}$`)

// Resolver resolves references relative to the configuration root.
type Resolver struct {
	Root string
}

// IsReference reports whether s (ignoring surrounding whitespace) is a file reference.
func IsReference(s string) bool {
	return referencePattern.MatchString(strings.TrimSpace(s))
}

// Resolve returns the file a reference points at. Relative targets, with or
// without a leading "./", are joined under the root; absolute targets are
// used as-is. ok is false when s is not a reference or its target is blank.
func (r Resolver) Resolve(s string) (string, bool) {
	m := referencePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	target := strings.TrimSpace(m[1])
	if target == "" {
		return "", false
	}

	if filepath.IsAbs(target) {
		return target, true
	}
	return paths.New(r.Root).Join(target), true
}

// WriteTarget writes content to a resolved reference target, creating parent
// directories.
func WriteTarget(path, content string) error {
	if err := atomicfile.WriteFile(path, []byte(content), 0o644); err != nil {
		return errs.NewIOError("write", path, err)
	}
	return nil
}
