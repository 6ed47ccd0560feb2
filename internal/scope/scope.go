// Package scope decides which command markdown file is authoritative when a
// command can live in a project (<workdir>/.opencode/command) or in the
// user's config root. Scope is recomputed on every call, never cached.
package scope

import (
	"fmt"
	"strings"

	"github.com/namanrajpal/openchamber/internal/atomicfile"
	"github.com/namanrajpal/openchamber/internal/paths"
)

// Scope is the location class of a command file.
type Scope int

const (
	None Scope = iota
	User
	Project
)

func (s Scope) String() string {
	switch s {
	case User:
		return "user"
	case Project:
		return "project"
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Parse converts "user"/"project" (any case) to a Scope. The empty string is None.
func Parse(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return None, nil
	case "user":
		return User, nil
	case "project":
		return Project, nil
	}
	return None, fmt.Errorf("unknown scope %q (want user or project)", s)
}

// Resolver locates command files. Exists defaults to a stat check.
type Resolver struct {
	Layout paths.Layout
	Exists func(path string) bool
}

// New creates a Resolver that checks the real filesystem.
func New(layout paths.Layout) *Resolver {
	return &Resolver{Layout: layout, Exists: atomicfile.Exists}
}

func (r *Resolver) exists(path string) bool {
	if r.Exists == nil {
		return atomicfile.Exists(path)
	}
	return r.Exists(path)
}

// Locate returns the scope and path of the existing markdown file for name.
// A project file wins over a user file. workDir may be empty.
func (r *Resolver) Locate(name, workDir string) (Scope, string) {
	if workDir != "" {
		if p := paths.ProjectCommandFile(workDir, name); r.exists(p) {
			return Project, p
		}
	}
	if p := r.Layout.UserCommandFile(name); r.exists(p) {
		return User, p
	}
	return None, ""
}

// ResolveWriteTarget returns where a command's markdown should be written.
// An existing file always wins; otherwise the requested scope is honored,
// with Project falling back to User when there is no workDir.
func (r *Resolver) ResolveWriteTarget(name, workDir string, requested Scope) (Scope, string) {
	if s, p := r.Locate(name, workDir); p != "" {
		return s, p
	}
	return r.Target(name, workDir, requested)
}

// Target returns the path for the requested scope without looking at existing files.
func (r *Resolver) Target(name, workDir string, requested Scope) (Scope, string) {
	if requested == Project && workDir != "" {
		return Project, paths.ProjectCommandFile(workDir, name)
	}
	return User, r.Layout.UserCommandFile(name)
}
