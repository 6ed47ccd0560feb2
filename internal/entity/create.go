package entity

import (
	"github.com/namanrajpal/openchamber/internal/atomicfile"
	"github.com/namanrajpal/openchamber/internal/errs"
	"github.com/namanrajpal/openchamber/internal/frontmatter"
	"github.com/namanrajpal/openchamber/internal/paths"
	"github.com/namanrajpal/openchamber/internal/scope"
	"github.com/namanrajpal/openchamber/internal/value"
)

// ScopeField is a transient field accepted by command creation to pick the
// target scope. It is never written.
const ScopeField = "scope"

// CreateOptions configures Create.
type CreateOptions struct {
	// WorkDir enables the project scope for scoped kinds.
	WorkDir string

	// Scope requests a location for scoped kinds. When None, a string
	// "scope" field in the supplied fields is used instead.
	Scope scope.Scope
}

// Create writes a new markdown file for name holding fields, with the body
// field moved into the document body. It fails with AlreadyExistsError when
// any markdown location or the opencode.json section already has the name.
// opencode.json is never written.
func (s *Service) Create(kind Kind, name string, fields value.Fields, opts CreateOptions) (*Report, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	fields = fields.Clone()
	if fields == nil {
		fields = value.Fields{}
	}

	requested := opts.Scope
	if kind.Scoped {
		if hint, ok := fields[ScopeField].AsString(); ok && requested == scope.None {
			parsed, err := scope.Parse(hint)
			if err != nil {
				return nil, err
			}
			requested = parsed
		}
		delete(fields, ScopeField)
	}

	if err := s.checkAvailable(kind, name, opts.WorkDir); err != nil {
		return nil, err
	}

	target := location{Path: s.Layout.AgentFile(name)}
	if kind.Scoped {
		target.Scope, target.Path = s.Scopes.Target(name, opts.WorkDir, requested)
	}

	body := fields[kind.BodyField].StringOr("")
	delete(fields, kind.BodyField)

	if err := frontmatter.Write(target.Path, &frontmatter.Document{Fields: fields, Body: body}); err != nil {
		return nil, err
	}

	s.Logger.Info().
		Str("kind", kind.Name).
		Str("entity", name).
		Str("path", target.Path).
		Stringer("scope", target.Scope).
		Msg("created entity")

	report := &Report{
		Kind:      kind.Name,
		Name:      name,
		Operation: "create",
		Scope:     target.Scope,
		Written:   []string{target.Path},
	}
	s.audit(report)
	return report, nil
}

// checkAvailable reports AlreadyExistsError when name is taken anywhere.
func (s *Service) checkAvailable(kind Kind, name, workDir string) error {
	candidates := []string{s.userFile(kind, name)}
	if kind.Scoped && workDir != "" {
		candidates = append([]string{paths.ProjectCommandFile(workDir, name)}, candidates...)
	}
	for _, p := range candidates {
		if atomicfile.Exists(p) {
			return &errs.AlreadyExistsError{Kind: kind.Name, Name: name, Location: p}
		}
	}

	doc, err := s.Store.Read()
	if err != nil {
		return err
	}
	if doc.HasEntry(kind.Section, name) {
		return &errs.AlreadyExistsError{Kind: kind.Name, Name: name, Location: s.Store.Path}
	}
	return nil
}
