package entity

import (
	"github.com/namanrajpal/openchamber/internal/fileref"
	"github.com/namanrajpal/openchamber/internal/frontmatter"
	"github.com/namanrajpal/openchamber/internal/reconcile"
	"github.com/namanrajpal/openchamber/internal/scope"
)

// UpdateOptions configures Update.
type UpdateOptions struct {
	// WorkDir lets scoped kinds find project files.
	WorkDir string
}

// Update applies updates field by field. Each field goes to the store that
// already defines it; new fields follow reconcile's precedence rules. A
// null value deletes the field from both stores.
//
// A scoped entity with no markdown file and no opencode.json record is a
// built-in being overridden: a new user-scope markdown file is started for it.
//
// Writes happen in this order: {file:...} targets, the markdown file, then
// opencode.json. The first failure aborts the rest.
func (s *Service) Update(kind Kind, name string, updates []reconcile.Update, opts UpdateOptions) (*Report, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	loc := s.locate(kind, name, opts.WorkDir)

	var fm *frontmatter.Document
	if loc.Exists {
		doc, err := frontmatter.Read(loc.Path, s.Policy)
		if err != nil {
			return nil, err
		}
		fm = doc
	}

	doc, err := s.Store.Read()
	if err != nil {
		return nil, err
	}
	record, hasRecord := doc.Entry(kind.Section, name)

	creating := kind.Scoped && !loc.Exists && !hasRecord
	if creating {
		loc.Scope, loc.Path = s.Scopes.ResolveWriteTarget(name, opts.WorkDir, scope.User)
	}

	res, err := reconcile.Reconcile(reconcile.Input{
		Entity:              name,
		BodyField:           kind.BodyField,
		Frontmatter:         fm,
		CreatingFrontmatter: creating,
		Structured:          record,
		Updates:             updates,
		Refs:                s.Refs,
	})
	if err != nil {
		return nil, err
	}

	report := &Report{
		Kind:      kind.Name,
		Name:      name,
		Operation: "update",
		Scope:     loc.Scope,
		Changes:   res.Changes,
	}

	for _, fw := range res.FileWrites {
		if err := fileref.WriteTarget(fw.Path, fw.Content); err != nil {
			return nil, err
		}
		s.Logger.Info().Str("kind", kind.Name).Str("entity", name).Str("path", fw.Path).Msg("wrote referenced file")
		report.Written = append(report.Written, fw.Path)
	}

	if res.FrontmatterModified {
		if err := frontmatter.Write(loc.Path, res.Frontmatter); err != nil {
			return nil, err
		}
		s.Logger.Info().Str("kind", kind.Name).Str("entity", name).Str("path", loc.Path).Msg("wrote frontmatter")
		report.Written = append(report.Written, loc.Path)
	}

	if res.StructuredSuppressed {
		report.StructuredSuppressed = true
		s.Logger.Warn().
			Str("kind", kind.Name).
			Str("entity", name).
			Msg("skipped opencode.json write for markdown-only entity")
	}

	if res.StructuredModified {
		doc.SetEntry(kind.Section, name, res.Structured)
		if err := s.Store.Write(doc); err != nil {
			return nil, err
		}
		report.Written = append(report.Written, s.Store.Path)
	}

	if len(report.Written) > 0 {
		s.audit(report)
	}
	return report, nil
}
