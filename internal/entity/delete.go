package entity

import (
	"os"

	"github.com/namanrajpal/openchamber/internal/atomicfile"
	"github.com/namanrajpal/openchamber/internal/errs"
	"github.com/namanrajpal/openchamber/internal/paths"
	"github.com/namanrajpal/openchamber/internal/value"
)

// DeleteOptions configures Delete.
type DeleteOptions struct {
	// WorkDir lets scoped kinds remove project files.
	WorkDir string
}

// Delete removes name from every location: the project file (scoped kinds
// with a WorkDir), the user file, then the opencode.json record. When none
// existed, kinds with DisableWhenMissing get a {disable: true} record;
// others fail with NotFoundError.
func (s *Service) Delete(kind Kind, name string, opts DeleteOptions) (*Report, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	report := &Report{Kind: kind.Name, Name: name, Operation: "delete"}

	var files []string
	if kind.Scoped && opts.WorkDir != "" {
		files = append(files, paths.ProjectCommandFile(opts.WorkDir, name))
	}
	files = append(files, s.userFile(kind, name))

	for _, p := range files {
		if !atomicfile.Exists(p) {
			continue
		}
		if err := os.Remove(p); err != nil {
			return nil, errs.NewIOError("remove", p, err)
		}
		s.Logger.Info().Str("kind", kind.Name).Str("entity", name).Str("path", p).Msg("removed frontmatter file")
		report.Removed = append(report.Removed, p)
	}

	doc, err := s.Store.Read()
	if err != nil {
		return nil, err
	}
	if doc.RemoveEntry(kind.Section, name) {
		if err := s.Store.Write(doc); err != nil {
			return nil, err
		}
		report.Removed = append(report.Removed, s.Store.Path)
	}

	if len(report.Removed) == 0 {
		if !kind.DisableWhenMissing {
			return nil, &errs.NotFoundError{Kind: kind.Name, Name: name}
		}
		doc.SetEntry(kind.Section, name, value.Fields{"disable": value.Bool(true)})
		if err := s.Store.Write(doc); err != nil {
			return nil, err
		}
		s.Logger.Info().Str("kind", kind.Name).Str("entity", name).Msg("disabled built-in entity")
		report.Disabled = true
		report.Written = []string{s.Store.Path}
	}

	s.audit(report)
	return report, nil
}
