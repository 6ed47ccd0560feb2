// Package configfile reads and writes opencode.json, the structured document
// holding per-kind sections ("agent", "command", ...) of entity records.
//
// The file may be JSONC: // and /* */ comments and trailing commas are
// accepted. Comments are not preserved on write. Number literals and
// markup characters in strings are written back as they were read.
package configfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/tailscale/hujson"

	"github.com/namanrajpal/openchamber/internal/atomicfile"
	"github.com/namanrajpal/openchamber/internal/errs"
	"github.com/namanrajpal/openchamber/internal/value"
)

// Document is the top-level mapping of opencode.json. Sections and entries
// that are not touched pass through unchanged.
type Document struct {
	root value.Fields
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{root: value.Fields{}}
}

// FromFields wraps an existing top-level mapping.
func FromFields(root value.Fields) *Document {
	if root == nil {
		root = value.Fields{}
	}
	return &Document{root: root}
}

// Root returns the top-level mapping.
func (d *Document) Root() value.Fields {
	return d.root
}

// Section returns the mapping stored under key, if it is a mapping.
func (d *Document) Section(key string) (value.Fields, bool) {
	v, ok := d.root[key]
	if !ok {
		return nil, false
	}
	return v.AsMapping()
}

// Entry returns the fields-object for name within a section. A record that
// is present but not an object reports ok=true with nil fields.
func (d *Document) Entry(section, name string) (value.Fields, bool) {
	sec, ok := d.Section(section)
	if !ok {
		return nil, false
	}
	v, ok := sec[name]
	if !ok {
		return nil, false
	}
	fields, _ := v.AsMapping()
	return fields, true
}

// HasEntry reports whether the section contains name.
func (d *Document) HasEntry(section, name string) bool {
	_, ok := d.Entry(section, name)
	return ok
}

// Names returns the sorted entry names of a section.
func (d *Document) Names(section string) []string {
	sec, ok := d.Section(section)
	if !ok {
		return nil
	}
	return sec.Keys()
}

// SetEntry stores fields under section/name, creating the section (or
// replacing a non-object section) as needed.
func (d *Document) SetEntry(section, name string, fields value.Fields) {
	sec, ok := d.Section(section)
	if !ok {
		sec = value.Fields{}
	} else {
		sec = sec.Clone()
	}
	sec[name] = value.Mapping(fields.Clone())
	d.root[section] = value.Mapping(sec)
}

// RemoveEntry deletes section/name and reports whether it existed.
func (d *Document) RemoveEntry(section, name string) bool {
	sec, ok := d.Section(section)
	if !ok || !sec.Has(name) {
		return false
	}
	sec = sec.Clone()
	delete(sec, name)
	d.root[section] = value.Mapping(sec)
	return true
}

// MarshalJSON renders the document with stable (sorted) key order.
func (d *Document) MarshalJSON() ([]byte, error) {
	return value.EncodeJSON(d.root, "")
}

// Store persists a Document at Path. When Backup is set, the previous file
// content is copied to BackupPath before every write.
type Store struct {
	Path       string
	BackupPath string
	Backup     bool
	Logger     zerolog.Logger
}

// NewStore creates a Store that backs up before writing.
func NewStore(path, backupPath string, logger zerolog.Logger) *Store {
	return &Store{Path: path, BackupPath: backupPath, Backup: true, Logger: logger}
}

// Read loads the document. A missing or blank file is an empty document.
func (s *Store) Read() (*Document, error) {
	content, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), nil
		}
		return nil, errs.NewIOError("read", s.Path, err)
	}

	items, err := decodeJSONC(content)
	if err != nil {
		return nil, &errs.ParseError{Path: s.Path, Err: err}
	}
	switch len(items) {
	case 0:
		return NewDocument(), nil
	case 1:
	default:
		return nil, &errs.ParseError{Path: s.Path, Err: fmt.Errorf("found %d top-level values, want one object", len(items))}
	}

	raw := items[0]
	root, ok := value.FieldsFromAny(raw)
	if !ok {
		return nil, &errs.ParseError{Path: s.Path, Err: fmt.Errorf("top level is %s, want object", value.FromAny(raw).Kind())}
	}
	return FromFields(root), nil
}

// Write backs up the current file (overwriting any earlier backup) and then
// writes doc as indented JSON. There is no rollback if the write fails after
// the backup succeeded.
func (s *Store) Write(doc *Document) error {
	if s.Backup && s.BackupPath != "" && atomicfile.Exists(s.Path) {
		if err := atomicfile.Copy(s.Path, s.BackupPath); err != nil {
			return errs.NewIOError("backup", s.BackupPath, err)
		}
		s.Logger.Debug().Str("path", s.BackupPath).Msg("created config backup")
	}

	data, err := value.EncodeJSON(doc.root, "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := atomicfile.WriteFile(s.Path, data, 0); err != nil {
		return errs.NewIOError("write", s.Path, err)
	}
	s.Logger.Info().Str("path", s.Path).Msg("wrote config file")
	return nil
}

// decodeJSONC parses content as JSONC and returns its top-level values. The
// content is wrapped in an array first so that a blank or comment-only file
// decodes to no values instead of an error.
func decodeJSONC(content []byte) ([]any, error) {
	wrapped := make([]byte, 0, len(content)+3)
	wrapped = append(wrapped, '[')
	wrapped = append(wrapped, content...)
	wrapped = append(wrapped, '\n', ']')

	standard, err := hujson.Standardize(wrapped)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(standard))
	dec.UseNumber()
	var items []any
	if err := dec.Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}
