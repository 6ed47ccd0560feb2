// Package frontmatter reads and writes markdown files that carry a flat YAML
// field block followed by free-text body:
//
//	---
//	description: Reviews code
//	temperature: 0.2
//	---
//
//	You are a careful reviewer.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/namanrajpal/openchamber/internal/atomicfile"
	"github.com/namanrajpal/openchamber/internal/errs"
	"github.com/namanrajpal/openchamber/internal/value"
)

var documentPattern = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---\r?\n(.*)$`)

// Policy controls what happens when the YAML block cannot be decoded.
type Policy int

const (
	// PolicyLenient treats an undecodable block as an empty field mapping.
	PolicyLenient Policy = iota
	// PolicyStrict reports an undecodable block as a ParseError.
	PolicyStrict
)

// Document is a parsed markdown file.
type Document struct {
	Fields value.Fields
	Body   string
}

// New returns an empty document.
func New() *Document {
	return &Document{Fields: value.Fields{}}
}

// Clone returns a copy whose field map can be mutated independently.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{Fields: d.Fields.Clone(), Body: d.Body}
}

// Parse splits content into fields and body.
//
// Content that does not open with a delimited block is all body. When the block
// is present but is not a YAML mapping, the lenient policy keeps the body and
// drops the fields.
func Parse(content string, policy Policy) (*Document, error) {
	m := documentPattern.FindStringSubmatch(content)
	if m == nil {
		return &Document{Fields: value.Fields{}, Body: strings.TrimSpace(content)}, nil
	}

	doc := &Document{Fields: value.Fields{}, Body: strings.TrimSpace(m[2])}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(m[1]), &raw); err != nil {
		if policy == PolicyStrict {
			return nil, &errs.ParseError{Err: fmt.Errorf("frontmatter: %w", err)}
		}
		return doc, nil
	}
	for k, v := range raw {
		doc.Fields[k] = value.FromAny(v)
	}
	return doc, nil
}

// Render serializes fields and body. Null fields are omitted: absence is the
// only representation of an unset field. An empty mapping is written as "{}"
// so the block still has a line between its delimiters.
func Render(fields value.Fields, body string) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fields.WithoutNulls().Raw()); err != nil {
		return "", fmt.Errorf("failed to marshal frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	var out strings.Builder
	out.WriteString("---\n")
	out.Write(buf.Bytes())
	out.WriteString("---\n\n")
	out.WriteString(body)
	return out.String(), nil
}

// Read loads and parses the markdown file at path.
func Read(path string, policy Policy) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewIOError("read", path, err)
	}
	doc, err := Parse(string(content), policy)
	if err != nil {
		var pe *errs.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Write renders doc and writes it to path, creating parent directories.
func Write(path string, doc *Document) error {
	content, err := Render(doc.Fields, doc.Body)
	if err != nil {
		return err
	}
	if err := atomicfile.WriteFile(path, []byte(content), 0o644); err != nil {
		return errs.NewIOError("write", path, err)
	}
	return nil
}
