// Package reconcile decides, field by field, which store owns an update to an
// entity that may be split between a markdown frontmatter document and a
// record in opencode.json.
//
// Reconcile is pure: callers load both stores, pass their contents in, and
// persist whatever the Result marks as modified. Ownership is never stored;
// it is recomputed from field presence on every call.
package reconcile

import (
	"sort"

	"github.com/namanrajpal/openchamber/internal/errs"
	"github.com/namanrajpal/openchamber/internal/fileref"
	"github.com/namanrajpal/openchamber/internal/frontmatter"
	"github.com/namanrajpal/openchamber/internal/value"
)

// Update sets Field to Value. A null Value deletes the field.
type Update struct {
	Field string
	Value value.Value
}

// UpdatesFromMap converts a field map to updates in key order.
func UpdatesFromMap(m map[string]value.Value) []Update {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Update, 0, len(keys))
	for _, k := range keys {
		out = append(out, Update{Field: k, Value: m[k]})
	}
	return out
}

// Target names where a change landed.
type Target string

const (
	TargetFrontmatter Target = "frontmatter"
	TargetStructured  Target = "structured"
	TargetFile        Target = "file"
)

// Change records one effective write or removal.
type Change struct {
	Field   string `json:"field"`
	Target  Target `json:"target"`
	Deleted bool   `json:"deleted,omitempty"`
	Path    string `json:"path,omitempty"`
}

// FileWrite is literal content destined for a {file:...} reference target.
type FileWrite struct {
	Path    string
	Content string
}

// Input is the state of both stores for one entity plus the updates to apply.
type Input struct {
	Entity string

	// BodyField is the field held as the markdown body ("prompt" or "template").
	BodyField string

	// Frontmatter is the existing document, nil when there is no file.
	Frontmatter *frontmatter.Document

	// CreatingFrontmatter starts a new document when Frontmatter is nil.
	CreatingFrontmatter bool

	// Structured is the entity's record in opencode.json, nil when absent.
	Structured value.Fields

	Updates []Update

	// Refs resolves {file:...} body references.
	Refs fileref.Resolver
}

// Result holds the new contents of each store. A store's content is only
// meaningful when its Modified flag is set.
type Result struct {
	Frontmatter         *frontmatter.Document
	FrontmatterModified bool

	Structured         value.Fields
	StructuredModified bool

	// StructuredSuppressed is set when structured changes were dropped to keep
	// a markdown-only entity from growing an opencode.json record.
	StructuredSuppressed bool

	FileWrites []FileWrite
	Changes    []Change
}

// Reconcile applies in.Updates in order. Inputs are not mutated.
func Reconcile(in Input) (Result, error) {
	frontmatterExisted := in.Frontmatter != nil
	hadStructured := len(in.Structured) > 0

	fm := in.Frontmatter.Clone()
	if fm == nil && in.CreatingFrontmatter {
		fm = frontmatter.New()
	}
	if fm != nil && fm.Fields == nil {
		fm.Fields = value.Fields{}
	}
	structured := in.Structured.Clone()
	if structured == nil {
		structured = value.Fields{}
	}

	var res Result

	for _, u := range in.Updates {
		field, v := u.Field, u.Value

		if v.IsNull() {
			if frontmatterExisted && fm.Fields.Has(field) {
				delete(fm.Fields, field)
				res.FrontmatterModified = true
				res.Changes = append(res.Changes, Change{Field: field, Target: TargetFrontmatter, Deleted: true})
			}
			if structured.Has(field) {
				delete(structured, field)
				res.StructuredModified = true
				res.Changes = append(res.Changes, Change{Field: field, Target: TargetStructured, Deleted: true})
			}
			continue
		}

		if field == in.BodyField {
			if fm != nil {
				fm.Body = v.StringOr("")
				res.FrontmatterModified = true
				res.Changes = append(res.Changes, Change{Field: field, Target: TargetFrontmatter})
				continue
			}
			if current, ok := structured[field].AsString(); ok && fileref.IsReference(current) {
				path, ok := in.Refs.Resolve(current)
				if !ok {
					return Result{}, &errs.InvalidReferenceError{Entity: in.Entity, Field: field, Ref: current}
				}
				res.FileWrites = append(res.FileWrites, FileWrite{Path: path, Content: v.StringOr("")})
				res.Changes = append(res.Changes, Change{Field: field, Target: TargetFile, Path: path})
				continue
			}
			structured[field] = v
			res.StructuredModified = true
			res.Changes = append(res.Changes, Change{Field: field, Target: TargetStructured})
			continue
		}

		target := TargetStructured
		switch {
		case fm != nil && fm.Fields.Has(field):
			target = TargetFrontmatter
		case structured.Has(field):
			target = TargetStructured
		case frontmatterExisted && len(structured) > 0:
			// Both stores are active: new fields go to the higher-precedence store.
			target = TargetStructured
		case fm != nil:
			target = TargetFrontmatter
		}

		if target == TargetFrontmatter {
			fm.Fields[field] = v
			res.FrontmatterModified = true
		} else {
			structured[field] = v
			res.StructuredModified = true
		}
		res.Changes = append(res.Changes, Change{Field: field, Target: target})
	}

	if res.StructuredModified && suppressShadow(frontmatterExisted, hadStructured) {
		res.StructuredModified = false
		res.StructuredSuppressed = true
	}

	if res.FrontmatterModified {
		res.Frontmatter = fm
	}
	if res.StructuredModified {
		res.Structured = structured
	}
	return res, nil
}

// suppressShadow reports whether structured changes must be dropped: an
// entity that lived only in markdown never gains an opencode.json record.
func suppressShadow(frontmatterExisted, hadStructured bool) bool {
	return frontmatterExisted && !hadStructured
}
