// Package entity manages agents and commands whose fields may be split
// between a markdown file with YAML frontmatter and a record in
// opencode.json.
//
// Every operation loads both stores fresh, decides field ownership with
// reconcile.Reconcile, and writes back only the stores that changed. There
// are no locks: concurrent callers race and the last writer wins. Writes to
// different files are not atomic as a group; a failure part way through an
// update can leave one store written and the other not.
package entity

import (
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/namanrajpal/openchamber/internal/atomicfile"
	"github.com/namanrajpal/openchamber/internal/audit"
	"github.com/namanrajpal/openchamber/internal/configfile"
	"github.com/namanrajpal/openchamber/internal/errs"
	"github.com/namanrajpal/openchamber/internal/fileref"
	"github.com/namanrajpal/openchamber/internal/frontmatter"
	"github.com/namanrajpal/openchamber/internal/paths"
	"github.com/namanrajpal/openchamber/internal/reconcile"
	"github.com/namanrajpal/openchamber/internal/scope"
	"github.com/namanrajpal/openchamber/internal/value"
)

// Options configures a Service.
type Options struct {
	// Policy controls how undecodable frontmatter is handled.
	Policy frontmatter.Policy

	// DisableBackup skips the opencode.json backup before writes.
	DisableBackup bool

	// Logger receives store writes at info and suppressed writes at warn.
	Logger zerolog.Logger

	// Audit records lifecycle operations. Nil disables auditing.
	Audit *audit.Logger
}

// Service runs lifecycle operations against one configuration root.
type Service struct {
	Layout paths.Layout
	Store  *configfile.Store
	Scopes *scope.Resolver
	Refs   fileref.Resolver
	Policy frontmatter.Policy
	Logger zerolog.Logger
	Audit  *audit.Logger
}

// New creates a Service rooted at layout.Root.
func New(layout paths.Layout, opts Options) *Service {
	store := configfile.NewStore(layout.ConfigFile(), layout.BackupFile(), opts.Logger)
	store.Backup = !opts.DisableBackup

	return &Service{
		Layout: layout,
		Store:  store,
		Scopes: scope.New(layout),
		Refs:   fileref.Resolver{Root: layout.Root},
		Policy: opts.Policy,
		Logger: opts.Logger,
		Audit:  opts.Audit,
	}
}

// location is where an entity's markdown file lives, if anywhere.
type location struct {
	Scope  scope.Scope
	Path   string
	Exists bool
}

// locate finds the authoritative markdown file for name. For unscoped kinds
// Path is always set, even when the file does not exist.
func (s *Service) locate(kind Kind, name, workDir string) location {
	if !kind.Scoped {
		p := s.Layout.AgentFile(name)
		return location{Path: p, Exists: atomicfile.Exists(p)}
	}
	sc, p := s.Scopes.Locate(name, workDir)
	return location{Scope: sc, Path: p, Exists: p != ""}
}

// userFile is the non-project markdown path for name.
func (s *Service) userFile(kind Kind, name string) string {
	if kind.Scoped {
		return s.Layout.UserCommandFile(name)
	}
	return s.Layout.AgentFile(name)
}

func (s *Service) dir(kind Kind) string {
	if kind.Scoped {
		return s.Layout.CommandDir()
	}
	return s.Layout.AgentDir()
}

// SourceInfo describes one store's view of an entity.
type SourceInfo struct {
	Exists bool        `json:"exists"`
	Path   string      `json:"path,omitempty"`
	Fields []string    `json:"fields"`
	Scope  scope.Scope `json:"scope,omitempty"`
}

// FileLocation is a candidate markdown path for a scoped entity.
type FileLocation struct {
	Exists bool   `json:"exists"`
	Path   string `json:"path,omitempty"`
}

// Sources reports where an entity's fields are defined.
type Sources struct {
	Frontmatter SourceInfo `json:"frontmatter"`
	Structured  SourceInfo `json:"structured"`

	// Project and User are set for scoped kinds only.
	Project *FileLocation `json:"project_frontmatter,omitempty"`
	User    *FileLocation `json:"user_frontmatter,omitempty"`
}

// Sources reports which stores define name and which fields each holds. The
// body field is listed for the frontmatter store when the body is not blank.
func (s *Service) Sources(kind Kind, name, workDir string) (*Sources, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	src, _, _, err := s.sources(kind, name, workDir)
	return src, err
}

func (s *Service) sources(kind Kind, name, workDir string) (*Sources, *frontmatter.Document, value.Fields, error) {
	loc := s.locate(kind, name, workDir)

	out := &Sources{
		Frontmatter: SourceInfo{Exists: loc.Exists, Fields: []string{}, Scope: loc.Scope},
		Structured:  SourceInfo{Path: s.Layout.ConfigFile(), Fields: []string{}},
	}

	var fm *frontmatter.Document
	if loc.Exists {
		doc, err := frontmatter.Read(loc.Path, s.Policy)
		if err != nil {
			return nil, nil, nil, err
		}
		fm = doc
		out.Frontmatter.Path = loc.Path
		out.Frontmatter.Fields = append(out.Frontmatter.Fields, doc.Fields.Keys()...)
		if doc.Body != "" {
			out.Frontmatter.Fields = append(out.Frontmatter.Fields, kind.BodyField)
		}
	}

	doc, err := s.Store.Read()
	if err != nil {
		return nil, nil, nil, err
	}
	record, ok := doc.Entry(kind.Section, name)
	out.Structured.Exists = ok
	out.Structured.Fields = append(out.Structured.Fields, record.Keys()...)

	if kind.Scoped {
		user := s.Layout.UserCommandFile(name)
		out.User = &FileLocation{Exists: atomicfile.Exists(user), Path: user}
		out.Project = &FileLocation{}
		if workDir != "" {
			project := paths.ProjectCommandFile(workDir, name)
			out.Project = &FileLocation{Exists: atomicfile.Exists(project), Path: project}
		}
	}

	return out, fm, record, nil
}

// Entity is the merged view of an entity across both stores.
type Entity struct {
	Kind    string       `json:"kind"`
	Name    string       `json:"name"`
	Fields  value.Fields `json:"fields"`
	Sources *Sources     `json:"sources"`

	// ResolvedBody holds the content of a {file:...} body reference when
	// the referenced file could be read.
	ResolvedBody string `json:"resolved_body,omitempty"`
}

// Body returns the body field as text.
func (e *Entity) Body() string {
	return e.Fields[bodyFieldFor(e.Kind)].StringOr("")
}

func bodyFieldFor(kind string) string {
	k, err := ParseKind(kind)
	if err != nil {
		return ""
	}
	return k.BodyField
}

// Get returns the merged view of name. Frontmatter fields and the body come
// first; the opencode.json record is overlaid on top since it takes
// precedence. An entity found in neither store is a NotFoundError.
func (s *Service) Get(kind Kind, name, workDir string) (*Entity, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	src, fm, record, err := s.sources(kind, name, workDir)
	if err != nil {
		return nil, err
	}
	if !src.Frontmatter.Exists && !src.Structured.Exists {
		return nil, &errs.NotFoundError{Kind: kind.Name, Name: name}
	}

	merged := value.Fields{}
	if fm != nil {
		for k, v := range fm.Fields {
			merged[k] = v
		}
		if fm.Body != "" {
			merged[kind.BodyField] = value.String(fm.Body)
		}
	}
	for k, v := range record {
		merged[k] = v
	}

	e := &Entity{Kind: kind.Name, Name: name, Fields: merged, Sources: src}
	if ref, ok := merged[kind.BodyField].AsString(); ok && fileref.IsReference(ref) {
		if path, ok := s.Refs.Resolve(ref); ok {
			if data, err := os.ReadFile(path); err == nil {
				e.ResolvedBody = string(data)
			} else {
				s.Logger.Debug().Err(err).Str("path", path).Msg("could not read body reference")
			}
		}
	}
	return e, nil
}

// Summary is one row of List.
type Summary struct {
	Name        string      `json:"name"`
	Scope       scope.Scope `json:"scope,omitempty"`
	Frontmatter bool        `json:"frontmatter"`
	Structured  bool        `json:"structured"`
	Disabled    bool        `json:"disabled,omitempty"`
}

// List returns every entity of kind found in either store, sorted by name.
// Scoped kinds include project files when workDir is set.
func (s *Service) List(kind Kind, workDir string) ([]Summary, error) {
	byName := map[string]*Summary{}
	get := func(name string) *Summary {
		if sum, ok := byName[name]; ok {
			return sum
		}
		sum := &Summary{Name: name}
		byName[name] = sum
		return sum
	}

	if kind.Scoped && workDir != "" {
		names, err := markdownNames(paths.ProjectCommandDir(workDir))
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			sum := get(n)
			sum.Frontmatter = true
			sum.Scope = scope.Project
		}
	}

	names, err := markdownNames(s.dir(kind))
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		sum := get(n)
		sum.Frontmatter = true
		if kind.Scoped && sum.Scope == scope.None {
			sum.Scope = scope.User
		}
	}

	doc, err := s.Store.Read()
	if err != nil {
		return nil, err
	}
	for _, n := range doc.Names(kind.Section) {
		sum := get(n)
		sum.Structured = true
		record, _ := doc.Entry(kind.Section, n)
		if disabled, ok := record["disable"].AsBool(); ok && disabled {
			sum.Disabled = true
		}
	}

	out := make([]Summary, 0, len(byName))
	for _, sum := range byName {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func markdownNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errs.NewIOError("read", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := paths.NameFromFile(e.Name()); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Report describes what an operation changed.
type Report struct {
	Kind      string      `json:"kind"`
	Name      string      `json:"name"`
	Operation string      `json:"operation"`
	Scope     scope.Scope `json:"scope,omitempty"`

	// Written and Removed list files touched, in the order they were touched.
	Written []string `json:"written,omitempty"`
	Removed []string `json:"removed,omitempty"`

	Changes []reconcile.Change `json:"changes,omitempty"`

	Disabled             bool `json:"disabled,omitempty"`
	StructuredSuppressed bool `json:"structured_suppressed,omitempty"`
}
