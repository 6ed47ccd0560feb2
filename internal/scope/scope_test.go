package scope

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/namanrajpal/openchamber/internal/paths"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("---\n{}\n---\n\nbody"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setup(t *testing.T) (*Resolver, string) {
	t.Helper()
	root := t.TempDir()
	return New(paths.New(filepath.Join(root, "config"))), filepath.Join(root, "work")
}

func TestLocateProjectBeatsUser(t *testing.T) {
	r, work := setup(t)
	projectPath := paths.ProjectCommandFile(work, "test")
	touch(t, projectPath)
	touch(t, r.Layout.UserCommandFile("test"))

	s, p := r.Locate("test", work)
	if s != Project || p != projectPath {
		t.Errorf("Locate = (%v, %q), want (project, %q)", s, p, projectPath)
	}
}

func TestLocateWithoutWorkDirIgnoresProject(t *testing.T) {
	r, work := setup(t)
	touch(t, paths.ProjectCommandFile(work, "test"))

	if s, p := r.Locate("test", ""); s != None || p != "" {
		t.Errorf("Locate = (%v, %q), want none", s, p)
	}
}

func TestLocateUser(t *testing.T) {
	r, work := setup(t)
	userPath := r.Layout.UserCommandFile("test")
	touch(t, userPath)

	if s, p := r.Locate("test", work); s != User || p != userPath {
		t.Errorf("Locate = (%v, %q), want (user, %q)", s, p, userPath)
	}
}

func TestResolveWriteTarget(t *testing.T) {
	t.Run("existing location wins over request", func(t *testing.T) {
		r, work := setup(t)
		userPath := r.Layout.UserCommandFile("test")
		touch(t, userPath)

		s, p := r.ResolveWriteTarget("test", work, Project)
		if s != User || p != userPath {
			t.Errorf("got (%v, %q), want existing user file", s, p)
		}
	})

	t.Run("project requested with workdir", func(t *testing.T) {
		r, work := setup(t)
		s, p := r.ResolveWriteTarget("test", work, Project)
		if s != Project || p != paths.ProjectCommandFile(work, "test") {
			t.Errorf("got (%v, %q)", s, p)
		}
	})

	t.Run("project requested without workdir falls back to user", func(t *testing.T) {
		r, _ := setup(t)
		s, p := r.ResolveWriteTarget("test", "", Project)
		if s != User || p != r.Layout.UserCommandFile("test") {
			t.Errorf("got (%v, %q)", s, p)
		}
	})

	t.Run("no request defaults to user", func(t *testing.T) {
		r, work := setup(t)
		s, p := r.ResolveWriteTarget("test", work, None)
		if s != User || p != r.Layout.UserCommandFile("test") {
			t.Errorf("got (%v, %q)", s, p)
		}
	})
}

func TestInjectedExists(t *testing.T) {
	layout := paths.New("/cfg")
	seen := map[string]bool{paths.ProjectCommandFile("/work", "x"): true}
	r := &Resolver{Layout: layout, Exists: func(p string) bool { return seen[p] }}

	if s, _ := r.Locate("x", "/work"); s != Project {
		t.Errorf("Locate with injected Exists = %v, want project", s)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Scope
		wantErr bool
	}{
		{"", None, false},
		{"user", User, false},
		{"Project", Project, false},
		{" PROJECT ", Project, false},
		{"global", None, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("Parse(%q) = (%v, %v), want (%v, err=%v)", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}
