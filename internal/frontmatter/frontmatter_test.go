package frontmatter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/namanrajpal/openchamber/internal/errs"
	"github.com/namanrajpal/openchamber/internal/value"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantFields value.Fields
		wantBody   string
	}{
		{
			name: "basic document",
			content: `---
description: Finds things
temperature: 0.2
---

Find things`,
			wantFields: value.Fields{
				"description": value.String("Finds things"),
				"temperature": value.Number(0.2),
			},
			wantBody: "Find things",
		},
		{
			name:       "no frontmatter",
			content:    "\n  Just a prompt\n\n",
			wantFields: value.Fields{},
			wantBody:   "Just a prompt",
		},
		{
			name:       "windows line endings",
			content:    "---\r\nmodel: gpt\r\n---\r\nBody",
			wantFields: value.Fields{"model": value.String("gpt")},
			wantBody:   "Body",
		},
		{
			name:       "no blank line before body",
			content:    "---\nsubtask: true\n---\nRun tests",
			wantFields: value.Fields{"subtask": value.Bool(true)},
			wantBody:   "Run tests",
		},
		{
			name:       "unclosed block is body",
			content:    "---\nmodel: gpt\nno closing",
			wantFields: value.Fields{},
			wantBody:   "---\nmodel: gpt\nno closing",
		},
		{
			name: "nested values",
			content: `---
tools:
  bash: false
  write: true
---
`,
			wantFields: value.Fields{
				"tools": value.Mapping(value.Fields{
					"bash":  value.Bool(false),
					"write": value.Bool(true),
				}),
			},
			wantBody: "",
		},
		{
			name:       "malformed yaml degrades to empty fields",
			content:    "---\nkey: [unclosed\n---\n\nStill usable",
			wantFields: value.Fields{},
			wantBody:   "Still usable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.content, PolicyLenient)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !doc.Fields.Equal(tt.wantFields) {
				t.Errorf("fields mismatch:\n got %v\nwant %v", doc.Fields.Raw(), tt.wantFields.Raw())
			}
			if doc.Body != tt.wantBody {
				t.Errorf("body = %q, want %q", doc.Body, tt.wantBody)
			}
		})
	}
}

func TestParseStrictPolicy(t *testing.T) {
	_, err := Parse("---\nkey: [unclosed\n---\n\nbody", PolicyStrict)
	if !errors.Is(err, errs.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}

	doc, err := Parse("---\nkey: ok\n---\n\nbody", PolicyStrict)
	if err != nil {
		t.Fatalf("valid block rejected: %v", err)
	}
	if !doc.Fields.Has("key") {
		t.Errorf("expected key field")
	}
}

func TestRenderOmitsNulls(t *testing.T) {
	out, err := Render(value.Fields{
		"temperature": value.Null(),
		"model":       value.String("anthropic/claude"),
	}, "Prompt body")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "---\nmodel: anthropic/claude\n---\n\nPrompt body"
	if out != want {
		t.Errorf("Render output:\n%s\nwant:\n%s", out, want)
	}
	if strings.Contains(out, "temperature") {
		t.Errorf("null field was serialized")
	}
}

func TestRenderEmptyFieldsStillParses(t *testing.T) {
	out, err := Render(value.Fields{}, "Body only")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc, err := Parse(out, PolicyStrict)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Fields) != 0 || doc.Body != "Body only" {
		t.Errorf("got fields=%v body=%q", doc.Fields.Raw(), doc.Body)
	}
}

func TestRoundTrip(t *testing.T) {
	fields := value.Fields{
		"description": value.String("Reviews code: carefully"),
		"temperature": value.Number(0.2),
		"steps":       value.Number(12),
		"disable":     value.Bool(false),
		"tags":        value.Sequence([]value.Value{value.String("a"), value.String("b")}),
		"tools": value.Mapping(value.Fields{
			"bash": value.Bool(false),
		}),
		"quoted":      value.String("yes"),
		"number_like": value.String("0.5"),
	}
	body := "You are a reviewer.\n\n## Rules\n\n- be kind"

	path := filepath.Join(t.TempDir(), "agent", "reviewer.md")
	if err := Write(path, &Document{Fields: fields, Body: body}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	doc, err := Read(path, PolicyStrict)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff(fields.Raw(), doc.Fields.Raw()); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if doc.Body != body {
		t.Errorf("body = %q, want %q", doc.Body, body)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.md"), PolicyLenient)
	if !errors.Is(err, errs.ErrIO) {
		t.Fatalf("expected io error, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist cause, got %v", err)
	}
}

func TestReadStrictSetsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.md")
	if err := os.WriteFile(path, []byte("---\nkey: [unclosed\n---\nbody"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Read(path, PolicyStrict)
	var pe *errs.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", pe.Path, path)
	}
}
