package ui

import (
	"strings"
	"testing"
)

func TestTableAlignsColumns(t *testing.T) {
	tbl := NewTable(3)
	tbl.AddRow("build", "user", "frontmatter")
	tbl.AddRow("researcher", "", "")
	tbl.AddRow("x", "project", "structured", "dropped")

	want := "build       user     frontmatter\n" +
		"researcher\n" +
		"x           project  structured\n"
	if got := tbl.String(); got != want {
		t.Errorf("String() =\n%q\nwant\n%q", got, want)
	}
	if tbl.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tbl.Len())
	}
}

func TestEmptyTable(t *testing.T) {
	if got := NewTable(2).String(); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestTableMeasuresStyledCells(t *testing.T) {
	tbl := NewTable(2)
	tbl.AddRow(Bold.Render("ab"), "x")
	tbl.AddRow("abcd", "y")

	// Styling must not inflate the column width beyond the visible text.
	out := tbl.String()
	if len(out) == 0 {
		t.Fatal("expected output")
	}
	if !strings.Contains(out, "abcd  y\n") {
		t.Errorf("unexpected alignment: %q", out)
	}
}
