package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdownNormalizesTrailingNewline(t *testing.T) {
	out, err := RenderMarkdown("You are a careful **reviewer**.\n\n```go\nfmt.Println(1)\n```", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected rendered markdown to end with newline, got %q", out)
	}
	if strings.HasSuffix(out, "\n\n") {
		t.Fatalf("expected single trailing newline, got %q", out)
	}
}

func TestRenderMarkdownDefaultsWidthWhenNonPositive(t *testing.T) {
	out, err := RenderMarkdown("hello", 0)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected body text in output, got %q", out)
	}
}

func TestBodyMarkdownStyleUsesCodeTheme(t *testing.T) {
	style := bodyMarkdownStyle()
	if style.CodeBlock.Theme == "" {
		t.Fatalf("expected code blocks to use a syntax theme")
	}
	if style.Document.Margin == nil || *style.Document.Margin != MarkdownRenderMargin {
		t.Fatalf("expected document margin %d", MarkdownRenderMargin)
	}
}

func TestConfigureMarkdownCodeTheme(t *testing.T) {
	orig := markdownCodeTheme
	t.Cleanup(func() {
		markdownCodeTheme = orig
	})

	tests := []struct {
		in   string
		want string
	}{
		{"dracula", "dracula"},
		{"DrAcUlA", "dracula"},
		{" nord ", "nord"},
		{"not-a-real-theme", defaultCodeTheme},
		{"", defaultCodeTheme},
	}
	for _, tt := range tests {
		ConfigureMarkdownCodeTheme(tt.in)
		if markdownCodeTheme != tt.want {
			t.Errorf("ConfigureMarkdownCodeTheme(%q) = %q, want %q", tt.in, markdownCodeTheme, tt.want)
		}
		if got := bodyMarkdownStyle().CodeBlock.Theme; got != tt.want {
			t.Errorf("style theme after %q = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBodyMarkdownStyleHeadingPrefixes(t *testing.T) {
	style := bodyMarkdownStyle()
	if style.H1.Prefix != "# " || style.H3.Prefix != "### " || style.H6.Prefix != "###### " {
		t.Fatalf("heading prefixes = %q %q %q", style.H1.Prefix, style.H3.Prefix, style.H6.Prefix)
	}
}
