package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 120

// DisplayContext describes the writer a command prints to.
type DisplayContext struct {
	TermWidth int  // detected or fallback terminal width
	IsTTY     bool // whether the writer is a terminal
}

// NewDisplayContext inspects w. Only an *os.File attached to a terminal is
// treated as a TTY; buffers and pipes get the fallback width.
func NewDisplayContext(w io.Writer) *DisplayContext {
	d := &DisplayContext{TermWidth: DefaultTermWidth}

	f, ok := w.(*os.File)
	if !ok {
		return d
	}
	fd := f.Fd()
	if !term.IsTerminal(fd) {
		return d
	}
	d.IsTTY = true
	if width, _, err := term.GetSize(fd); err == nil && width > 0 {
		d.TermWidth = width
	}
	return d
}

// NewDisplayContextWithWidth creates a TTY DisplayContext with a fixed width (for testing).
func NewDisplayContextWithWidth(width int) *DisplayContext {
	return &DisplayContext{
		TermWidth: width,
		IsTTY:     true,
	}
}

// AvailableWidth returns the usable width after accounting for left margin.
func (d *DisplayContext) AvailableWidth(leftMargin int) int {
	return d.TermWidth - leftMargin
}

// RenderBody renders a prompt or template body for this display: glamour on
// a terminal unless raw is set, the text as-is otherwise.
func (d *DisplayContext) RenderBody(body string, raw bool) string {
	if raw || !d.IsTTY {
		return body + "\n"
	}
	rendered, err := RenderMarkdown(body, d.AvailableWidth(MarkdownRenderMargin))
	if err != nil {
		return body + "\n"
	}
	return rendered
}
