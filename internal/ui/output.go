package ui

import "fmt"

// Unicode symbols for status indicators
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

// Successf returns a formatted success line.
func Successf(format string, args ...interface{}) string {
	return SymbolSuccess + " " + fmt.Sprintf(format, args...)
}

// Warning returns a warning line.
func Warning(msg string) string {
	return SymbolWarning + " " + msg
}

// Infof returns a formatted info line.
func Infof(format string, args ...interface{}) string {
	return SymbolInfo + " " + fmt.Sprintf(format, args...)
}

// Mark renders a presence check: a checkmark or a cross.
func Mark(ok bool) string {
	if ok {
		return SymbolSuccess
	}
	return Muted.Render(SymbolError)
}

// Header returns a styled section header
func Header(msg string) string {
	return AccentBold.Render(msg)
}

// FilePath returns an accent-styled file path
func FilePath(path string) string {
	return Accent.Render(path)
}

// Hint returns muted hint text
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Count returns a count badge such as "(3 agents)". noun is pluralized with
// a trailing "s".
func Count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("(%d %s)", n, noun)
	}
	return fmt.Sprintf("(%d %ss)", n, noun)
}
