// Package shellquote quotes names for copy-pasteable command suggestions.
package shellquote

import "strings"

// Quote wraps s in single quotes, escaping any internal single quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteIfNeeded quotes s when a POSIX shell would split or expand it.
func QuoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n#[]()|!\"'$&;<>*?`\\{}~") {
		return Quote(s)
	}
	return s
}
