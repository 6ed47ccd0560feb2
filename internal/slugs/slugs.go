// Package slugs turns free-form text into names usable as agent and command
// file names.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// Name converts s to a lowercase, dash-separated file name component.
// A trailing ".md" is dropped so "Code Review.md" and "Code Review" agree.
func Name(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".md")
	return goslug.Make(s)
}

// Suggest returns Name(s) when it is a usable alternative to s, or "" when
// slugging yields nothing or leaves s unchanged.
func Suggest(s string) string {
	slugged := Name(s)
	if slugged == "" || slugged == s {
		return ""
	}
	return slugged
}
