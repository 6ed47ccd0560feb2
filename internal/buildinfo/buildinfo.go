// Package buildinfo holds release metadata injected at link time, e.g.
//
//	go build -ldflags "-X github.com/namanrajpal/openchamber/internal/buildinfo.Version=v0.3.0"
//
// The values are empty for local builds; the version command then falls back
// to runtime/debug build info.
package buildinfo

var (
	Version = ""
	Commit  = ""
	Date    = ""
)
