package cli

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/namanrajpal/openchamber/internal/buildinfo"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	prev := readBuildInfo
	t.Cleanup(func() { readBuildInfo = prev })
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func TestCurrentVersionInfoFromBuildInfo(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.23.4",
		Main:      debug.Module{Path: "github.com/namanrajpal/openchamber", Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-02-14T17:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	want := versionInfo{
		Version:  "v1.2.3",
		Commit:   "abc123",
		Date:     "2026-02-14T17:00:00Z",
		Dirty:    true,
		Go:       "go1.23.4",
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	if got := currentVersionInfo(); got != want {
		t.Fatalf("currentVersionInfo() = %+v, want %+v", got, want)
	}
}

func TestCurrentVersionInfoFallsBackToLdflags(t *testing.T) {
	stubBuildInfo(t, nil)
	prevVersion, prevCommit := buildinfo.Version, buildinfo.Commit
	t.Cleanup(func() { buildinfo.Version, buildinfo.Commit = prevVersion, prevCommit })
	buildinfo.Version, buildinfo.Commit = "v0.3.0", "feedface"

	info := currentVersionInfo()
	if info.Version != "v0.3.0" || info.Commit != "feedface" {
		t.Fatalf("got %+v, want ldflags version and commit", info)
	}
	if info.Go != runtime.Version() {
		t.Fatalf("Go = %q, want runtime %q", info.Go, runtime.Version())
	}
}

func TestCurrentVersionInfoDevelBuild(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if got := currentVersionInfo().Version; got != "devel" {
		t.Fatalf("Version = %q, want devel", got)
	}
}

func TestVersionCommandJSONOutput(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "v1.0.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "deadbeef"}},
	})
	h := newHarness(t)

	resp, err := h.runJSON("version")
	if err != nil || !resp.OK {
		t.Fatalf("version failed: %v %+v", err, resp.Error)
	}
	data := dataOf(t, resp)
	if data["version"] != "v1.0.0" || data["commit"] != "deadbeef" {
		t.Fatalf("unexpected version data: %v", data)
	}
}

func TestVersionCommandText(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "v1.0.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "deadbeef"}},
	})
	h := newHarness(t)
	out, err := h.run("version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "occfg v1.0.0 (") || !strings.Contains(out, "commit deadbeef") {
		t.Fatalf("unexpected version output:\n%s", out)
	}
}
