package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/namanrajpal/openchamber/internal/buildinfo"
)

type versionInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit,omitempty"`
	Date     string `json:"date,omitempty"`
	Dirty    bool   `json:"dirty"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show occfg version and build information",
		Args:        cobra.NoArgs,
		Annotations: standalone,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentVersionInfo()
			if a.flags.JSON {
				a.outputSuccess(cmd, info, nil)
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "occfg %s (%s, %s)\n", info.Version, info.Go, info.Platform)
			if info.Commit != "" {
				dirty := ""
				if info.Dirty {
					dirty = ", dirty"
				}
				fmt.Fprintf(out, "commit %s %s%s\n", info.Commit, info.Date, dirty)
			}
			return nil
		},
	}
}

// currentVersionInfo prefers the module build info and falls back to the
// ldflags values in buildinfo for anything it lacks.
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:  "devel",
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
		if bi.GoVersion != "" {
			info.Go = bi.GoVersion
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Commit = s.Value
			case "vcs.time":
				info.Date = s.Value
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}

	if info.Version == "devel" && buildinfo.Version != "" {
		info.Version = buildinfo.Version
	}
	if info.Commit == "" {
		info.Commit = buildinfo.Commit
	}
	if info.Date == "" {
		info.Date = buildinfo.Date
	}
	return info
}
