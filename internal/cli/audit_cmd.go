package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/namanrajpal/openchamber/internal/audit"
	"github.com/namanrajpal/openchamber/internal/ui"
)

func (a *App) newAuditCommand() *cobra.Command {
	var (
		since string
		kind  string
		name  string
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recorded create, update and delete operations",
		Long: `Show entries from the audit log. Entries are only recorded while
"audit = true" is set in the occfg config.

Examples:
  occfg audit --since 7d
  occfg audit --kind agent --name reviewer`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := audit.Filter{Kind: kind, Name: name}
			if since != "" {
				cutoff, err := parseSince(since, time.Now())
				if err != nil {
					return a.handleErrorMsg(cmd, ErrInvalidInput, err.Error(), "Use a duration such as 90m, 24h or 7d, or a date such as 2026-01-31")
				}
				filter.Since = cutoff
			}

			// Reading works even when recording is switched off.
			entries, err := audit.New(a.root, true).Query(filter)
			if err != nil {
				return a.handleError(cmd, err)
			}
			if entries == nil {
				entries = []audit.Entry{}
			}

			if a.flags.JSON {
				a.outputSuccess(cmd, map[string]interface{}{"entries": entries}, &Meta{Count: len(entries)})
				return nil
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Hint("No audit entries"))
				if !a.cfg.Audit {
					fmt.Fprintln(out, ui.Hint("Enable recording with: occfg config set audit true"))
				}
				return nil
			}
			tbl := ui.NewTable(5)
			for _, e := range entries {
				tbl.AddRow(
					ui.Hint(e.Timestamp.Local().Format("2006-01-02 15:04:05")),
					e.Operation,
					e.Kind,
					ui.Accent.Render(e.Name),
					strings.Join(e.Paths, " "),
				)
			}
			fmt.Fprint(out, tbl.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "only entries newer than a duration (7d, 24h) or a date")
	cmd.Flags().StringVar(&kind, "kind", "", "only entries for this kind (agent or command)")
	cmd.Flags().StringVar(&name, "name", "", "only entries for this name")
	cmd.Annotations = rootOnly
	return cmd
}

// parseSince accepts a Go duration, a whole number of days ("7d"), an
// RFC 3339 timestamp, or a YYYY-MM-DD date.
func parseSince(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		if days, err := strconv.Atoi(strings.TrimSuffix(s, "d")); err == nil && days >= 0 {
			return now.AddDate(0, 0, -days), nil
		}
	}
	if d, err := time.ParseDuration(s); err == nil && d >= 0 {
		return now.Add(-d), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid --since value %q", s)
}
