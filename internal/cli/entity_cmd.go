package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/namanrajpal/openchamber/internal/entity"
	"github.com/namanrajpal/openchamber/internal/logging"
	"github.com/namanrajpal/openchamber/internal/reconcile"
	"github.com/namanrajpal/openchamber/internal/scope"
	"github.com/namanrajpal/openchamber/internal/ui"
)

// newEntityCommand builds the "agent" or "command" subtree.
func (a *App) newEntityCommand(kind entity.Kind) *cobra.Command {
	var workDir string

	cmd := &cobra.Command{
		Use:   kind.Name,
		Short: fmt.Sprintf("Manage %ss", kind.Name),
		Long: fmt.Sprintf(`Manage %ss stored in %s/<name>.md and the %q section of opencode.json.

The markdown body holds the %q field.`, kind.Name, kind.Name, kind.Section, kind.BodyField),
	}
	if kind.Scoped {
		cmd.Long += `

Commands can also live in <dir>/.opencode/command/<name>.md (project scope).
A project file takes precedence over the user file with the same name.`
		cmd.PersistentFlags().StringVar(&workDir, "dir", "", "project directory for project-scoped commands (default: current directory)")
	}

	dir := func() string {
		if !kind.Scoped {
			return ""
		}
		if workDir != "" {
			return workDir
		}
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		return wd
	}

	cmd.AddCommand(
		a.newListCommand(kind, dir),
		a.newShowCommand(kind, dir),
		a.newSourcesCommand(kind, dir),
		a.newCreateCommand(kind, dir),
		a.newUpdateCommand(kind, dir),
		a.newDeleteCommand(kind, dir),
	)
	return cmd
}

func (a *App) newListCommand(kind entity.Kind, dir func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %ss from both stores", kind.Name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.service.List(kind, dir())
			if err != nil {
				return a.handleError(cmd, err)
			}

			if a.flags.JSON {
				a.outputSuccess(cmd, map[string]interface{}{"items": items}, &Meta{Count: len(items)})
				return nil
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, ui.Hint(fmt.Sprintf("No %ss found in %s", kind.Name, a.root)))
				return nil
			}
			fmt.Fprintf(out, "%s %s\n\n", ui.Header(strings.ToUpper(kind.Name[:1])+kind.Name[1:]+"s"), ui.Hint(ui.Count(len(items), kind.Name)))
			tbl := ui.NewTable(4)
			for _, it := range items {
				status := ""
				if it.Disabled {
					status = "disabled"
				}
				tbl.AddRow(ui.Accent.Render(it.Name), it.Scope.String(), storesLabel(it.Frontmatter, it.Structured), status)
			}
			fmt.Fprint(out, tbl.String())
			return nil
		},
	}
}

func storesLabel(frontmatter, structured bool) string {
	switch {
	case frontmatter && structured:
		return "markdown+json"
	case frontmatter:
		return "markdown"
	case structured:
		return "json"
	}
	return ""
}

func (a *App) newShowCommand(kind entity.Kind, dir func() string) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: fmt.Sprintf("Show the merged view of a %s", kind.Name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.service.Get(kind, args[0], dir())
			if err != nil {
				return a.handleError(cmd, err)
			}

			if a.flags.JSON {
				a.outputSuccess(cmd, e, nil)
				return nil
			}
			return a.printEntity(cmd.OutOrStdout(), kind, e, raw)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the body without markdown rendering")
	return cmd
}

func (a *App) printEntity(out io.Writer, kind entity.Kind, e *entity.Entity, raw bool) error {
	fmt.Fprintln(out, ui.Header(e.Name))
	if e.Sources.Frontmatter.Exists {
		fmt.Fprintf(out, "%s %s\n", ui.Hint("markdown:"), ui.FilePath(e.Sources.Frontmatter.Path))
	}
	if e.Sources.Structured.Exists {
		fmt.Fprintf(out, "%s %s\n", ui.Hint("json:    "), ui.FilePath(e.Sources.Structured.Path))
	}

	fields := e.Fields.Clone()
	body := e.Body()
	delete(fields, kind.BodyField)

	if len(fields) > 0 {
		data, err := yaml.Marshal(fields.Raw())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s", data)
	}

	if e.ResolvedBody != "" {
		fmt.Fprintf(out, "\n%s\n", ui.Hint(fmt.Sprintf("%s: %s", kind.BodyField, body)))
		body = e.ResolvedBody
	}
	if strings.TrimSpace(body) == "" {
		return nil
	}

	fmt.Fprint(out, "\n"+ui.NewDisplayContext(out).RenderBody(body, raw))
	return nil
}

func (a *App) newSourcesCommand(kind entity.Kind, dir func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "sources <name>",
		Short: fmt.Sprintf("Show which store defines each field of a %s", kind.Name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.service.Sources(kind, args[0], dir())
			if err != nil {
				return a.handleError(cmd, err)
			}

			if a.flags.JSON {
				a.outputSuccess(cmd, src, nil)
				return nil
			}

			out := cmd.OutOrStdout()
			printSource(out, "markdown", src.Frontmatter)
			printSource(out, "json", src.Structured)
			if src.Project != nil && src.Project.Path != "" {
				fmt.Fprintf(out, "%-9s %s %s\n", "project", ui.Mark(src.Project.Exists), ui.FilePath(src.Project.Path))
			}
			if src.User != nil {
				fmt.Fprintf(out, "%-9s %s %s\n", "user", ui.Mark(src.User.Exists), ui.FilePath(src.User.Path))
			}
			return nil
		},
	}
}

func printSource(out io.Writer, label string, info entity.SourceInfo) {
	line := fmt.Sprintf("%-9s %s", label, ui.Mark(info.Exists))
	if info.Path != "" {
		line += " " + ui.FilePath(info.Path)
	}
	if info.Scope != scope.None {
		line += " " + ui.Hint("("+info.Scope.String()+")")
	}
	fmt.Fprintln(out, line)
	if len(info.Fields) > 0 {
		fmt.Fprintf(out, "          %s\n", ui.Hint(strings.Join(info.Fields, ", ")))
	}
}

func (a *App) newCreateCommand(kind entity.Kind, dir func() string) *cobra.Command {
	var (
		ff       fieldFlags
		scopeArg string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: fmt.Sprintf("Create a %s as a markdown file", kind.Name),
		Long: fmt.Sprintf(`Create a new %s markdown file. Fails if the name already exists as a
markdown file or in opencode.json.

Examples:
  occfg %s create reviewer --set description="Reviews code" --body "You review code."
  occfg %s create reviewer --from-json fields.json`, kind.Name, kind.Name, kind.Name),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := ff.updates(cmd, kind.BodyField)
			if err != nil {
				return a.handleErrorMsg(cmd, ErrInvalidInput, err.Error(), "")
			}

			requested, err := scope.Parse(scopeArg)
			if err != nil {
				return a.handleErrorMsg(cmd, ErrInvalidInput, err.Error(), "")
			}

			report, err := a.service.Create(kind, args[0], fieldsFromUpdates(updates), entity.CreateOptions{
				WorkDir: dir(),
				Scope:   requested,
			})
			if err != nil {
				return a.handleError(cmd, err)
			}
			return a.printReport(cmd, report)
		},
	}
	ff.register(cmd.Flags(), kind.BodyField, false)
	if kind.Scoped {
		cmd.Flags().StringVar(&scopeArg, "scope", "", "where to create the command: user or project")
	}
	return cmd
}

func (a *App) newUpdateCommand(kind entity.Kind, dir func() string) *cobra.Command {
	var ff fieldFlags

	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: fmt.Sprintf("Update %s fields in whichever store owns them", kind.Name),
		Long: fmt.Sprintf(`Update fields of a %s. Each field is written where it is already
defined. New fields go to opencode.json when both stores hold the %s,
otherwise to the markdown file if one exists, otherwise to opencode.json.

Examples:
  occfg %s update reviewer --set temperature=0.2
  occfg %s update reviewer --unset model
  occfg %s update reviewer --body-file prompt.md`, kind.Name, kind.Name, kind.Name, kind.Name, kind.Name),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := ff.updates(cmd, kind.BodyField)
			if err != nil {
				return a.handleErrorMsg(cmd, ErrInvalidInput, err.Error(), "")
			}
			if len(updates) == 0 {
				return a.handleErrorMsg(cmd, ErrMissingArgument, "no fields to update",
					"Use --set key=value, --unset key, --body or --from-json")
			}

			logger := logging.FromContext(cmd.Context())
			logger.Debug().
				Str("entity", args[0]).
				Int("updates", len(updates)).
				Msg("applying updates")

			report, err := a.service.Update(kind, args[0], updates, entity.UpdateOptions{WorkDir: dir()})
			if err != nil {
				return a.handleError(cmd, err)
			}
			return a.printReport(cmd, report)
		},
	}
	ff.register(cmd.Flags(), kind.BodyField, true)
	return cmd
}

func (a *App) newDeleteCommand(kind entity.Kind, dir func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: fmt.Sprintf("Delete a %s from every location", kind.Name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.service.Delete(kind, args[0], entity.DeleteOptions{WorkDir: dir()})
			if err != nil {
				return a.handleError(cmd, err)
			}
			return a.printReport(cmd, report)
		},
	}
	if kind.DisableWhenMissing {
		cmd.Long = fmt.Sprintf(`Delete a %s from every location. A built-in %s that exists nowhere on
disk is disabled in opencode.json instead.`, kind.Name, kind.Name)
	}
	return cmd
}

func reportWarnings(r *entity.Report) []Warning {
	var warnings []Warning
	if r.StructuredSuppressed {
		warnings = append(warnings, Warning{
			Code:    WarnStructuredSkipped,
			Message: fmt.Sprintf("%s %s lives only in markdown; opencode.json was not changed", r.Kind, r.Name),
		})
	}
	if r.Disabled {
		warnings = append(warnings, Warning{
			Code:    WarnEntityDisabled,
			Message: fmt.Sprintf("%s %s was not found on disk and has been disabled", r.Kind, r.Name),
		})
	}
	return warnings
}

func (a *App) printReport(cmd *cobra.Command, r *entity.Report) error {
	warnings := reportWarnings(r)
	if a.flags.JSON {
		a.outputSuccessWithWarnings(cmd, r, warnings, nil)
		return nil
	}

	out := cmd.OutOrStdout()
	switch {
	case r.Disabled:
		fmt.Fprintln(out, ui.Successf("Disabled %s %s", r.Kind, ui.Accent.Render(r.Name)))
	case r.Operation == "update" && len(r.Written) == 0:
		fmt.Fprintln(out, ui.Infof("No changes to %s %s", r.Kind, ui.Accent.Render(r.Name)))
	default:
		verb := map[string]string{"create": "Created", "update": "Updated", "delete": "Deleted"}[r.Operation]
		fmt.Fprintln(out, ui.Successf("%s %s %s", verb, r.Kind, ui.Accent.Render(r.Name)))
	}

	for _, c := range r.Changes {
		action := "set"
		if c.Deleted {
			action = "removed"
		}
		where := string(c.Target)
		if c.Target == reconcile.TargetFile {
			where = c.Path
		}
		fmt.Fprintf(out, "  %s %s %s\n", c.Field, ui.Hint(action+" in"), where)
	}
	for _, p := range r.Removed {
		fmt.Fprintf(out, "  %s %s\n", ui.Hint("removed"), ui.FilePath(p))
	}
	if r.Operation != "update" {
		for _, p := range r.Written {
			fmt.Fprintf(out, "  %s %s\n", ui.Hint("wrote"), ui.FilePath(p))
		}
	}
	for _, w := range warnings {
		if w.Code == WarnEntityDisabled {
			continue
		}
		fmt.Fprintln(out, ui.Warning(w.Message))
	}
	return nil
}
