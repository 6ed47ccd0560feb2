// Package cli implements the occfg command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/namanrajpal/openchamber/internal/audit"
	"github.com/namanrajpal/openchamber/internal/config"
	"github.com/namanrajpal/openchamber/internal/entity"
	"github.com/namanrajpal/openchamber/internal/frontmatter"
	"github.com/namanrajpal/openchamber/internal/logging"
	"github.com/namanrajpal/openchamber/internal/paths"
	"github.com/namanrajpal/openchamber/internal/ui"
)

// Flags holds the global flags.
type Flags struct {
	ConfigPath string
	ConfigRoot string
	LogLevel   string
	Verbose    bool
	Strict     bool
	JSON       bool
}

// App holds state shared by every command of one invocation.
type App struct {
	flags Flags

	cfg        *config.Config
	configPath string
	root       string
	logger     zerolog.Logger
	service    *entity.Service
}

// New creates an App. Nothing is loaded until a command runs.
func New() *App {
	return &App{cfg: &config.Config{}, logger: zerolog.Nop()}
}

// Execute runs the CLI with args.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return New().Execute(context.Background(), os.Args[1:])
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "occfg",
		Short: "Manage opencode agents and commands",
		Long: `occfg edits opencode agents and commands that may be split between
markdown files with YAML frontmatter and opencode.json.

Each field is written to the store that already defines it. New fields go to
opencode.json when both stores hold the entity, and to the markdown file when
only the markdown file exists.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.ConfigPath, "config", "", "path to occfg config file")
	pf.StringVar(&a.flags.ConfigRoot, "config-root", "", "opencode config directory (default ~/.config/opencode)")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVar(&a.flags.Strict, "strict", false, "fail on frontmatter that is not valid YAML")
	pf.BoolVar(&a.flags.JSON, "json", false, "output in JSON format (for agent/script use)")

	rootCmd.AddCommand(
		a.newEntityCommand(entity.Agent),
		a.newEntityCommand(entity.Command),
		a.newConfigCommand(),
		a.newAuditCommand(),
		a.newVersionCommand(),
	)
	return rootCmd
}

// setupCommand loads config, builds the logger and the entity service.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	a.configPath = config.ResolvePath(a.flags.ConfigPath)

	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		if !hasAnnotation(cmd, annotationConfigOptional) {
			return a.handleError(cmd, err)
		}
		// config subcommands still run against a broken file
		cfg = &config.Config{}
	}
	a.cfg = cfg

	level := logging.ResolveLevel(a.flags.LogLevel, a.flags.Verbose, cfg.LogLevel)
	a.logger = logging.New(logging.Config{Level: level, Format: cfg.LogFormat, Output: cmd.ErrOrStderr()})
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	ui.ConfigureTheme(cfg.UI.Accent)
	ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

	if a.flags.ConfigRoot != "" {
		a.root = paths.ExpandHome(a.flags.ConfigRoot)
	} else if a.root, err = cfg.Root(); err != nil {
		return a.handleError(cmd, fmt.Errorf("cannot determine config root: %w", err))
	}

	if skipsService(cmd) {
		return nil
	}

	policy := cfg.Policy()
	if a.flags.Strict {
		policy = frontmatter.PolicyStrict
	}

	a.service = entity.New(paths.New(a.root), entity.Options{
		Policy:        policy,
		DisableBackup: !cfg.BackupEnabled(),
		Logger:        a.logger,
		Audit:         audit.New(a.root, cfg.Audit),
	})
	a.logger.Debug().Str("root", a.root).Str("config", a.configPath).Msg("service ready")
	return nil
}

// Command annotations read by setupCommand. Both apply to subcommands too.
const (
	// annotationNoService: the command never touches the entity stores.
	annotationNoService = "occfg.no-service"
	// annotationConfigOptional: the command still runs when the occfg
	// config file fails to load.
	annotationConfigOptional = "occfg.config-optional"
)

var (
	// rootOnly marks commands that need the config root but no entity service.
	rootOnly = map[string]string{annotationNoService: "true"}
	// standalone marks commands that need neither the service nor a valid config.
	standalone = map[string]string{annotationNoService: "true", annotationConfigOptional: "true"}
)

func hasAnnotation(cmd *cobra.Command, key string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[key] == "true" {
			return true
		}
		// cobra's generated commands carry no annotations.
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

// skipsService reports commands that never touch the stores.
func skipsService(cmd *cobra.Command) bool {
	return hasAnnotation(cmd, annotationNoService)
}
