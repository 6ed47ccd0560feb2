package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/namanrajpal/openchamber/internal/audit"
	"github.com/namanrajpal/openchamber/internal/config"
	"github.com/namanrajpal/openchamber/internal/paths"
	"github.com/namanrajpal/openchamber/internal/ui"
)

// effectiveConfig is the config after defaults and flags are applied.
type effectiveConfig struct {
	ConfigFile        string `json:"config_file" toml:"config_file"`
	ConfigRoot        string `json:"config_root" toml:"config_root"`
	OpencodeJSON      string `json:"opencode_json" toml:"opencode_json"`
	Backup            bool   `json:"backup" toml:"backup"`
	StrictFrontmatter bool   `json:"strict_frontmatter" toml:"strict_frontmatter"`
	Audit             bool   `json:"audit" toml:"audit"`
	AuditLog          string `json:"audit_log,omitempty" toml:"audit_log,omitempty"`
	LogLevel          string `json:"log_level,omitempty" toml:"log_level,omitempty"`
	LogFormat         string `json:"log_format,omitempty" toml:"log_format,omitempty"`
	Accent            string `json:"ui_accent,omitempty" toml:"ui_accent,omitempty"`
	CodeTheme         string `json:"ui_code_theme,omitempty" toml:"ui_code_theme,omitempty"`
}

func (a *App) effectiveConfig() effectiveConfig {
	eff := effectiveConfig{
		ConfigFile:        a.configPath,
		ConfigRoot:        a.root,
		OpencodeJSON:      paths.New(a.root).ConfigFile(),
		Backup:            a.cfg.BackupEnabled(),
		StrictFrontmatter: a.cfg.StrictFrontmatter || a.flags.Strict,
		Audit:             a.cfg.Audit,
		LogLevel:          a.cfg.LogLevel,
		LogFormat:         a.cfg.LogFormat,
		Accent:            a.cfg.UI.Accent,
		CodeTheme:         a.cfg.UI.CodeTheme,
	}
	if eff.Audit {
		eff.AuditLog = audit.Path(a.root)
	}
	return eff
}

func (a *App) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage the occfg config file",
		Annotations: standalone,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.JSON {
				a.outputSuccess(cmd, map[string]string{"path": a.configPath}, nil)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.configPath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := config.CreateDefault(a.configPath)
			if err != nil {
				return a.handleError(cmd, err)
			}
			if a.flags.JSON {
				a.outputSuccess(cmd, map[string]interface{}{"path": a.configPath, "created": created}, nil)
				return nil
			}
			if created {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("Created %s", ui.FilePath(a.configPath)))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Infof("Config already exists at %s", ui.FilePath(a.configPath)))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eff := a.effectiveConfig()
			if a.flags.JSON {
				a.outputSuccess(cmd, eff, nil)
				return nil
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(eff)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value and save the file",
		Long:  "Set a config value. Keys: " + fmt.Sprint(config.Keys()),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Reload so a broken file is reported instead of overwritten.
			cfg, err := config.LoadFrom(a.configPath)
			if err != nil {
				return a.handleError(cmd, err)
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return a.handleErrorMsg(cmd, ErrInvalidInput, err.Error(), "")
			}
			if err := config.SaveTo(a.configPath, cfg); err != nil {
				return a.handleError(cmd, err)
			}
			a.logger.Info().Str("path", a.configPath).Str("key", args[0]).Msg("saved config")

			if a.flags.JSON {
				a.outputSuccess(cmd, map[string]string{"path": a.configPath, "key": args[0], "value": args[1]}, nil)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("Set %s = %s", args[0], args[1]))
			return nil
		},
	})

	return cmd
}
