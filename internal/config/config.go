// Package config handles occfg's own configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/namanrajpal/openchamber/internal/frontmatter"
	"github.com/namanrajpal/openchamber/internal/paths"
)

// Config represents the occfg configuration.
type Config struct {
	// ConfigRoot is the opencode configuration directory (defaults to ~/.config/opencode).
	ConfigRoot string `toml:"config_root"`

	// StrictFrontmatter reports undecodable frontmatter instead of treating it as empty.
	StrictFrontmatter bool `toml:"strict_frontmatter"`

	// Backup controls the single-generation backup of opencode.json.
	// Nil means enabled.
	Backup *bool `toml:"backup"`

	// LogLevel is the zerolog level name.
	LogLevel string `toml:"log_level"`

	// LogFormat is "console", "json" or empty for auto-detection.
	LogFormat string `toml:"log_format"`

	// Audit enables the append-only audit log of create, update and delete.
	Audit bool `toml:"audit"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown code blocks.
	// Example values: "monokai", "dracula", "github", "nord".
	CodeTheme string `toml:"code_theme"`
}

// Root returns the opencode configuration directory, expanding "~".
func (c *Config) Root() (string, error) {
	if c != nil && strings.TrimSpace(c.ConfigRoot) != "" {
		return paths.ExpandHome(strings.TrimSpace(c.ConfigRoot)), nil
	}
	return paths.DefaultRoot()
}

// BackupEnabled reports whether opencode.json should be backed up before writes.
func (c *Config) BackupEnabled() bool {
	if c == nil || c.Backup == nil {
		return true
	}
	return *c.Backup
}

// Policy returns the frontmatter parse policy.
func (c *Config) Policy() frontmatter.Policy {
	if c != nil && c.StrictFrontmatter {
		return frontmatter.PolicyStrict
	}
	return frontmatter.PolicyLenient
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom loads the configuration from a specific path.
// A missing file yields the default config.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/occfg/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if xdgPath, err := XDGPath(); err == nil {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "occfg", "config.toml")
	}

	// Last resort fallback
	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/occfg/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "occfg", "config.toml"), nil
}

// ResolvePath returns explicit when set, else DefaultPath.
func ResolvePath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return paths.ExpandHome(strings.TrimSpace(explicit))
	}
	return DefaultPath()
}

const defaultConfig = `# occfg configuration

# opencode configuration directory holding opencode.json, agent/ and command/
# config_root = "~/.config/opencode"

# Report frontmatter that fails to decode instead of treating it as empty
# strict_frontmatter = false

# Copy opencode.json to opencode.json.openchamber.backup before each write
# backup = true

# Logging: trace, debug, info, warn, error
# log_level = "warn"
# log_format = "console"

# Append create/update/delete operations to <config_root>/.occfg/audit.log
# audit = false

# Optional UI accent color for headers in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

// CreateDefault creates a commented default config file at path if it doesn't exist.
// Returns true when a new file was written.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}
