package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/namanrajpal/openchamber/internal/atomicfile"
)

type persistedConfig struct {
	ConfigRoot        *string              `toml:"config_root,omitempty"`
	StrictFrontmatter *bool                `toml:"strict_frontmatter,omitempty"`
	Backup            *bool                `toml:"backup,omitempty"`
	LogLevel          *string              `toml:"log_level,omitempty"`
	LogFormat         *string              `toml:"log_format,omitempty"`
	Audit             *bool                `toml:"audit,omitempty"`
	UI                *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func truePtr(v bool) *bool {
	if !v {
		return nil
	}
	return &v
}

// SaveTo writes the config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		ConfigRoot:        nonEmptyPtr(cfg.ConfigRoot),
		StrictFrontmatter: truePtr(cfg.StrictFrontmatter),
		Backup:            cfg.Backup,
		LogLevel:          nonEmptyPtr(cfg.LogLevel),
		LogFormat:         nonEmptyPtr(cfg.LogFormat),
		Audit:             truePtr(cfg.Audit),
	}

	accent := nonEmptyPtr(cfg.UI.Accent)
	codeTheme := nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{
			Accent:    accent,
			CodeTheme: codeTheme,
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
