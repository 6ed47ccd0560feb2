package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// setters maps dotted config keys to field assignments.
var setters = map[string]func(c *Config, v string) error{
	"config_root":        func(c *Config, v string) error { c.ConfigRoot = v; return nil },
	"strict_frontmatter": boolSetter(func(c *Config, b bool) { c.StrictFrontmatter = b }),
	"backup":             boolSetter(func(c *Config, b bool) { c.Backup = &b }),
	"log_level":          func(c *Config, v string) error { c.LogLevel = v; return nil },
	"log_format": func(c *Config, v string) error {
		switch strings.ToLower(v) {
		case "", "auto", "console", "pretty", "json":
			c.LogFormat = strings.ToLower(v)
			return nil
		}
		return fmt.Errorf("log_format must be auto, console or json, got %q", v)
	},
	"audit":         boolSetter(func(c *Config, b bool) { c.Audit = b }),
	"ui.accent":     func(c *Config, v string) error { c.UI.Accent = v; return nil },
	"ui.code_theme": func(c *Config, v string) error { c.UI.CodeTheme = v; return nil },
}

func boolSetter(assign func(*Config, bool)) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", v)
		}
		assign(c, b)
		return nil
	}
}

// Keys returns the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns value to the dotted key.
func (c *Config) Set(key, value string) error {
	set, ok := setters[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := set(c, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
