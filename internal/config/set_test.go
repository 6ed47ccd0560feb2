package config

import (
	"path/filepath"
	"testing"
)

func TestSet(t *testing.T) {
	cfg := &Config{}
	steps := []struct{ key, value string }{
		{"config_root", "~/oc"},
		{"backup", "false"},
		{"audit", "true"},
		{"UI.Accent", "39"},
		{"log_format", "JSON"},
	}
	for _, s := range steps {
		if err := cfg.Set(s.key, s.value); err != nil {
			t.Fatalf("Set(%q, %q): %v", s.key, s.value, err)
		}
	}

	if cfg.ConfigRoot != "~/oc" || !cfg.Audit || cfg.UI.Accent != "39" || cfg.LogFormat != "json" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.BackupEnabled() {
		t.Error("backup should be disabled")
	}
}

func TestSetRejectsBadInput(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Set("nope", "1"); err == nil {
		t.Error("expected error for unknown key")
	}
	if err := cfg.Set("audit", "sometimes"); err == nil {
		t.Error("expected error for non-boolean value")
	}
	if err := cfg.Set("log_format", "xml"); err == nil {
		t.Error("expected error for unknown log format")
	}
}

func TestSetThenSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := &Config{}
	if err := cfg.Set("strict_frontmatter", "true"); err != nil {
		t.Fatal(err)
	}
	if err := SaveTo(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.StrictFrontmatter {
		t.Error("strict_frontmatter not persisted")
	}
}
