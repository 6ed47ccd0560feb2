package cli

import (
	"os"
	"testing"
)

func TestCommandAnnotations(t *testing.T) {
	rootCmd := New().createRootCommand()

	tests := []struct {
		args           []string
		noService      bool
		configOptional bool
	}{
		{[]string{"agent", "list"}, false, false},
		{[]string{"command", "delete"}, false, false},
		{[]string{"audit"}, true, false},
		{[]string{"config", "set"}, true, true},
		{[]string{"version"}, true, true},
	}
	for _, tt := range tests {
		cmd, _, err := rootCmd.Find(tt.args)
		if err != nil {
			t.Fatalf("Find(%v): %v", tt.args, err)
		}
		if got := skipsService(cmd); got != tt.noService {
			t.Errorf("skipsService(%v) = %v, want %v", tt.args, got, tt.noService)
		}
		if got := hasAnnotation(cmd, annotationConfigOptional); got != tt.configOptional {
			t.Errorf("config optional for %v = %v, want %v", tt.args, got, tt.configOptional)
		}
	}
}

func TestAuditSkipsEntityService(t *testing.T) {
	h := newHarness(t)
	app := New()
	rootCmd := app.createRootCommand()
	rootCmd.SetArgs([]string{"--config", h.cfgPath, "--config-root", h.root, "--json", "audit"})
	rootCmd.SetOut(&h.stderr)
	rootCmd.SetErr(&h.stderr)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("audit: %v", err)
	}
	if app.service != nil {
		t.Error("audit built the entity service")
	}
	if app.root != h.root {
		t.Errorf("root = %q, want %q", app.root, h.root)
	}
}

func TestAuditFailsOnBrokenConfig(t *testing.T) {
	h := newHarness(t)
	if err := os.WriteFile(h.cfgPath, []byte("not = [toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := h.run("audit"); err == nil {
		t.Error("audit should fail when the config file cannot be loaded")
	}
}
