// Package testutil provides fixtures for tests that run against a temporary
// opencode configuration directory.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// ConfigRoot is a temporary opencode config directory.
type ConfigRoot struct {
	Path string
	t    *testing.T
}

// NewConfigRoot creates an empty config root under t.TempDir(). The
// directory itself is not created until a file is written.
func NewConfigRoot(t *testing.T) *ConfigRoot {
	t.Helper()
	return &ConfigRoot{
		Path: filepath.Join(t.TempDir(), "opencode"),
		t:    t,
	}
}

// WithFile writes a file relative to the root and returns the root for
// chaining.
func (r *ConfigRoot) WithFile(relPath, content string) *ConfigRoot {
	r.t.Helper()
	r.WriteFile(relPath, content)
	return r
}

// WithConfig writes opencode.json.
func (r *ConfigRoot) WithConfig(content string) *ConfigRoot {
	return r.WithFile("opencode.json", content)
}

// WriteFile writes a file relative to the root, creating directories as
// needed, and returns its absolute path.
func (r *ConfigRoot) WriteFile(relPath, content string) string {
	r.t.Helper()
	fullPath := filepath.Join(r.Path, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		r.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		r.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
	return fullPath
}

// ReadFile reads a file relative to the root.
func (r *ConfigRoot) ReadFile(relPath string) string {
	r.t.Helper()
	fullPath := filepath.Join(r.Path, relPath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		r.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists relative to the root.
func (r *ConfigRoot) FileExists(relPath string) bool {
	r.t.Helper()
	_, err := os.Stat(filepath.Join(r.Path, relPath))
	return err == nil
}

// Config decodes opencode.json. It fails the test if the file is missing or
// is not plain JSON.
func (r *ConfigRoot) Config() map[string]any {
	r.t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(r.ReadFile("opencode.json")), &m); err != nil {
		r.t.Fatalf("opencode.json is not valid JSON: %v", err)
	}
	return m
}

// Entry returns the record for name in section of opencode.json, or nil.
func (r *ConfigRoot) Entry(section, name string) map[string]any {
	r.t.Helper()
	sec, _ := r.Config()[section].(map[string]any)
	entry, _ := sec[name].(map[string]any)
	return entry
}
