package testutil

import (
	"strings"
)

// AssertFileExists fails the test if the file does not exist.
func (r *ConfigRoot) AssertFileExists(relPath string) {
	r.t.Helper()
	if !r.FileExists(relPath) {
		r.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (r *ConfigRoot) AssertFileNotExists(relPath string) {
	r.t.Helper()
	if r.FileExists(relPath) {
		r.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (r *ConfigRoot) AssertFileContains(relPath, substr string) {
	r.t.Helper()
	content := r.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		r.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains the substring.
func (r *ConfigRoot) AssertFileNotContains(relPath, substr string) {
	r.t.Helper()
	content := r.ReadFile(relPath)
	if strings.Contains(content, substr) {
		r.t.Errorf("expected file %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}
