// Package paths provides canonical helpers for locating opencode
// configuration files:
//   - the structured document (<root>/opencode.json) and its backup
//   - agent markdown files (<root>/agent/<name>.md)
//   - user command files (<root>/command/<name>.md)
//   - project command files (<workdir>/.opencode/command/<name>.md)
//
// Every caller goes through a Layout so the stores, the scope resolver and the
// CLI agree on where things live.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// ConfigFileName is the structured document file name.
	ConfigFileName = "opencode.json"

	// BackupSuffix is appended to the structured document name for its backup.
	BackupSuffix = ".openchamber.backup"

	// ProjectDirName is the per-project configuration directory.
	ProjectDirName = ".opencode"

	// MarkdownExt is the extension of frontmatter documents.
	MarkdownExt = ".md"
)

// Layout describes where configuration lives under a root directory.
type Layout struct {
	Root string
}

// New returns a Layout rooted at root.
func New(root string) Layout {
	return Layout{Root: root}
}

// DefaultRoot returns ~/.config/opencode.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "opencode"), nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// ConfigFile returns the path of opencode.json.
func (l Layout) ConfigFile() string {
	return filepath.Join(l.Root, ConfigFileName)
}

// BackupFile returns the path of the single-generation backup of opencode.json.
func (l Layout) BackupFile() string {
	return l.ConfigFile() + BackupSuffix
}

// AgentDir returns <root>/agent.
func (l Layout) AgentDir() string {
	return filepath.Join(l.Root, "agent")
}

// CommandDir returns <root>/command.
func (l Layout) CommandDir() string {
	return filepath.Join(l.Root, "command")
}

// AgentFile returns the markdown path for an agent.
func (l Layout) AgentFile(name string) string {
	return filepath.Join(l.AgentDir(), name+MarkdownExt)
}

// UserCommandFile returns the user-scope markdown path for a command.
func (l Layout) UserCommandFile(name string) string {
	return filepath.Join(l.CommandDir(), name+MarkdownExt)
}

// ProjectCommandDir returns <workDir>/.opencode/command.
func ProjectCommandDir(workDir string) string {
	return filepath.Join(workDir, ProjectDirName, "command")
}

// ProjectCommandFile returns the project-scope markdown path for a command.
func ProjectCommandFile(workDir, name string) string {
	return filepath.Join(ProjectCommandDir(workDir), name+MarkdownExt)
}

// Join resolves a root-relative path. A leading "./" is dropped.
func (l Layout) Join(rel string) string {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")
	return filepath.Join(l.Root, filepath.FromSlash(rel))
}

// NameFromFile returns the entity name for a markdown file name, or ok=false
// when the file is not a markdown document.
func NameFromFile(fileName string) (string, bool) {
	base := filepath.Base(fileName)
	if !strings.HasSuffix(base, MarkdownExt) || strings.HasPrefix(base, ".") {
		return "", false
	}
	name := strings.TrimSuffix(base, MarkdownExt)
	return name, name != ""
}
