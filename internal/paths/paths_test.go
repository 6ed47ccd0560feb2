package paths

import (
	"path/filepath"
	"testing"
)

func TestLayoutPaths(t *testing.T) {
	root := filepath.Join("/home", "u", ".config", "opencode")
	l := New(root)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"config", l.ConfigFile(), filepath.Join(root, "opencode.json")},
		{"backup", l.BackupFile(), filepath.Join(root, "opencode.json.openchamber.backup")},
		{"agent", l.AgentFile("researcher"), filepath.Join(root, "agent", "researcher.md")},
		{"user command", l.UserCommandFile("test"), filepath.Join(root, "command", "test.md")},
		{"project command", ProjectCommandFile("/work/repo", "test"), filepath.Join("/work/repo", ".opencode", "command", "test.md")},
		{"join dot slash", l.Join("./prompts/a.txt"), filepath.Join(root, "prompts", "a.txt")},
		{"join bare", l.Join("prompts/a.txt"), filepath.Join(root, "prompts", "a.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestNameFromFile(t *testing.T) {
	tests := []struct {
		file   string
		want   string
		wantOK bool
	}{
		{"researcher.md", "researcher", true},
		{"/x/agent/build.md", "build", true},
		{"notes.txt", "", false},
		{".hidden.md", "", false},
		{".md", "", false},
	}

	for _, tt := range tests {
		got, ok := NameFromFile(tt.file)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NameFromFile(%q) = (%q, %v), want (%q, %v)", tt.file, got, ok, tt.want, tt.wantOK)
		}
	}
}
