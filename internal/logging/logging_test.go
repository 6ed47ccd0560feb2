package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.WarnLevel},
		{"loud", zerolog.WarnLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolveLevel(t *testing.T) {
	t.Setenv(EnvLevel, "error")

	tests := []struct {
		name        string
		flag        string
		verbose     bool
		configLevel string
		want        string
	}{
		{"flag wins", "trace", true, "info", "trace"},
		{"verbose beats config", "", true, "info", "debug"},
		{"config beats env", "", false, "info", "info"},
		{"env fallback", "", false, "", "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveLevel(tt.flag, tt.verbose, tt.configLevel); got != tt.want {
				t.Errorf("ResolveLevel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveLevelDefault(t *testing.T) {
	t.Setenv(EnvLevel, "")
	if got := ResolveLevel("", false, ""); got != DefaultLevel {
		t.Errorf("ResolveLevel = %q, want %q", got, DefaultLevel)
	}
}

func TestNewJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json", Output: &buf})

	logger.Debug().Msg("hidden")
	logger.Info().Str("path", "/cfg/opencode.json").Msg("wrote config file")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "wrote config file" || entry["path"] != "/cfg/opencode.json" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNonFileOutputDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Output: &buf})
	logger.Info().Msg("x")

	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("expected JSON output for non-terminal writer, got %q", buf.String())
	}
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json", Output: &buf})

	ctx := WithLogger(context.Background(), logger)
	ctxLogger := FromContext(ctx)
	ctxLogger.Info().Msg("from context")
	if !strings.Contains(buf.String(), "from context") {
		t.Errorf("context logger not used")
	}

	// A bare context yields a no-op logger rather than panicking.
	bareLogger := FromContext(context.Background())
	bareLogger.Info().Msg("dropped")
}
