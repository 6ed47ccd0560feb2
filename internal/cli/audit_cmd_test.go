package cli

import (
	"strings"
	"testing"
	"time"
)

func TestAuditRecordsOperations(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("config", "set", "audit", "true"); err != nil {
		t.Fatal(err)
	}

	if _, err := h.run("agent", "create", "logged", "--body", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := h.run("agent", "update", "logged", "--set", "model=m"); err != nil {
		t.Fatal(err)
	}
	if _, err := h.run("command", "create", "other", "--dir", h.work, "--body", "y"); err != nil {
		t.Fatal(err)
	}

	resp, err := h.runJSON("audit", "--kind", "agent", "--since", "1h")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Meta == nil || resp.Meta.Count != 2 {
		t.Fatalf("meta = %+v", resp.Meta)
	}
	entries := dataOf(t, resp)["entries"].([]any)
	first := entries[0].(map[string]any)
	if first["op"] != "create" || first["name"] != "logged" {
		t.Errorf("first entry = %v", first)
	}

	out, err := h.run("audit")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "logged") || !strings.Contains(out, "other") {
		t.Errorf("audit output:\n%s", out)
	}
}

func TestAuditEmptyHintsAtConfig(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("audit")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "config set audit true") {
		t.Errorf("audit output:\n%s", out)
	}
}

func TestParseSince(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"7d", now.AddDate(0, 0, -7)},
		{"90m", now.Add(-90 * time.Minute)},
		{"2026-03-01T00:00:00Z", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseSince(tt.in, now)
		if err != nil || !got.Equal(tt.want) {
			t.Errorf("parseSince(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}

	if _, err := parseSince("yesterday", now); err == nil {
		t.Error("expected error for unparseable value")
	}
	if got, err := parseSince("2026-03-01", now); err != nil || got.Day() != 1 {
		t.Errorf("date form: %v, %v", got, err)
	}
}
