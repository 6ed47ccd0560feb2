package entity

import (
	"errors"
	"testing"

	"github.com/namanrajpal/openchamber/internal/errs"
)

func TestParseKind(t *testing.T) {
	for _, name := range []string{"agent", "Command", " agent "} {
		if _, err := ParseKind(name); err != nil {
			t.Errorf("ParseKind(%q) error: %v", name, err)
		}
	}
	if _, err := ParseKind("mode"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name       string
		wantErr    bool
		suggestion string
	}{
		{"researcher", false, ""},
		{"code-review_2", false, ""},
		{"", true, ""},
		{" padded ", true, "padded"},
		{".", true, ""},
		{"..", true, ""},
		{".hidden", true, "hidden"},
		{"a/b", true, "a-b"},
		{`a\b`, true, "a-b"},
	}
	for _, tt := range tests {
		err := ValidateName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err == nil {
			continue
		}
		var nameErr *errs.InvalidNameError
		if !errors.As(err, &nameErr) {
			t.Errorf("ValidateName(%q) returned %T", tt.name, err)
			continue
		}
		if nameErr.Suggestion != tt.suggestion {
			t.Errorf("ValidateName(%q) suggestion = %q, want %q", tt.name, nameErr.Suggestion, tt.suggestion)
		}
	}
}
