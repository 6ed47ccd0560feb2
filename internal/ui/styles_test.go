package ui

import "testing"

func TestNormalizeAccentColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "", false},
		{"OFF", "", false},
		{"default", "", false},
		{"0", "0", true},
		{" 212 ", "212", true},
		{"256", "", false},
		{"-3", "", false},
		{"#A78BFA", "#a78bfa", true},
		{"#f0a", "#ff00aa", true},
		{"#12345", "", false},
		{"purple", "", false},
	}

	for _, tt := range tests {
		got, ok := normalizeAccentColor(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("normalizeAccentColor(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestConfigureTheme(t *testing.T) {
	origAccent, origAccentBold, origColor := Accent, AccentBold, accentColor
	t.Cleanup(func() {
		Accent, AccentBold, accentColor = origAccent, origAccentBold, origColor
	})

	ConfigureTheme("39")
	if got, ok := AccentColor(); !ok || got != "39" {
		t.Fatalf("AccentColor() = (%q, %v), want (39, true)", got, ok)
	}

	// Unparseable values leave the current accent alone.
	ConfigureTheme("chartreuse")
	if got, _ := AccentColor(); got != "39" {
		t.Fatalf("AccentColor() = %q after invalid value, want 39", got)
	}

	ConfigureTheme("none")
	if _, ok := AccentColor(); ok {
		t.Fatal("expected accent color to be disabled")
	}
}
