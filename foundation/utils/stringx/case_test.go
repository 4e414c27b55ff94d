// File: case_test.go
// Title: Case Conversion Tests

package stringx

import (
	"testing"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"greeting", "Greeting"},
		{"Greeting", "Greeting"},
		{"menu.start-game", "MenuStartGame"},
		{"options_video_quality", "OptionsVideoQuality"},
		{"keepHTTPCase", "KeepHTTPCase"},
		{"  spaced   words ", "SpacedWords"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToPascalCase(tt.input); got != tt.want {
				t.Errorf("ToPascalCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		want     string
	}{
		{"plain", "greeting", "", "Greeting"},
		{"leading digit", "2player", "", "X2player"},
		{"fallback used", "...", "menu", "Menu"},
		{"nothing usable", "", "", "X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToIdentifier(tt.input, tt.fallback); got != tt.want {
				t.Errorf("ToIdentifier(%q, %q) = %q, want %q", tt.input, tt.fallback, got, tt.want)
			}
		})
	}
}
