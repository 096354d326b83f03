package domain

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  color.RGBA
		wantError bool
	}{
		{name: "long form", input: "#f1c40f", expected: color.RGBA{R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff}},
		{name: "short form", input: "#fff", expected: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{name: "no hash", input: "000000", expected: color.RGBA{A: 0xff}},
		{name: "uppercase", input: "#FFFFFF", expected: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{name: "bad length", input: "#abcd", wantError: true},
		{name: "bad digits", input: "#gggggg", wantError: true},
		{name: "empty", input: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("ParseHexColor(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBuiltinThemesAreValid(t *testing.T) {
	themes := BuiltinThemes()
	if len(themes) != 5 {
		t.Fatalf("BuiltinThemes() returned %d themes, want 5", len(themes))
	}

	seen := make(map[string]bool)
	for _, theme := range themes {
		if err := theme.Validate(); err != nil {
			t.Errorf("builtin theme %s invalid: %v", theme.ID, err)
		}
		if seen[theme.ID] {
			t.Errorf("duplicate theme id %s", theme.ID)
		}
		seen[theme.ID] = true
	}
}

func TestThemeValidate(t *testing.T) {
	theme := &Theme{ID: "x", GradientFrom: "#000", GradientTo: "#fff", Foreground: "#000", Background: "nope"}
	if err := theme.Validate(); err == nil {
		t.Error("Validate() should reject an unparsable background")
	}

	theme = &Theme{GradientFrom: "#000", GradientTo: "#fff", Foreground: "#000", Background: "#fff"}
	if err := theme.Validate(); err == nil {
		t.Error("Validate() should reject a missing id")
	}
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile("reubencf")

	if p.FullName != "reubencf" {
		t.Errorf("FullName = %q, want username", p.FullName)
	}
	if p.AvatarURL != DefaultAvatarURL {
		t.Errorf("AvatarURL = %q, want default avatar", p.AvatarURL)
	}
	if p.ProfileURL != "https://huggingface.co/reubencf" {
		t.Errorf("ProfileURL = %q", p.ProfileURL)
	}
	if !p.Fallback {
		t.Error("DefaultProfile should be marked as fallback")
	}

	withRes := p.WithResource("model", "my-model")
	if withRes.ResourceType == nil || *withRes.ResourceType != "model" {
		t.Errorf("ResourceType = %v, want model", withRes.ResourceType)
	}
	if p.ResourceType != nil {
		t.Error("WithResource should not mutate the receiver")
	}

	none := p.WithResource("", "")
	if none.ResourceType != nil || none.ResourceName != nil {
		t.Error("empty resource fields should be reported as absent")
	}
}

func TestProfileForUsername(t *testing.T) {
	p := &Profile{
		Username:   "reubencf",
		ProfileURL: ProfileURLFor("reubencf"),
		Type:       ProfileType,
		FullName:   "Reuben Fernandes",
	}

	got := p.ForUsername("ReubenCF")
	if got.Username != "ReubenCF" {
		t.Errorf("Username = %q, want ReubenCF", got.Username)
	}
	if got.ProfileURL != "https://huggingface.co/ReubenCF" {
		t.Errorf("ProfileURL = %q", got.ProfileURL)
	}
	if got.FullName != "Reuben Fernandes" {
		t.Errorf("FullName = %q, want it carried over", got.FullName)
	}
	if p.Username != "reubencf" || got == p {
		t.Error("ForUsername should not mutate the receiver")
	}
}
