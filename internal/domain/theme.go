package domain

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

const (
	DefaultForeground = "#000000"
	DefaultBackground = "#FFFFFF"
)

// Theme is a card preset: the gradient behind the card and the QR colours.
type Theme struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	GradientFrom string `json:"gradientFrom"`
	GradientTo   string `json:"gradientTo"`
	Foreground   string `json:"foreground"`
	Background   string `json:"background"`
}

// BuiltinThemes returns the presets used when no theme file is configured.
func BuiltinThemes() []*Theme {
	presets := []struct {
		id, name, from, to string
	}{
		{"sunflower", "Sunflower", "#f1c40f", "#f39c12"},
		{"emerald", "Emerald", "#34d399", "#10b981"},
		{"indigo", "Indigo", "#60a5fa", "#6366f1"},
		{"rose", "Rose", "#fb7185", "#f472b6"},
		{"sunset", "Sunset", "#f59e0b", "#ef4444"},
	}

	themes := make([]*Theme, 0, len(presets))
	for _, p := range presets {
		themes = append(themes, &Theme{
			ID:           p.id,
			Name:         p.name,
			GradientFrom: p.from,
			GradientTo:   p.to,
			Foreground:   DefaultForeground,
			Background:   DefaultBackground,
		})
	}
	return themes
}

// Validate checks that the theme has an ID and that every colour parses.
func (t *Theme) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("theme id is required")
	}
	for field, value := range map[string]string{
		"gradientFrom": t.GradientFrom,
		"gradientTo":   t.GradientTo,
		"foreground":   t.Foreground,
		"background":   t.Background,
	} {
		if _, err := ParseHexColor(value); err != nil {
			return fmt.Errorf("theme %s: %s: %w", t.ID, field, err)
		}
	}
	return nil
}

// ParseHexColor parses "#rgb" or "#rrggbb" (the leading # is optional).
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
