package themes

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/hfqr/internal/domain"
)

// Mapper converts theme file entries to domain.Theme values
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapThemes converts ThemesConfig to []*domain.Theme.
// Invalid entries and repeated IDs are skipped; an empty result is an error.
func (m *Mapper) MapThemes(config ThemesConfig) ([]*domain.Theme, error) {
	themes := make([]*domain.Theme, 0, len(config))
	seen := make(map[string]bool, len(config))

	for _, props := range config {
		theme, ok := toTheme(props)
		if !ok || seen[theme.ID] {
			continue
		}
		seen[theme.ID] = true
		themes = append(themes, theme)
	}

	if len(themes) == 0 {
		return nil, fmt.Errorf("no valid themes found in themes config")
	}

	return themes, nil
}

func toTheme(props ThemeProps) (*domain.Theme, bool) {
	id := strings.ToLower(strings.TrimSpace(props.ID))
	if id == "" || len(props.Gradient) != 2 {
		return nil, false
	}

	theme := &domain.Theme{
		ID:           id,
		Name:         strings.TrimSpace(props.Name),
		GradientFrom: strings.TrimSpace(props.Gradient[0]),
		GradientTo:   strings.TrimSpace(props.Gradient[1]),
		Foreground:   orDefault(props.QR.Foreground, domain.DefaultForeground),
		Background:   orDefault(props.QR.Background, domain.DefaultBackground),
	}
	if theme.Name == "" {
		theme.Name = id
	}

	if err := theme.Validate(); err != nil {
		return nil, false
	}
	return theme, true
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
