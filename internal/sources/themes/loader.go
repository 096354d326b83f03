package themes

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of themes.yaml
type Loader struct {
	filePath string
}

// NewLoader creates a new theme file loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the file the loader reads
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads and parses the theme file
func (l *Loader) Load() (ThemesConfig, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes file: %w", err)
	}

	var config ThemesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse themes yaml: %w", err)
	}

	return config, nil
}
