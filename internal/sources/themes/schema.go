package themes

// ThemesConfig is the top-level structure of themes.yaml: a list of presets
type ThemesConfig []ThemeProps

// ThemeProps is one preset as written in the file
type ThemeProps struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name,omitempty"`
	Gradient []string `yaml:"gradient"`
	QR       QRProps  `yaml:"qr,omitempty"`
}

// QRProps holds the QR module colours of a preset
type QRProps struct {
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}
