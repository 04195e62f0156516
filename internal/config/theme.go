package config

// ThemeConfig holds presentation options passed through to the renderer.
type ThemeConfig struct {
	ColorMode ColorModeConfig `yaml:"color_mode" json:"colorMode"`
	Prism     PrismConfig     `yaml:"prism" json:"prism"`
	CustomCSS string          `yaml:"custom_css,omitempty" json:"customCss,omitempty"`
}

// ColorModeConfig sets the initial color mode and whether users may switch it.
type ColorModeConfig struct {
	DefaultMode               ColorMode `yaml:"default_mode" json:"defaultMode"`
	DisableSwitch             bool      `yaml:"disable_switch" json:"disableSwitch"`
	RespectPrefersColorScheme bool      `yaml:"respect_prefers_color_scheme" json:"respectPrefersColorScheme"`
}

// PrismConfig holds the light and dark code highlighting palettes.
type PrismConfig struct {
	Light CodePalette `yaml:"light" json:"theme"`
	Dark  CodePalette `yaml:"dark" json:"darkTheme"`
}

// CodePalette is a base highlighting theme with overrides.
type CodePalette struct {
	Base   string       `yaml:"base" json:"base"`
	Plain  *PlainColors `yaml:"plain,omitempty" json:"plain,omitempty"`
	Tokens []TokenStyle `yaml:"tokens,omitempty" json:"styles,omitempty"`
}

// PlainColors overrides the default foreground and background of code blocks.
type PlainColors struct {
	Color           string `yaml:"color,omitempty" json:"color,omitempty"`
	BackgroundColor string `yaml:"background_color,omitempty" json:"backgroundColor,omitempty"`
}

// TokenStyle restyles the given token types, e.g. comments.
type TokenStyle struct {
	Types     []string `yaml:"types" json:"types"`
	Color     string   `yaml:"color,omitempty" json:"color,omitempty"`
	FontStyle string   `yaml:"font_style,omitempty" json:"fontStyle,omitempty"`
}
