package config

// UIConfig holds workbench configuration.
type UIConfig struct {
	// Theme is auto, dark or light. auto follows the terminal background.
	Theme string `yaml:"theme"`

	// LoadExample starts the editor with the bundled example program.
	LoadExample bool `yaml:"load_example"`

	// SplitPaneRatio is the editor's share of the width (0.0-1.0).
	// Default is 0.5 (editor and result side by side)
	SplitPaneRatio float64 `yaml:"split_pane_ratio"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:          "auto",
		LoadExample:    true,
		SplitPaneRatio: 0.5,
	}
}

// DarkMode resolves the theme. detected is used for auto.
func (c *UIConfig) DarkMode(detected bool) bool {
	switch c.Theme {
	case "dark":
		return true
	case "light":
		return false
	default:
		return detected
	}
}
