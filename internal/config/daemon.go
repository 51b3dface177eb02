package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Bar edge positions.
const (
	PositionTop    = "top"
	PositionBottom = "bottom"
)

// DaemonConfig is the configuration for staxbard.
// Loaded from ~/.config/staxbar/staxbard.toml
type DaemonConfig struct {
	Bar     BarConfig     `toml:"bar"`
	Theme   ThemeConfig   `toml:"theme"`
	Accent  AccentConfig  `toml:"accent"`
	Sound   SoundConfig   `toml:"sound"`
	Journal JournalConfig `toml:"journal"`
}

// BarConfig contains bar window settings.
type BarConfig struct {
	Position      string `toml:"position"`       // "top" or "bottom"
	Height        int    `toml:"height"`         // Bar height in pixels
	MarginX       int    `toml:"margin_x"`       // Horizontal margin from screen edges
	MarginY       int    `toml:"margin_y"`       // Margin from the anchored edge
	ExclusiveZone bool   `toml:"exclusive_zone"` // Reserve space so windows don't overlap
}

// ThemeConfig contains theming settings.
type ThemeConfig struct {
	Name        string `toml:"name"`         // Theme name (embedded or user file)
	ColorScheme string `toml:"color_scheme"` // "light", "dark", or "system"
}

// Color schemes.
const (
	ColorSchemeSystem = "system"
	ColorSchemeLight  = "light"
	ColorSchemeDark   = "dark"
)

// AccentConfig contains the bar accent color, adjustable at runtime via the
// color scales in the bar popover.
type AccentConfig struct {
	Hue   float64 `toml:"hue"`   // 0.0-1.0
	Alpha float64 `toml:"alpha"` // 0.0-1.0
}

// SoundConfig contains push chime settings.
type SoundConfig struct {
	Enabled bool   `toml:"enabled"`
	File    string `toml:"file"`   // Path to a wav/ogg/mp3 file; empty disables
	Volume  int    `toml:"volume"` // 0-100
}

// JournalConfig contains message journal settings.
type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // Override journal file path; empty = default
}

// DefaultDaemonConfig returns a DaemonConfig with default values.
func DefaultDaemonConfig() *DaemonConfig {
	return &DaemonConfig{
		Bar: BarConfig{
			Position:      PositionBottom,
			Height:        28,
			MarginX:       0,
			MarginY:       0,
			ExclusiveZone: true,
		},
		Theme: ThemeConfig{
			Name:        "default",
			ColorScheme: ColorSchemeSystem,
		},
		Accent: AccentConfig{
			Hue:   0.6,
			Alpha: 1.0,
		},
		Sound: SoundConfig{
			Enabled: false,
			File:    "",
			Volume:  80,
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "",
		},
	}
}

// DaemonConfigPath returns the path to the daemon config file.
func DaemonConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "staxbar", "staxbard.toml")
}

// LoadDaemonConfig loads the daemon configuration from the default path.
// Returns defaults if the file doesn't exist.
func LoadDaemonConfig() (*DaemonConfig, error) {
	return LoadDaemonConfigFrom(DaemonConfigPath())
}

// LoadDaemonConfigFrom loads the daemon configuration from the given path.
func LoadDaemonConfigFrom(path string) (*DaemonConfig, error) {
	cfg := DefaultDaemonConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *DaemonConfig) Validate() error {
	if c.Bar.Position != PositionTop && c.Bar.Position != PositionBottom {
		return fmt.Errorf("invalid bar position %q: must be %q or %q",
			c.Bar.Position, PositionTop, PositionBottom)
	}
	if c.Bar.Height <= 0 {
		return fmt.Errorf("invalid bar height %d: must be positive", c.Bar.Height)
	}
	if c.Accent.Hue < 0 || c.Accent.Hue > 1 {
		return fmt.Errorf("invalid accent hue %v: must be in [0, 1]", c.Accent.Hue)
	}
	if c.Accent.Alpha < 0 || c.Accent.Alpha > 1 {
		return fmt.Errorf("invalid accent alpha %v: must be in [0, 1]", c.Accent.Alpha)
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 100 {
		return fmt.Errorf("invalid sound volume %d: must be 0-100", c.Sound.Volume)
	}
	return nil
}

// JournalFile returns the effective journal path for this config.
func (c *DaemonConfig) JournalFile() string {
	if c.Journal.Path != "" {
		return c.Journal.Path
	}
	return JournalPath()
}

// Save writes the daemon configuration to the given path.
func (c *DaemonConfig) Save(path string) error {
	if path == "" {
		path = DaemonConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
