package theme

import (
	"os"
	"path/filepath"
	"time"
)

// Theme is a CSS theme with its source metadata.
type Theme struct {
	Name      string    // theme name without the .css extension
	Path      string    // full path to the CSS file, empty for bundled themes
	CSS       string    // the CSS content
	ModTime   time.Time // last modification time, zero for bundled themes
	IsBundled bool
}

// NewTheme loads a theme from a CSS file on disk.
func NewTheme(name, path string) (*Theme, error) {
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     string(css),
		ModTime: info.ModTime(),
	}, nil
}

// Reload re-reads the theme from disk. It returns true if the content
// changed. Bundled themes never change.
func (t *Theme) Reload() (bool, error) {
	if t.IsBundled {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	css, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}

	changed := t.CSS != string(css)
	t.CSS = string(css)
	t.ModTime = info.ModTime()
	return changed, nil
}

// ThemesDir returns the user's theme override directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "staxbar", "themes"), nil
}

// ThemeInfo describes an available theme for listing.
type ThemeInfo struct {
	Name      string
	Path      string
	IsBundled bool
}

// ListAvailableThemes lists bundled and user themes. A user theme with the
// same name as a bundled one shadows it.
func ListAvailableThemes() ([]ThemeInfo, error) {
	seen := make(map[string]bool)
	var themes []ThemeInfo

	themesDir, err := ThemesDir()
	if err == nil {
		entries, err := os.ReadDir(themesDir)
		if err == nil {
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				name := entry.Name()
				if filepath.Ext(name) != ".css" {
					continue
				}
				themeName := name[:len(name)-4]
				seen[themeName] = true
				themes = append(themes, ThemeInfo{
					Name: themeName,
					Path: filepath.Join(themesDir, name),
				})
			}
		}
	}

	for _, name := range ListEmbeddedThemes() {
		if seen[name] {
			continue
		}
		themes = append(themes, ThemeInfo{Name: name, IsBundled: true})
	}

	return themes, nil
}
