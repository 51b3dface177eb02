package theme

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

// EmbeddedThemes contains all bundled theme CSS files.
//
//go:embed themes/*.css
var EmbeddedThemes embed.FS

// DefaultThemeName is the name of the built-in default theme.
const DefaultThemeName = "default"

// GetEmbeddedTheme retrieves a bundled theme by name.
func GetEmbeddedTheme(name string) (string, bool) {
	data, err := EmbeddedThemes.ReadFile("themes/" + name + ".css")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListEmbeddedThemes returns the names of all bundled themes.
func ListEmbeddedThemes() []string {
	entries, err := fs.ReadDir(EmbeddedThemes, "themes")
	if err != nil {
		return []string{DefaultThemeName}
	}

	var themes []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ext := filepath.Ext(name); ext == ".css" {
			themes = append(themes, strings.TrimSuffix(name, ext))
		}
	}
	return themes
}

// IsEmbeddedTheme reports whether a theme name is bundled.
func IsEmbeddedTheme(name string) bool {
	_, found := GetEmbeddedTheme(name)
	return found
}
