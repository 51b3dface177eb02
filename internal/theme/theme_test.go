package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEmbeddedTheme_Default(t *testing.T) {
	css, found := GetEmbeddedTheme("default")
	require.True(t, found, "default theme should be found")
	assert.NotEmpty(t, css)
	assert.Contains(t, css, "window.staxbar")
	assert.Contains(t, css, ".staxbar-message")
}

func TestGetEmbeddedTheme_Minimal(t *testing.T) {
	css, found := GetEmbeddedTheme("minimal")
	require.True(t, found, "minimal theme should be found")
	assert.NotEmpty(t, css)
	assert.Contains(t, css, "window.staxbar")
}

func TestGetEmbeddedTheme_NotFound(t *testing.T) {
	css, found := GetEmbeddedTheme("nonexistent")
	assert.False(t, found)
	assert.Empty(t, css)
}

func TestListEmbeddedThemes(t *testing.T) {
	themes := ListEmbeddedThemes()
	assert.Contains(t, themes, "default")
	assert.Contains(t, themes, "minimal")
}

func TestIsEmbeddedTheme(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"default", true},
		{"minimal", true},
		{"nonexistent", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsEmbeddedTheme(tt.name))
		})
	}
}

func TestBundledThemes_ValidCSS(t *testing.T) {
	for _, themeName := range ListEmbeddedThemes() {
		t.Run(themeName, func(t *testing.T) {
			css, found := GetEmbeddedTheme(themeName)
			require.True(t, found)

			openBraces := strings.Count(css, "{")
			closeBraces := strings.Count(css, "}")
			assert.Equal(t, openBraces, closeBraces,
				"theme %s should have balanced braces", themeName)
		})
	}
}

func TestNewTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.css")
	require.NoError(t, os.WriteFile(path, []byte("window.staxbar { color: red; }"), 0644))

	theme, err := NewTheme("custom", path)
	require.NoError(t, err)
	assert.Equal(t, "custom", theme.Name)
	assert.Equal(t, path, theme.Path)
	assert.Contains(t, theme.CSS, "color: red")
	assert.False(t, theme.IsBundled)
	assert.False(t, theme.ModTime.IsZero())
}

func TestNewTheme_MissingFile(t *testing.T) {
	_, err := NewTheme("gone", filepath.Join(t.TempDir(), "gone.css"))
	assert.Error(t, err)
}

func TestTheme_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.css")
	require.NoError(t, os.WriteFile(path, []byte("window.staxbar { color: red; }"), 0644))

	theme, err := NewTheme("custom", path)
	require.NoError(t, err)

	changed, err := theme.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "unmodified theme should not report a change")

	// mtime granularity can be coarse on some filesystems
	newTime := time.Now().Add(2 * time.Second)
	require.NoError(t, os.WriteFile(path, []byte("window.staxbar { color: blue; }"), 0644))
	require.NoError(t, os.Chtimes(path, newTime, newTime))

	changed, err = theme.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, theme.CSS, "color: blue")
}

func TestTheme_ReloadBundledIsNoOp(t *testing.T) {
	theme := &Theme{Name: DefaultThemeName, IsBundled: true}
	changed, err := theme.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
}
