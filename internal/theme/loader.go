package theme

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Loader loads CSS themes into a gtk.CSSProvider and supports hot-reload
// for user themes.
type Loader struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	provider    *gtk.CSSProvider
	themesDir   string
	currentName string
	theme       *Theme
	watcher     *Watcher
}

// NewLoader creates a theme loader. The GTK CSS provider is created
// immediately; Apply attaches it to a display later.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	themesDir, err := ThemesDir()
	if err != nil {
		logger.Warn("failed to resolve themes directory", "error", err)
		themesDir = ""
	}

	return &Loader{
		logger:    logger,
		provider:  gtk.NewCSSProvider(),
		themesDir: themesDir,
	}
}

// LoadTheme loads a theme by name. User themes in the themes directory
// shadow bundled themes of the same name; unknown names fall back to the
// default bundled theme.
func (l *Loader) LoadTheme(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if name == "" {
		name = DefaultThemeName
	}

	if l.themesDir != "" {
		path := filepath.Join(l.themesDir, name+".css")
		if _, err := os.Stat(path); err == nil {
			theme, err := NewTheme(name, path)
			if err != nil {
				l.logger.Warn("failed to load user theme, trying bundled", "theme", name, "error", err)
			} else {
				l.install(theme)
				l.logger.Info("loaded user theme", "name", name, "path", path)
				return nil
			}
		}
	}

	if css, found := GetEmbeddedTheme(name); found {
		l.install(&Theme{Name: name, CSS: css, IsBundled: true})
		l.logger.Info("loaded bundled theme", "name", name)
		return nil
	}

	l.logger.Warn("theme not found, using default", "theme", name)
	css, _ := GetEmbeddedTheme(DefaultThemeName)
	l.install(&Theme{Name: DefaultThemeName, CSS: css, IsBundled: true})
	return nil
}

// install loads the theme CSS into the provider. Caller holds l.mu.
func (l *Loader) install(theme *Theme) {
	l.provider.LoadFromString(theme.CSS)
	l.theme = theme
	l.currentName = theme.Name
}

// Apply attaches the provider to a display. Passing nil uses the default
// display.
func (l *Loader) Apply(display *gdk.Display) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}

	gtk.StyleContextAddProviderForDisplay(
		display,
		l.provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
	l.logger.Debug("applied theme to display", "name", l.currentName)
}

// Reload reloads the current theme by name, picking up on-disk changes and
// new user overrides.
func (l *Loader) Reload() error {
	l.mu.RLock()
	name := l.currentName
	l.mu.RUnlock()
	return l.LoadTheme(name)
}

// StartHotReload watches the current theme file and reapplies it on change.
// Bundled themes are not watched.
func (l *Loader) StartHotReload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.theme == nil || l.theme.IsBundled {
		return
	}

	if l.watcher != nil {
		l.watcher.Stop()
	}

	l.watcher = NewWatcher(l.theme, l.logger)
	l.watcher.SetChangeCallback(func(css string) {
		l.mu.Lock()
		l.provider.LoadFromString(css)
		l.mu.Unlock()
		l.logger.Info("hot-reloaded theme", "name", l.currentName)
	})

	if err := l.watcher.Start(ctx); err != nil {
		l.logger.Warn("failed to start theme watcher", "error", err)
	}
}

// StopHotReload stops the theme file watcher.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		l.watcher.Stop()
		l.watcher = nil
	}
}

// CurrentTheme returns the name of the currently loaded theme.
func (l *Loader) CurrentTheme() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentName
}
