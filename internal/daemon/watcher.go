package daemon

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/staxbar/internal/config"
)

// ConfigWatcher watches the daemon config file and reloads it on change.
// Invalid configs are reported through the error callback and the previous
// config stays in effect.
type ConfigWatcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	watcher    *fsnotify.Watcher
	configPath string
	current    *config.DaemonConfig

	onReload func(newConfig *config.DaemonConfig)
	onError  func(err error)

	done    chan struct{}
	running bool
}

// NewConfigWatcher creates a watcher for the daemon config file.
func NewConfigWatcher(logger *slog.Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &ConfigWatcher{
		logger:     logger,
		watcher:    watcher,
		configPath: config.DaemonConfigPath(),
		done:       make(chan struct{}),
	}, nil
}

// SetReloadCallback sets the callback invoked with each valid new config.
func (w *ConfigWatcher) SetReloadCallback(callback func(newConfig *config.DaemonConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = callback
}

// SetErrorCallback sets the callback invoked when a changed config fails
// validation.
func (w *ConfigWatcher) SetErrorCallback(callback func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = callback
}

// Start begins watching. The directory is watched rather than the file so
// editor rename-and-replace saves are seen.
func (w *ConfigWatcher) Start(initialConfig *config.DaemonConfig) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.current = initialConfig
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.configPath)); err != nil {
		return err
	}

	go w.watch()

	w.logger.Debug("config watcher started", "path", w.configPath)
	return nil
}

// Current returns the most recent valid configuration.
func (w *ConfigWatcher) Current() *config.DaemonConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *ConfigWatcher) watch() {
	filename := filepath.Base(w.configPath)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

// reload loads and validates the changed config, keeping the old one if the
// new one is invalid.
func (w *ConfigWatcher) reload() {
	newConfig, err := config.LoadDaemonConfig()
	if err != nil {
		w.logger.Warn("config file changed but validation failed", "error", err)
		w.mu.RLock()
		onError := w.onError
		w.mu.RUnlock()
		if onError != nil {
			onError(err)
		}
		return
	}

	w.mu.Lock()
	w.current = newConfig
	onReload := w.onReload
	w.mu.Unlock()

	w.logger.Info("config reloaded")
	if onReload != nil {
		onReload(newConfig)
	}
}

// Stop stops the watcher.
func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	close(w.done)
	_ = w.watcher.Close()
	w.logger.Debug("config watcher stopped")
}
