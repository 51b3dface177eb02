package theme

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Watcher polls a theme file for modifications and reports the new CSS.
// Polling is used here because a theme swap may point at a file that does
// not exist yet.
type Watcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	theme        *Theme
	pollInterval time.Duration
	onChange     func(css string)

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher for the given theme.
func NewWatcher(theme *Theme, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger:       logger,
		theme:        theme,
		pollInterval: time.Second,
	}
}

// SetChangeCallback sets the callback invoked with new CSS content when the
// theme file changes.
func (w *Watcher) SetChangeCallback(callback func(css string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = callback
}

// Start begins polling. Bundled themes are never watched.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running || w.theme.IsBundled {
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go w.watchLoop(ctx)

	w.logger.Debug("theme watcher started", "path", w.theme.Path)
	return nil
}

// Stop stops polling and waits for the watch loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.checkForChanges()
		}
	}
}

func (w *Watcher) checkForChanges() {
	w.mu.RLock()
	theme := w.theme
	callback := w.onChange
	w.mu.RUnlock()

	if _, err := os.Stat(theme.Path); err != nil {
		return
	}

	changed, err := theme.Reload()
	if err != nil {
		w.logger.Warn("failed to reload theme", "path", theme.Path, "error", err)
		return
	}

	if changed {
		w.logger.Info("theme file changed", "path", theme.Path)
		if callback != nil {
			callback(theme.CSS)
		}
	}
}
