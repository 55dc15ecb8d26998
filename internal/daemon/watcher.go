package daemon

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/glance/internal/config"
)

// ConfigWatcher watches the config file and reloads it on change.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	filePath string
	debounce time.Duration

	onReload func(cfg *config.Config)
	onError  func(err error)

	mu      sync.Mutex
	timer   *time.Timer
	done    chan struct{}
	running bool
}

// NewConfigWatcher creates a watcher for the config file at path.
func NewConfigWatcher(path string, logger *slog.Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &ConfigWatcher{
		watcher:  watcher,
		logger:   logger,
		filePath: path,
		debounce: 250 * time.Millisecond,
		done:     make(chan struct{}),
	}, nil
}

// SetDebounce sets how long to wait after the last change before reloading.
func (w *ConfigWatcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// SetReloadCallback sets the callback invoked with a valid new config.
func (w *ConfigWatcher) SetReloadCallback(callback func(cfg *config.Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = callback
}

// SetErrorCallback sets the callback invoked when a changed config fails to load.
func (w *ConfigWatcher) SetErrorCallback(callback func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = callback
}

// Start begins watching the file for changes.
func (w *ConfigWatcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory containing the file (editors replace files on save)
	dir := filepath.Dir(w.filePath)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	go w.watch()
	w.logger.Debug("config watcher started", "path", w.filePath)
	return nil
}

// watch is the main watch loop.
func (w *ConfigWatcher) watch() {
	filename := filepath.Base(w.filePath)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only care about our file
			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule()
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

// schedule debounces bursts of events from partial writes.
func (w *ConfigWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *ConfigWatcher) reload() {
	w.mu.Lock()
	onReload, onError := w.onReload, w.onError
	w.mu.Unlock()

	cfg, err := config.LoadConfig(w.filePath)
	if err != nil {
		w.logger.Warn("config file changed but failed to load", "path", w.filePath, "error", err)
		if onError != nil {
			onError(err)
		}
		return
	}

	w.logger.Info("config reloaded", "path", w.filePath)
	if onReload != nil {
		onReload(cfg)
	}
}

// Stop stops the watcher.
func (w *ConfigWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.done)
	return w.watcher.Close()
}
