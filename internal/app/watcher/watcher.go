package watcher

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"hatchlog/internal/app/bus"
	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

// Watcher reloads the config file when it changes on disk
type Watcher interface {
	Start(ctx context.Context) error
	Close()
}

// Loader reads a config file
type Loader func(path string) (*config.Config, error)

// watcher implements the Watcher interface
type watcher struct {
	path      string
	dir       string
	name      string
	load      Loader
	bus       bus.Bus
	fsWatcher *fsnotify.Watcher
	debouncer Debouncer
	log       logger.Logger
	mu        sync.Mutex
	closed    bool
}

// NewWatcher creates a watcher for the config file at path
func NewWatcher(path string, load Loader, b bus.Bus, log logger.Logger) (Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &watcher{
		path:      absPath,
		dir:       filepath.Dir(absPath),
		name:      filepath.Base(absPath),
		load:      load,
		bus:       b,
		fsWatcher: fsw,
		log:       log,
	}

	w.debouncer = NewDebouncer(config.WatchDebounce, func(_ []string) {
		w.reload()
	})

	return w, nil
}

// Start watches the config directory until ctx is done. Editors often replace
// files by rename, so the directory is watched rather than the file.
func (w *watcher) Start(ctx context.Context) error {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return err
	}

	w.log.Info().Msgf("Watching %s for changes", w.path)

	go w.processEvents(ctx)

	return nil
}

// Close stops the watcher and releases resources
func (w *watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.closed = true
	w.debouncer.Stop()
	w.fsWatcher.Close()
}

// processEvents handles fsnotify events until ctx is done or the watcher closes
func (w *watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Close()
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}

			w.log.Error().Err(err).Msg("Watcher error")
		}
	}
}

// handleEvent debounces relevant events on the config file
func (w *watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != w.name {
		return
	}

	if !isRelevantEvent(event) {
		return
	}

	w.debouncer.Trigger(event.Name)
}

// reload loads the file and publishes it; invalid files keep the running config
func (w *watcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()

	if closed {
		return
	}

	cfg, err := w.load(w.path)
	if err != nil {
		w.log.Warn().Err(err).Msgf("Ignoring change to %s", w.name)
		return
	}

	w.bus.Publish(bus.Message{
		Type:     bus.EventConfigReloaded,
		Data:     bus.ConfigReloaded{Path: w.path, Config: cfg},
		Critical: true,
	})
}

// isRelevantEvent returns true if the event should trigger a reload
func isRelevantEvent(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename)
}
