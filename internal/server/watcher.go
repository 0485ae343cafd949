package server

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"finaltrace/internal/config"
	"finaltrace/internal/logging"
)

// ConfigWatcher watches the config file for changes and applies the bits
// that are safe to change live (currently the log level). Editors tend to
// fire several events per save, so changes are debounced.
type ConfigWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	configPath  string
	debounceDur time.Duration
	lastEvent   time.Time
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// NewConfigWatcher creates a watcher for the given config file path.
func NewConfigWatcher(configPath string) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &ConfigWatcher{
		watcher:     watcher,
		configPath:  configPath,
		debounceDur: 500 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the watch loop runs in a goroutine
// until Stop is called or the context is cancelled.
func (cw *ConfigWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	cw.running = true
	cw.mu.Unlock()

	// Watch the directory, not the file: many editors replace the file on
	// save, which drops a direct file watch.
	dir := filepath.Dir(cw.configPath)
	if err := cw.watcher.Add(dir); err != nil {
		cw.mu.Lock()
		cw.running = false
		cw.mu.Unlock()
		return err
	}

	logging.Server("Watching config file %s for changes", cw.configPath)
	go cw.loop(ctx)
	return nil
}

func (cw *ConfigWatcher) loop(ctx context.Context) {
	defer close(cw.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopCh:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(cw.configPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cw.mu.Lock()
			now := time.Now()
			debounced := now.Sub(cw.lastEvent) < cw.debounceDur
			if !debounced {
				cw.lastEvent = now
			}
			cw.mu.Unlock()
			if debounced {
				continue
			}
			cw.reload()
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryServer).Warn("Config watcher error: %v", err)
		}
	}
}

func (cw *ConfigWatcher) reload() {
	cfg, err := config.Load(cw.configPath)
	if err != nil {
		logging.Get(logging.CategoryServer).Warn("Config reload failed: %v", err)
		return
	}
	logging.SetLevel(cfg.Logging.Level)
	logging.Server("Config reloaded: log level now %q", cfg.Logging.Level)
}

// Stop stops the watcher and waits for the loop to exit.
func (cw *ConfigWatcher) Stop() {
	cw.mu.Lock()
	if !cw.running {
		cw.mu.Unlock()
		return
	}
	cw.running = false
	cw.mu.Unlock()

	close(cw.stopCh)
	cw.watcher.Close()
	<-cw.doneCh
}
