package store

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Files store when one of its bundles changes on disk.
// Bursts of events are collapsed into one reload per debounce interval.
type Watcher struct {
	files    *Files
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher watches the directories of the store's globs. debounce <= 0
// selects 100ms.
func NewWatcher(files *Files, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	dirs := map[string]struct{}{}
	for _, pattern := range files.cfg.Globs {
		dirs[filepath.Dir(pattern)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return &Watcher{
		files:    files,
		watcher:  fsw,
		logger:   files.cfg.Logger,
		debounce: debounce,
	}, nil
}

// Watch blocks until ctx is cancelled. onChange, if non-nil, runs after every
// reload attempt with its result.
func (w *Watcher) Watch(ctx context.Context, onChange func(error)) error {
	defer w.stopTimer()
	w.logger.Info("translation watcher started", "debounce_ms", w.debounce.Milliseconds())
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("translation watcher stopped")
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.matches(event) {
				continue
			}
			w.logger.Debug("bundle event", "path", event.Name, "op", event.Op.String())
			w.schedule(onChange)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("translation watcher error", "error", err)
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	w.stopTimer()
	return w.watcher.Close()
}

func (w *Watcher) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	for _, pattern := range w.files.cfg.Globs {
		if ok, _ := filepath.Match(pattern, event.Name); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) schedule(onChange func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		err := w.files.Reload()
		if err != nil {
			w.logger.Error("translation reload failed", "error", err)
		}
		if onChange != nil {
			onChange(err)
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
