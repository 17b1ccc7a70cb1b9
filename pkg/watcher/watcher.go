// Package watcher turns filesystem write activity in tracked workspace
// directories into file-level dirty notifications.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/draft/errors"
	"github.com/grovetools/draft/logging"
	"github.com/grovetools/draft/pkg/event"
	"github.com/grovetools/draft/pkg/resource"
	"github.com/sirupsen/logrus"
)

// Watcher watches workspace directories and emits a resource key for every
// file that was written, with rapid successive writes to the same file
// debounced into one notification.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onDirty  *event.Emitter[resource.Key]
	debounce time.Duration
	logger   *logrus.Entry

	mu         sync.Mutex
	lastChange map[resource.Key]time.Time
}

// New creates a Watcher for the given directories. Each directory and its
// subdirectories are watched; fsnotify does not recurse, so subdirectories
// are added by walking.
func New(dirs []string, debounceMs int) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeWatcherFailed, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		watcher:    fsw,
		onDirty:    event.New[resource.Key](),
		logger:     logging.NewLogger("watcher"),
		lastChange: make(map[resource.Key]time.Time),
	}

	if debounceMs <= 0 {
		debounceMs = 100
	}
	w.debounce = time.Duration(debounceMs) * time.Millisecond

	for _, dir := range dirs {
		if err := w.addRecursive(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	return w, nil
}

// OnDidMarkDirty is the stream of resources that changed on disk.
func (w *Watcher) OnDidMarkDirty() *event.Emitter[resource.Key] {
	return w.onDirty
}

// addRecursive watches dir and every subdirectory beneath it.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return errors.WatcherFailed(path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return errors.WatcherFailed(path, err)
		}
		w.logger.WithField("dir", path).Debug("Watching directory")
		return nil
	})
}

// Start consumes filesystem events until the context is cancelled. It
// blocks, so callers run it in a goroutine.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.watcher.Close()
			return
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	// New directories join the watch so files created below them are seen.
	if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
		if ev.Op&fsnotify.Create != 0 {
			if err := w.watcher.Add(ev.Name); err != nil {
				w.logger.WithError(err).Warnf("Failed to watch new directory %s", ev.Name)
			}
		}
		return
	}

	key := resource.NewKey(ev.Name)

	w.mu.Lock()
	last := w.lastChange[key]
	now := time.Now()
	if now.Sub(last) < w.debounce {
		w.mu.Unlock()
		w.logger.WithField("resource", key.String()).Debug("Debounced file change")
		return
	}
	// Entries past the debounce window no longer suppress anything, so
	// evict them to keep the map from growing with every file ever seen.
	for k, t := range w.lastChange {
		if now.Sub(t) >= w.debounce {
			delete(w.lastChange, k)
		}
	}
	w.lastChange[key] = now
	w.mu.Unlock()

	w.logger.WithField("resource", key.String()).Debug("File changed")
	w.onDirty.Fire(key)
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
