// Package watcher reloads the catalog when its file changes on disk.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 400 * time.Millisecond

// Watcher watches a single file and invokes a callback after it settles.
//
// The parent directory is watched rather than the file itself so that
// editors which save by writing a temp file and renaming it over the
// original keep triggering events.
type Watcher struct {
	path     string
	dir      string
	onChange func(path string)
	debounce time.Duration
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	timer    *time.Timer
	done     chan struct{}
	started  bool
	stopOnce sync.Once
	logger   *zap.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLogger sets a logger for watch events.
func WithLogger(l *zap.Logger) WatcherOption {
	return func(w *Watcher) { w.logger = l }
}

// WithDebounce sets how long the file must stay quiet before onChange runs.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher creates a watcher for path. onChange runs once per burst of
// create or write events on the file. Removing or renaming the file away
// cancels a pending callback.
func NewWatcher(path string, onChange func(path string), opts ...WatcherOption) *Watcher {
	clean := filepath.Clean(path)
	w := &Watcher{
		path:     clean,
		dir:      filepath.Dir(clean),
		onChange: onChange,
		debounce: defaultDebounce,
		done:     make(chan struct{}),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Start starts the watcher. It runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.watcher = watcher
	w.started = true
	w.logger.Debug("watcher starting", zap.String("path", w.path), zap.Duration("debounce", w.debounce))
	go w.run(ctx, watcher)
	return nil
}

func (w *Watcher) run(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.logger.Debug("watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	w.logger.Debug("watcher event", zap.String("op", ev.Op.String()), zap.String("path", ev.Name))
	switch {
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		w.schedule()
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		// the file is gone for now; a following Create reschedules
		w.cancel()
		w.logger.Debug("watched file moved away", zap.String("path", w.path))
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(w.debounce, func() { w.fire(t) })
	w.timer = t
}

// fire runs the callback for t unless t has been replaced or cancelled since.
func (w *Watcher) fire(t *time.Timer) {
	w.mu.Lock()
	if w.timer != t {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	if _, err := os.Stat(w.path); err != nil {
		return
	}
	w.logger.Debug("watcher change settled", zap.String("path", w.path))
	if w.onChange != nil {
		w.onChange(w.path)
	}
}

func (w *Watcher) cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Stop stops the watcher. Pending callbacks are cancelled.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.started = false
	if w.watcher != nil {
		_ = w.watcher.Close()
		w.watcher = nil
	}
	w.mu.Unlock()
	w.stopOnce.Do(func() { close(w.done) })
}
