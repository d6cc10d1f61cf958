package listings

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reloader is satisfied by Store.
type Reloader interface {
	Path() string
	Reload(ctx context.Context) (*Snapshot, error)
}

// Watcher reloads the listings file whenever it changes on disk. It watches
// the parent directory so editors that replace the file are still seen.
type Watcher struct {
	mu       sync.Mutex
	target   Reloader
	logger   *slog.Logger
	debounce time.Duration
	watcher  *fsnotify.Watcher
	file     string

	pending   bool
	lastEvent time.Time

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher prepares a watcher; call Start to begin.
func NewWatcher(target Reloader, logger *slog.Logger, debounce time.Duration) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("listings: create watcher: %w", err)
	}
	abs, err := filepath.Abs(target.Path())
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("listings: resolve %s: %w", target.Path(), err)
	}
	return &Watcher{
		target:   target,
		logger:   logger,
		debounce: debounce,
		watcher:  fw,
		file:     abs,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	dir := filepath.Dir(w.file)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("listings: watch %s: %w", dir, err)
	}
	w.running = true
	w.logger.Info("watching listings file", slog.String("path", w.file))
	go w.run(ctx)
	return nil
}

// Stop ends the loop and waits for it to exit. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("close listings watcher", slog.Any("error", err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("listings watcher error", slog.Any("error", err))
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.file {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}
	w.mu.Lock()
	w.pending = true
	w.lastEvent = time.Now()
	w.mu.Unlock()
}

// flush reloads once the file has been quiet for the debounce window.
func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	due := w.pending && time.Since(w.lastEvent) >= w.debounce
	if due {
		w.pending = false
	}
	w.mu.Unlock()
	if !due {
		return
	}
	if _, err := w.target.Reload(ctx); err != nil {
		w.logger.Warn("reload listings after change, keeping previous data", slog.Any("error", err))
	}
}
