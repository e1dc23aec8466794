package engine

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fonto-dev/fonto/errors"
)

// SourceWatcher watches the ontology source directory and triggers an
// engine refresh when documents change. Rapid bursts of file events (a git
// pull touching hundreds of files) collapse into one refresh.
type SourceWatcher struct {
	engine  *Engine
	watcher *fsnotify.Watcher

	mu             sync.Mutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// NewSourceWatcher watches the engine's configured source directory.
func NewSourceWatcher(e *Engine) (*SourceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := watcher.Add(e.cfg.SourceDir); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch source dir %s", e.cfg.SourceDir)
	}
	return &SourceWatcher{
		engine:         e,
		watcher:        watcher,
		debouncePeriod: 2 * time.Second,
	}, nil
}

// Run processes file events until the context is cancelled.
func (sw *SourceWatcher) Run(ctx context.Context) {
	defer sw.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				sw.scheduleRefresh(ctx)
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.engine.log.Warnw("source watcher error", "error", err)
		}
	}
}

func (sw *SourceWatcher) scheduleRefresh(ctx context.Context) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.debounceTimer != nil {
		sw.debounceTimer.Stop()
	}
	sw.debounceTimer = time.AfterFunc(sw.debouncePeriod, func() {
		sw.engine.log.Infow("source change detected, refreshing")
		if _, err := sw.engine.Refresh(ctx); err != nil {
			sw.engine.log.Errorw("refresh after source change failed", "error", err)
		}
	})
}
