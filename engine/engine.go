// Package engine exposes the four ontology query operations — Define,
// Search, Hierarchy, Locate — over indices built by the ingest and index
// packages.
//
// The engine has exactly two states: loading (no snapshot published yet)
// and ready. Once ready it stays ready: a refresh builds the replacement
// snapshot off to the side and swaps a single pointer, so concurrent
// queries always observe either the fully-old or fully-new indices.
package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/fonto-dev/fonto/config"
	"github.com/fonto-dev/fonto/errors"
	"github.com/fonto-dev/fonto/index"
	"github.com/fonto-dev/fonto/ingest"
)

// snapshot is one immutable, fully-built generation of indices.
type snapshot struct {
	index   *index.Index
	builtAt time.Time
}

// Engine answers typed queries against the currently published snapshot.
type Engine struct {
	cfg *config.Config
	log *zap.SugaredLogger

	current atomic.Pointer[snapshot]

	readyOnce sync.Once
	ready     chan struct{} // closed when the first snapshot publishes

	refreshMu sync.Mutex // serializes Load/Refresh; readers never take it
}

// New returns an engine in the loading state. Call Load to make it ready.
func New(cfg *config.Config, log *zap.SugaredLogger) *Engine {
	return &Engine{
		cfg:   cfg,
		log:   log.Named("engine"),
		ready: make(chan struct{}),
	}
}

// Load runs the ingestion pipeline and index build, then publishes the
// first snapshot. A total ingestion failure leaves the engine not-ready
// and is returned to the caller.
func (e *Engine) Load(ctx context.Context) (*ingest.Report, error) {
	return e.rebuild(ctx, false)
}

// Refresh re-parses all sources, bypassing the cache, and atomically
// replaces the published snapshot. Queries in flight keep the old
// snapshot until the swap completes.
func (e *Engine) Refresh(ctx context.Context) (*ingest.Report, error) {
	return e.rebuild(ctx, true)
}

func (e *Engine) rebuild(ctx context.Context, force bool) (*ingest.Report, error) {
	e.refreshMu.Lock()
	defer e.refreshMu.Unlock()

	cfg := *e.cfg
	if force {
		cfg.ForceRefresh = true
	}

	store, report, err := ingest.New(&cfg, e.log).Run(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := index.Build(store, e.log)
	if err != nil {
		return nil, err
	}

	e.current.Store(&snapshot{index: idx, builtAt: time.Now()})
	e.readyOnce.Do(func() { close(e.ready) })

	e.log.Infow("snapshot published",
		"statements", report.Statements,
		"entities", report.Entities,
		"from_cache", report.FromCache,
	)
	return report, nil
}

// Ready reports whether a snapshot has been published.
func (e *Engine) Ready() bool {
	return e.current.Load() != nil
}

// BuiltAt returns the publish time of the current snapshot, zero when
// still loading.
func (e *Engine) BuiltAt() time.Time {
	if s := e.current.Load(); s != nil {
		return s.builtAt
	}
	return time.Time{}
}

// acquire returns the current snapshot. While loading, it either blocks
// until the first snapshot publishes or rejects with ErrNotReady,
// according to configuration.
func (e *Engine) acquire(ctx context.Context) (*snapshot, error) {
	if s := e.current.Load(); s != nil {
		return s, nil
	}
	if !e.cfg.Engine.WaitForReady {
		return nil, errors.Wrap(errors.ErrNotReady, "indices are still being built")
	}
	select {
	case <-e.ready:
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "interrupted waiting for indices")
	}
	s := e.current.Load()
	if s == nil {
		return nil, errors.Wrap(errors.ErrNotReady, "indices are still being built")
	}
	return s, nil
}
