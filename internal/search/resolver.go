package search

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// PointerSource answers "which physical index is live". Satisfied by
// *store.Store; declared here so the search package does not depend on the
// store package.
type PointerSource interface {
	CurrentIndex(ctx context.Context) (string, error)
}

// Resolver resolves the live physical index through the pointer store on
// every request. The open Bleve handle is cached only while the pointer
// value stays the same; as soon as a rebuild repoints it, the stale handle
// is closed and the new index opened. Callers must never hold the returned
// index beyond one request.
type Resolver struct {
	engine  *Engine
	pointer PointerSource
	logger  *slog.Logger

	mu   sync.Mutex
	name string
	idx  *Index
}

// NewResolver creates a Resolver reading the pointer from pointer and
// opening indexes through engine.
func NewResolver(engine *Engine, pointer PointerSource, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{engine: engine, pointer: pointer, logger: logger}
}

// Resolve returns the currently-live index.
// Returns errors.ErrNotFound (propagated from the pointer store) if no
// index has ever been published.
func (r *Resolver) Resolve(ctx context.Context) (*Index, error) {
	name, err := r.pointer.CurrentIndex(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.idx != nil && r.name == name {
		return r.idx, nil
	}

	if r.idx != nil {
		if closeErr := r.idx.Close(); closeErr != nil {
			r.logger.Warn("close superseded index handle", "index", r.name, "error", closeErr)
		}
		r.idx = nil
	}

	idx, err := r.engine.Open(name)
	if err != nil {
		return nil, err
	}

	r.logger.Info("resolved live search index", "index", name)
	r.name = name
	r.idx = idx
	return idx, nil
}

// Close releases the cached index handle, if any.
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.idx == nil {
		return nil
	}
	err := r.idx.Close()
	r.idx = nil
	r.name = ""
	return err
}
