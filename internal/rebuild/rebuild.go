// Package rebuild implements the index build-and-swap pipeline.
//
// A rebuild provisions a brand-new physical index, populates it from the
// dataset one document at a time, repoints the live-index pointer to it in
// a single write, and finally reclaims the superseded index. Readers never
// observe a half-built index: the pointer only ever moves to an index that
// is fully populated, and on any fatal error it is left untouched.
package rebuild

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/leafdex/leafdex-server/internal/dataset"
	"github.com/leafdex/leafdex-server/internal/domain"
	"github.com/leafdex/leafdex-server/internal/errors"
	"github.com/leafdex/leafdex-server/internal/id"
	"github.com/leafdex/leafdex-server/internal/search"
	"github.com/leafdex/leafdex-server/internal/store"
)

// Rebuilder sequences one full index rebuild. Collaborators are passed in
// explicitly so the flow can be exercised against temp-dir stores in tests.
type Rebuilder struct {
	source  *dataset.Source
	store   *store.Store
	engine  *search.Engine
	siteURL string
	logger  *slog.Logger
}

// Result reports a successful rebuild.
type Result struct {
	// Index is the name of the newly-live physical index.
	Index string
	// Villagers and Items are the per-kind document counts.
	Villagers int
	Items     int
}

// New creates a Rebuilder.
func New(source *dataset.Source, st *store.Store, engine *search.Engine, siteURL string, logger *slog.Logger) *Rebuilder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Rebuilder{
		source:  source,
		store:   st,
		engine:  engine,
		siteURL: siteURL,
		logger:  logger,
	}
}

// Run executes one rebuild to completion.
//
// Any error before the pointer write aborts the run with the pointer
// untouched; the partially-populated index is left on disk for inspection.
// A failed reclaim of the old index is logged and does not fail the run,
// since the pointer has already moved and is authoritative.
func (r *Rebuilder) Run(ctx context.Context) (*Result, error) {
	runID := id.MustGenerate("rebuild")
	log := r.logger.With("run", runID)

	// Provisioning
	idx, err := r.engine.Provision()
	if err != nil {
		return nil, err
	}
	log = log.With("index", idx.Name())

	// Populating: villagers then items, sequentially, one record at a
	// time. Order is fixed to bound load on the enrichment cache; the two
	// kinds are disjoint by document type.
	villagers, err := r.indexVillagers(ctx, idx, log)
	if err != nil {
		return nil, fmt.Errorf("populate villagers: %w", err)
	}
	items, err := r.indexItems(ctx, idx, log)
	if err != nil {
		return nil, fmt.Errorf("populate items: %w", err)
	}

	// The index handle is closed before the swap so that only a fully
	// flushed index ever becomes the pointer's target.
	if err := idx.Close(); err != nil {
		return nil, fmt.Errorf("close index %s: %w", idx.Name(), err)
	}

	// Swapping: the single externally-visible step.
	previous, err := r.store.CurrentIndex(ctx)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return nil, errors.PointerStore("read current index").WithCause(err)
	}
	if err := r.store.SetCurrentIndex(ctx, idx.Name()); err != nil {
		return nil, errors.PointerStore("publish new index").WithCause(err)
	}
	log.Info("swapped live index", "previous", previous)

	// Reclaiming: best-effort deletion of the superseded index.
	if previous != "" && previous != idx.Name() {
		if err := r.engine.Delete(previous); err != nil {
			reclaimErr := errors.Reclaim(fmt.Sprintf("delete superseded index %s", previous)).WithCause(err)
			log.Warn("reclaim failed, old index orphaned", "error", reclaimErr)
		}
	}

	log.Info("rebuild complete", "villagers", villagers, "items", items)
	return &Result{Index: idx.Name(), Villagers: villagers, Items: items}, nil
}

// indexVillagers writes one document per villager record. The first
// mapping or write failure aborts the whole kind.
func (r *Rebuilder) indexVillagers(ctx context.Context, idx *search.Index, log *slog.Logger) (int, error) {
	villagers, err := r.source.Villagers()
	if err != nil {
		return 0, err
	}

	for n, v := range villagers {
		enrichment, err := r.store.Enrichment(ctx, domain.KindVillager, v.ID)
		if errors.Is(err, errors.ErrNotFound) {
			return n, errors.MissingEnrichment(string(domain.KindVillager), v.ID)
		}
		if err != nil {
			return n, err
		}

		doc, err := search.MapVillager(r.siteURL, v, enrichment)
		if err != nil {
			return n, fmt.Errorf("map villager %s: %w", v.ID, err)
		}
		if err := idx.Write(doc); err != nil {
			return n, err
		}
		log.Debug("indexed villager", "id", v.ID)
	}

	return len(villagers), nil
}

// indexItems writes one document per item record.
func (r *Rebuilder) indexItems(ctx context.Context, idx *search.Index, log *slog.Logger) (int, error) {
	items, err := r.source.Items()
	if err != nil {
		return 0, err
	}

	for n, it := range items {
		enrichment, err := r.store.Enrichment(ctx, domain.KindItem, it.ID)
		if errors.Is(err, errors.ErrNotFound) {
			return n, errors.MissingEnrichment(string(domain.KindItem), it.ID)
		}
		if err != nil {
			return n, err
		}

		doc, err := search.MapItem(r.siteURL, it, enrichment)
		if err != nil {
			return n, fmt.Errorf("map item %s: %w", it.ID, err)
		}
		if err := idx.Write(doc); err != nil {
			return n, err
		}
		log.Debug("indexed item", "id", it.ID)
	}

	return len(items), nil
}
