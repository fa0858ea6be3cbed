package search

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/blevesearch/bleve/v2"

	"github.com/leafdex/leafdex-server/internal/errors"
)

// Physical index names are the prefix plus a millisecond timestamp, so
// names stay unique across rebuilds. Sub-millisecond re-triggering would
// collide, which is acceptable at the job's operational cadence.
const indexPrefix = "catalog-"

// Engine manages the physical Bleve indexes under one data directory.
// It only handles index lifecycle; which index is live is the pointer
// store's concern.
type Engine struct {
	dataPath string
	logger   *slog.Logger
}

// NewEngine creates an Engine storing physical indexes under dataPath.
func NewEngine(dataPath string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{dataPath: dataPath, logger: logger}
}

// Index is an open physical index.
type Index struct {
	idx  bleve.Index
	name string
}

// NewIndexName generates a fresh physical index name.
func NewIndexName() string {
	return fmt.Sprintf("%s%d", indexPrefix, time.Now().UnixMilli())
}

// Provision creates a brand-new physical index with a generated name and
// the full analyzer/mapping configuration. The new index exists on disk but
// is not yet referenced by the pointer store.
func (e *Engine) Provision() (*Index, error) {
	name := NewIndexName()

	indexMapping, err := buildIndexMapping()
	if err != nil {
		return nil, errors.Configuration("build index mapping").WithCause(err)
	}

	if err := os.MkdirAll(e.dataPath, 0o750); err != nil {
		return nil, errors.Configuration("create index data dir").WithCause(err)
	}

	idx, err := bleve.New(e.path(name), indexMapping)
	if err != nil {
		return nil, errors.Configuration(fmt.Sprintf("create index %s", name)).WithCause(err)
	}

	e.logger.Info("provisioned search index", "index", name)
	return &Index{idx: idx, name: name}, nil
}

// Open opens an existing physical index by name.
func (e *Engine) Open(name string) (*Index, error) {
	idx, err := bleve.Open(e.path(name))
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", name, err)
	}
	return &Index{idx: idx, name: name}, nil
}

// Delete removes a physical index from disk. The caller must ensure the
// index is no longer the pointer's target.
func (e *Engine) Delete(name string) error {
	if err := os.RemoveAll(e.path(name)); err != nil {
		return fmt.Errorf("delete index %s: %w", name, err)
	}
	e.logger.Info("deleted search index", "index", name)
	return nil
}

// Exists reports whether a physical index directory is present.
func (e *Engine) Exists(name string) bool {
	_, err := os.Stat(e.path(name))
	return err == nil
}

func (e *Engine) path(name string) string {
	return filepath.Join(e.dataPath, name+".bleve")
}

// Name returns the physical index name.
func (i *Index) Name() string {
	return i.name
}

// Write upserts one document under its deterministic id.
func (i *Index) Write(doc *Document) error {
	if err := i.idx.Index(doc.ID(), doc.ToMap()); err != nil {
		return errors.Write(fmt.Sprintf("index document %s", doc.ID())).WithCause(err)
	}
	return nil
}

// Count returns the number of documents in the index.
func (i *Index) Count() (uint64, error) {
	return i.idx.DocCount()
}

// Search runs a query against the index.
func (i *Index) Search(req *bleve.SearchRequest) (*bleve.SearchResult, error) {
	return i.idx.Search(req)
}

// Close releases the index. A populated index must be closed before another
// process can open it.
func (i *Index) Close() error {
	return i.idx.Close()
}
