// Package store wraps the Badger key-value database backing two concerns:
// the per-entity enrichment cache and the live-index pointer.
//
// Keyspaces are prefix-separated: enrichment entries live under
// "<kind>:enrich:<id>", the pointer under "search:current-index". No
// multi-key transaction spans both; the rebuild pipeline only ever mutates
// the single pointer key.
package store

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New creates a new Store instance at the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Pointer durability across process restarts depends on this
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	logger.Debug("badger database opened", "path", path)
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
