package store

import (
	"context"
	"fmt"
	"github.com/go-json-experiment/json"

	"github.com/dgraph-io/badger/v4"

	"github.com/leafdex/leafdex-server/internal/domain"
	"github.com/leafdex/leafdex-server/internal/errors"
)

// enrichmentKey builds the cache key for one entity's enrichment entry.
func enrichmentKey(kind domain.Kind, id string) []byte {
	return []byte(string(kind) + ":enrich:" + id)
}

// Enrichment returns the cached enrichment entry for an entity.
// Returns errors.ErrNotFound if no entry exists for the id; the rebuild
// treats that as a data-consistency violation, not a soft miss.
func (s *Store) Enrichment(ctx context.Context, kind domain.Kind, id string) (*domain.Enrichment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var enrichment domain.Enrichment
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(enrichmentKey(kind, id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &enrichment)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.NotFound(fmt.Sprintf("no enrichment for %s %s", kind, id))
	}
	if err != nil {
		return nil, fmt.Errorf("read enrichment for %s %s: %w", kind, id, err)
	}
	return &enrichment, nil
}

// PutEnrichment stores the enrichment entry for an entity. Used by the
// populate-cache job; the rebuild pipeline never writes here.
func (s *Store) PutEnrichment(ctx context.Context, kind domain.Kind, id string, enrichment *domain.Enrichment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(enrichment)
	if err != nil {
		return fmt.Errorf("marshal enrichment for %s %s: %w", kind, id, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(enrichmentKey(kind, id), data)
	})
	if err != nil {
		return fmt.Errorf("write enrichment for %s %s: %w", kind, id, err)
	}
	return nil
}
