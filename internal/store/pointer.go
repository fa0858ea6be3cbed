package store

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/leafdex/leafdex-server/internal/errors"
)

// pointerKey is the single reserved key naming the currently-live physical
// search index. Everything that answers a query resolves through it.
const pointerKey = "search:current-index"

// CurrentIndex returns the name of the live physical index.
// Returns errors.ErrNotFound if no index has ever been published.
func (s *Store) CurrentIndex(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var name string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(pointerKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			name = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", errors.NotFound("no search index published")
	}
	if err != nil {
		return "", fmt.Errorf("read index pointer: %w", err)
	}
	return name, nil
}

// SetCurrentIndex repoints the live index to name. This is the single
// externally-visible step of a rebuild: readers resolving through the
// pointer see the old index right up to this write and the new one right
// after it, with no intermediate state.
func (s *Store) SetCurrentIndex(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(pointerKey), []byte(name))
	})
	if err != nil {
		return fmt.Errorf("write index pointer: %w", err)
	}

	s.logger.Debug("index pointer updated", "index", name)
	return nil
}
