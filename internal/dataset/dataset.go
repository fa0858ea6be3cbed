// Package dataset reads the canonical on-disk catalog: one directory per
// entity kind, one JSON file per entity. The dataset is the system of
// record and is never written by anything in this codebase.
package dataset

import (
	"fmt"
	"github.com/go-json-experiment/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/leafdex/leafdex-server/internal/domain"
)

// Per-kind subdirectories under the dataset root.
const (
	villagersDir = "villagers"
	itemsDir     = "items"
)

// Source enumerates raw entity records from the dataset directory.
type Source struct {
	root string
}

// New creates a Source rooted at the given dataset directory.
func New(root string) *Source {
	return &Source{root: root}
}

// Villagers loads every villager record.
// Order follows directory listing order; document identity is derived from
// record content, so callers must not rely on ordering.
func (s *Source) Villagers() ([]*domain.Villager, error) {
	var villagers []*domain.Villager
	err := readKind(filepath.Join(s.root, villagersDir), func(data []byte, name string) error {
		var v domain.Villager
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("decode villager %s: %w", name, err)
		}
		villagers = append(villagers, &v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return villagers, nil
}

// Items loads every item record.
func (s *Source) Items() ([]*domain.Item, error) {
	var items []*domain.Item
	err := readKind(filepath.Join(s.root, itemsDir), func(data []byte, name string) error {
		var it domain.Item
		if err := json.Unmarshal(data, &it); err != nil {
			return fmt.Errorf("decode item %s: %w", name, err)
		}
		items = append(items, &it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// readKind reads every .json file in dir and passes its contents to decode.
func readKind(dir string, decode func(data []byte, name string) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dataset dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path) //#nosec G304 -- paths come from listing the configured dataset dir
		if err != nil {
			return fmt.Errorf("read record %s: %w", path, err)
		}
		if err := decode(data, entry.Name()); err != nil {
			return err
		}
	}

	return nil
}

// LoadEnrichmentFile reads the enrichment seed file consumed by the
// populate-cache job.
func LoadEnrichmentFile(path string) (*domain.EnrichmentFile, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is an operator-supplied argument
	if err != nil {
		return nil, fmt.Errorf("read enrichment file: %w", err)
	}
	var f domain.EnrichmentFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode enrichment file %s: %w", path, err)
	}
	return &f, nil
}
