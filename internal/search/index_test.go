package search

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafdex/leafdex-server/internal/domain"
)

// provisionTestIndex creates a populated throwaway index.
func provisionTestIndex(t *testing.T, docs ...*Document) (*Engine, *Index) {
	t.Helper()

	engine := NewEngine(t.TempDir(), nil)
	idx, err := engine.Provision()
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	for _, doc := range docs {
		require.NoError(t, idx.Write(doc))
	}
	return engine, idx
}

func mustMapVillager(t *testing.T, v *domain.Villager) *Document {
	t.Helper()
	doc, err := MapVillager(testSiteURL, v, testEnrichment())
	require.NoError(t, err)
	return doc
}

func TestNewIndexName(t *testing.T) {
	name := NewIndexName()
	assert.True(t, strings.HasPrefix(name, "catalog-"))

	time.Sleep(2 * time.Millisecond)
	assert.NotEqual(t, name, NewIndexName())
}

func TestEngine_Provision(t *testing.T) {
	engine, idx := provisionTestIndex(t)

	count, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
	assert.True(t, engine.Exists(idx.Name()))
}

func TestEngine_Delete(t *testing.T) {
	engine, idx := provisionTestIndex(t)
	require.NoError(t, idx.Close())

	require.NoError(t, engine.Delete(idx.Name()))
	assert.False(t, engine.Exists(idx.Name()))
}

func TestIndex_WriteIsUpsert(t *testing.T) {
	doc := mustMapVillager(t, testVillager())
	_, idx := provisionTestIndex(t, doc, doc)

	count, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestIndex_Query_FoldsAccents(t *testing.T) {
	v := testVillager()
	v.ID = "celeste"
	v.Name = "Céleste"
	_, idx := provisionTestIndex(t, mustMapVillager(t, v))

	params := DefaultParams()
	params.Query = "celeste"
	result, err := idx.Query(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "villager-celeste", result.Hits[0].ID)
	assert.Equal(t, "Céleste", result.Hits[0].Name)
}

func TestIndex_Query_PrefixMatch(t *testing.T) {
	_, idx := provisionTestIndex(t, mustMapVillager(t, testVillager()))

	// "bo" hits the 2..10 edge-ngram field for "Bob".
	params := DefaultParams()
	params.Query = "bo"
	result, err := idx.Query(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "villager-bob", result.Hits[0].ID)
}

func TestIndex_Query_Filters(t *testing.T) {
	bob := testVillager()
	bubbles := testVillager()
	bubbles.ID = "bubbles"
	bubbles.Name = "Bubbles"
	bubbles.Games = map[string]domain.VillagerGame{"nl": {Personality: "peppy"}}

	item := &domain.Item{
		ID:    "bobble-hat",
		Name:  "Bobble Hat",
		Games: map[string]domain.ItemGame{"nh": {Category: "clothing"}},
	}
	itemDoc, err := MapItem(testSiteURL, item, testEnrichment())
	require.NoError(t, err)

	_, idx := provisionTestIndex(t, mustMapVillager(t, bob), mustMapVillager(t, bubbles), itemDoc)

	params := DefaultParams()
	params.Query = "bob"
	params.Type = "item"
	result, err := idx.Query(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "item-bobble-hat", result.Hits[0].ID)

	params = DefaultParams()
	params.Query = "bu"
	params.Game = "nl"
	result, err = idx.Query(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "villager-bubbles", result.Hits[0].ID)
}

func TestEngine_OpenAfterClose(t *testing.T) {
	engine, idx := provisionTestIndex(t, mustMapVillager(t, testVillager()))
	name := idx.Name()
	require.NoError(t, idx.Close())

	reopened, err := engine.Open(name)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}
