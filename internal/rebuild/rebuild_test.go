package rebuild

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafdex/leafdex-server/internal/dataset"
	"github.com/leafdex/leafdex-server/internal/domain"
	"github.com/leafdex/leafdex-server/internal/errors"
	"github.com/leafdex/leafdex-server/internal/search"
	"github.com/leafdex/leafdex-server/internal/store"
)

const testSiteURL = "https://leafdex.test"

// fixture wires a Rebuilder against temp-dir collaborators.
type fixture struct {
	root   string
	source *dataset.Source
	store  *store.Store
	engine *search.Engine
	rb     *Rebuilder
}

func setup(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()
	records := map[string]string{
		"villagers/bob.json":   `{"id":"bob","name":"Bob","gender":"male","species":"cat","birthday":"01-01","games":{"nh":{"personality":"lazy"}}}`,
		"villagers/rosie.json": `{"id":"rosie","name":"Rosie","gender":"female","species":"cat","games":{"nl":{"personality":"peppy"}}}`,
		"items/mug.json":       `{"id":"mug","name":"Mug","games":{"nh":{"category":"kitchen"}}}`,
	}
	for name, content := range records {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	st, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	source := dataset.New(root)
	engine := search.NewEngine(t.TempDir(), nil)

	return &fixture{
		root:   root,
		source: source,
		store:  st,
		engine: engine,
		rb:     New(source, st, engine, testSiteURL, nil),
	}
}

// seedEnrichment caches an entry for every seeded record.
func (f *fixture) seedEnrichment(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for _, id := range []string{"bob", "rosie"} {
		require.NoError(t, f.store.PutEnrichment(ctx, domain.KindVillager, id, &domain.Enrichment{Image: id + ".png"}))
	}
	require.NoError(t, f.store.PutEnrichment(ctx, domain.KindItem, "mug", &domain.Enrichment{Image: "mug.png"}))
}

func TestRun_FirstRebuild(t *testing.T) {
	f := setup(t)
	f.seedEnrichment(t)
	ctx := context.Background()

	result, err := f.rb.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Villagers)
	assert.Equal(t, 1, result.Items)

	// Pointer now names the freshly built index.
	name, err := f.store.CurrentIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, result.Index, name)
	assert.True(t, f.engine.Exists(name))

	idx, err := f.engine.Open(name)
	require.NoError(t, err)
	defer idx.Close()

	count, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestRun_SupersedesPreviousIndex(t *testing.T) {
	f := setup(t)
	f.seedEnrichment(t)
	ctx := context.Background()

	first, err := f.rb.Run(ctx)
	require.NoError(t, err)

	second, err := f.rb.Run(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.Index, second.Index)

	// Pointer moved; the superseded index is reclaimed.
	name, err := f.store.CurrentIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.Index, name)
	assert.False(t, f.engine.Exists(first.Index))
	assert.True(t, f.engine.Exists(second.Index))
}

func TestRun_MissingEnrichmentAborts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// Only bob is cached; rosie's entry is missing.
	require.NoError(t, f.store.PutEnrichment(ctx, domain.KindVillager, "bob", &domain.Enrichment{Image: "bob.png"}))

	_, err := f.rb.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingEnrichment))

	// Pointer store completely unchanged.
	_, err = f.store.CurrentIndex(ctx)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestRun_FailedRebuildKeepsOldIndexLive(t *testing.T) {
	f := setup(t)
	f.seedEnrichment(t)
	ctx := context.Background()

	first, err := f.rb.Run(ctx)
	require.NoError(t, err)

	// Add a record with no enrichment entry, then rebuild.
	extra := `{"id":"stitches","name":"Stitches","games":{"nh":{"personality":"lazy"}}}`
	require.NoError(t, os.WriteFile(filepath.Join(f.root, "villagers", "stitches.json"), []byte(extra), 0o600))

	_, err = f.rb.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingEnrichment))

	// The previous index is still live and still on disk.
	name, nameErr := f.store.CurrentIndex(ctx)
	require.NoError(t, nameErr)
	assert.Equal(t, first.Index, name)
	assert.True(t, f.engine.Exists(first.Index))
}
