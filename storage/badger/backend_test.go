package badger

import (
	"context"
	"testing"

	"github.com/poiesic/talentmatch/core"
	"github.com/poiesic/talentmatch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)

	assert.False(t, backend.IsClosed())

	err = backend.Close()
	require.NoError(t, err)

	assert.True(t, backend.IsClosed())
}

func TestFindSimilarChunks_NoChunks(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	vector := []float32{0.1, 0.2, 0.3}

	results, err := backend.FindSimilarChunks(ctx, vector, 0.5, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func storeTestChunks(t *testing.T, items storage.ItemRepository, id core.ID, chunks []*core.Chunk) {
	t.Helper()
	require.NoError(t, items.PutChunks(context.Background(), id, chunks))
}

func TestFindSimilarChunks_ThresholdAndOrder(t *testing.T) {
	itemRepo, profileRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		profileRepo.Close()
		itemRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	storeTestChunks(t, itemRepo, core.ID(1), []*core.Chunk{
		{Kind: core.ItemKindArticle, Seq: 0, Text: "very close", Vector: []float32{1.0, 0.0, 0.0}},
	})
	storeTestChunks(t, itemRepo, core.ID(2), []*core.Chunk{
		{Kind: core.ItemKindArticle, Seq: 0, Text: "somewhat close", Vector: core.NormalizeVector([]float32{0.9, 0.1, 0.0})},
	})
	storeTestChunks(t, itemRepo, core.ID(3), []*core.Chunk{
		{Kind: core.ItemKindArticle, Seq: 0, Text: "far away", Vector: []float32{0.0, 0.0, 1.0}},
	})

	query := []float32{1.0, 0.0, 0.0}

	t.Run("threshold filters before limit", func(t *testing.T) {
		results, err := backend.FindSimilarChunks(ctx, query, 0.5, 10)
		require.NoError(t, err)
		require.Len(t, results, 2)

		// Descending similarity
		assert.Equal(t, core.ID(1), results[0].ItemId)
		assert.Equal(t, core.ID(2), results[1].ItemId)
		assert.GreaterOrEqual(t, results[0].Similarity, results[1].Similarity)
		for _, match := range results {
			assert.GreaterOrEqual(t, match.Similarity, float32(0.5))
		}
	})

	t.Run("limit truncates after threshold", func(t *testing.T) {
		results, err := backend.FindSimilarChunks(ctx, query, 0.5, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, core.ID(1), results[0].ItemId)
	})

	t.Run("high threshold excludes everything", func(t *testing.T) {
		results, err := backend.FindSimilarChunks(ctx, query, 0.9999, 10)
		require.NoError(t, err)
		require.Len(t, results, 1) // only the exact match
		assert.Equal(t, core.ID(1), results[0].ItemId)
	})
}

func TestFindSimilarChunks_KindScope(t *testing.T) {
	itemRepo, profileRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		profileRepo.Close()
		itemRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	storeTestChunks(t, itemRepo, core.ID(1), []*core.Chunk{
		{Kind: core.ItemKindArticle, Seq: 0, Text: "article", Vector: []float32{1.0, 0.0, 0.0}},
	})
	storeTestChunks(t, itemRepo, core.ID(2), []*core.Chunk{
		{Kind: core.ItemKindJobPosting, Seq: 0, Text: "job", Vector: []float32{1.0, 0.0, 0.0}},
	})

	query := []float32{1.0, 0.0, 0.0}

	t.Run("no kinds searches all", func(t *testing.T) {
		results, err := backend.FindSimilarChunks(ctx, query, 0.5, 10)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("article scope", func(t *testing.T) {
		results, err := backend.FindSimilarChunks(ctx, query, 0.5, 10, core.ItemKindArticle)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, core.ItemKindArticle, results[0].Kind)
	})

	t.Run("job posting scope", func(t *testing.T) {
		results, err := backend.FindSimilarChunks(ctx, query, 0.5, 10, core.ItemKindJobPosting)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, core.ItemKindJobPosting, results[0].Kind)
	})
}

func TestFindSimilarChunks_SkipsUnembedded(t *testing.T) {
	itemRepo, profileRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		profileRepo.Close()
		itemRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	storeTestChunks(t, itemRepo, core.ID(1), []*core.Chunk{
		{Kind: core.ItemKindArticle, Seq: 0, Text: "no vector yet"},
	})

	results, err := backend.FindSimilarChunks(ctx, []float32{1, 0, 0}, 0.0, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDotProduct(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"identical unit", []float32{1, 0}, []float32{1, 0}, 1},
		{"mismatched length uses shorter", []float32{1, 1, 1}, []float32{1, 1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, dotProduct(tt.a, tt.b), 1e-6)
		})
	}
}
