package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/talentmatch/core"
	"github.com/poiesic/talentmatch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItemRepo(t *testing.T) storage.ItemRepository {
	t.Helper()
	itemRepo, profileRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		profileRepo.Close()
		itemRepo.Close()
		backend.Close()
	})
	return itemRepo
}

func TestAddSourceItems(t *testing.T) {
	repo := newTestItemRepo(t)
	ctx := context.Background()

	item := &core.SourceItem{
		Kind:    core.ItemKindArticle,
		Title:   "Scaling our search infrastructure",
		URL:     "https://example.com/blog/scaling-search",
		Content: "We rebuilt the search stack...",
	}

	added, err := repo.AddSourceItems(ctx, item)
	require.NoError(t, err)
	require.Len(t, added, 1)

	assert.Equal(t, core.IDFromContent(item.URL), added[0].Id)
	assert.False(t, added[0].InsertedAt.IsZero())
	assert.False(t, added[0].UpdatedAt.IsZero())

	got, err := repo.GetSourceItem(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, item.Title, got.Title)
	assert.Equal(t, item.URL, got.URL)
}

func TestAddSourceItems_SameURLOverwrites(t *testing.T) {
	repo := newTestItemRepo(t)
	ctx := context.Background()

	first := &core.SourceItem{
		Kind:    core.ItemKindArticle,
		Title:   "Original title",
		URL:     "https://example.com/blog/post",
		Content: "v1",
	}
	added, err := repo.AddSourceItems(ctx, first)
	require.NoError(t, err)
	insertedAt := added[0].InsertedAt

	time.Sleep(time.Millisecond)

	second := &core.SourceItem{
		Kind:    core.ItemKindArticle,
		Title:   "Revised title",
		URL:     "https://example.com/blog/post",
		Content: "v2",
	}
	readded, err := repo.AddSourceItems(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, added[0].Id, readded[0].Id)

	got, err := repo.GetSourceItem(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "Revised title", got.Title)
	assert.True(t, got.InsertedAt.Equal(insertedAt), "InsertedAt preserved on overwrite")
	assert.True(t, got.UpdatedAt.After(insertedAt))
}

func TestGetSourceItem_NotFound(t *testing.T) {
	repo := newTestItemRepo(t)

	_, err := repo.GetSourceItem(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetSourceItems_SkipsMissing(t *testing.T) {
	repo := newTestItemRepo(t)
	ctx := context.Background()

	added, err := repo.AddSourceItems(ctx, &core.SourceItem{
		Kind:    core.ItemKindArticle,
		Title:   "Only item",
		URL:     "https://example.com/blog/only",
		Content: "Body",
	})
	require.NoError(t, err)

	items, err := repo.GetSourceItems(ctx, added[0].Id, core.ID(999))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Only item", items[0].Title)
}

func TestPutChunks_ReplacesExisting(t *testing.T) {
	repo := newTestItemRepo(t)
	ctx := context.Background()
	itemID := core.ID(77)

	first := []*core.Chunk{
		{Kind: core.ItemKindArticle, Seq: 0, Text: "a", TokenCount: 1},
		{Kind: core.ItemKindArticle, Seq: 1, Text: "b", TokenCount: 1},
		{Kind: core.ItemKindArticle, Seq: 2, Text: "c", TokenCount: 1},
	}
	require.NoError(t, repo.PutChunks(ctx, itemID, first))

	got, err := repo.GetChunks(ctx, itemID)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Replace with a smaller set; no stale chunks may remain
	second := []*core.Chunk{
		{Kind: core.ItemKindArticle, Seq: 0, Text: "new", TokenCount: 1},
	}
	require.NoError(t, repo.PutChunks(ctx, itemID, second))

	got, err = repo.GetChunks(ctx, itemID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Text)
	assert.Equal(t, itemID, got[0].ItemId)
}

func TestGetChunks_SequenceOrder(t *testing.T) {
	repo := newTestItemRepo(t)
	ctx := context.Background()
	itemID := core.ID(5)

	chunks := []*core.Chunk{
		{Kind: core.ItemKindArticle, Seq: 2, Text: "third"},
		{Kind: core.ItemKindArticle, Seq: 0, Text: "first"},
		{Kind: core.ItemKindArticle, Seq: 1, Text: "second"},
	}
	require.NoError(t, repo.PutChunks(ctx, itemID, chunks))

	got, err := repo.GetChunks(ctx, itemID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, "second", got[1].Text)
	assert.Equal(t, "third", got[2].Text)
}

func TestHasChunks(t *testing.T) {
	repo := newTestItemRepo(t)
	ctx := context.Background()

	found, err := repo.HasChunks(ctx, core.ID(1))
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.PutChunks(ctx, core.ID(1), []*core.Chunk{
		{Kind: core.ItemKindArticle, Seq: 0, Text: "a"},
	}))

	found, err = repo.HasChunks(ctx, core.ID(1))
	require.NoError(t, err)
	assert.True(t, found)

	// Neighboring item ID must not leak
	found, err = repo.HasChunks(ctx, core.ID(2))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteSourceItems(t *testing.T) {
	repo := newTestItemRepo(t)
	ctx := context.Background()

	added, err := repo.AddSourceItems(ctx, &core.SourceItem{
		Kind:    core.ItemKindArticle,
		Title:   "Doomed",
		URL:     "https://example.com/blog/doomed",
		Content: "Body",
	})
	require.NoError(t, err)
	itemID := added[0].Id

	require.NoError(t, repo.PutChunks(ctx, itemID, []*core.Chunk{
		{Kind: core.ItemKindArticle, Seq: 0, Text: "a"},
	}))

	require.NoError(t, repo.DeleteSourceItems(ctx, itemID))

	_, err = repo.GetSourceItem(ctx, itemID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	found, err := repo.HasChunks(ctx, itemID)
	require.NoError(t, err)
	assert.False(t, found, "chunks removed with item")
}

func TestDeleteSourceItems_NotFound(t *testing.T) {
	repo := newTestItemRepo(t)
	err := repo.DeleteSourceItems(context.Background(), core.ID(404))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
