package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func TestChunkStoreSaveAndGetDocument(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", CollectionID: "notes", Title: "Meeting notes"}
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Meeting notes", got.Title)
	assert.Equal(t, "notes", got.CollectionID)
}

func TestChunkStoreGetDocumentNotFound(t *testing.T) {
	store := NewChunkStore()

	_, err := store.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChunkStoreSaveChunksReplacesPreviousSet(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "doc-1:0", DocumentID: "doc-1", Index: 0, Content: "old a"},
		{ID: "doc-1:1", DocumentID: "doc-1", Index: 1, Content: "old b"},
		{ID: "doc-1:2", DocumentID: "doc-1", Index: 2, Content: "old c"},
	}))
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "doc-1:0", DocumentID: "doc-1", Index: 0, Content: "new a"},
	}))

	chunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "new a", chunks[0].Content)
}

func TestChunkStoreGetChunksReadingOrder(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "doc-1:2", DocumentID: "doc-1", Index: 2},
		{ID: "doc-1:0", DocumentID: "doc-1", Index: 0},
		{ID: "doc-1:1", DocumentID: "doc-1", Index: 1},
	}))

	chunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
	}
}

func TestChunkStoreGetChunksUnknownDocument(t *testing.T) {
	store := NewChunkStore()

	chunks, err := store.GetChunks(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunkStoreGetChunk(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "doc-1:0", DocumentID: "doc-1", Index: 0, Content: "hello"},
	}))

	chunk, err := store.GetChunk(ctx, "doc-1:0")
	require.NoError(t, err)
	assert.Equal(t, "hello", chunk.Content)

	_, err = store.GetChunk(ctx, "doc-1:9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChunkStoreListChunksScopedToCollection(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "a:0", DocumentID: "a", CollectionID: "work", Index: 0},
	}))
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "b:0", DocumentID: "b", CollectionID: "personal", Index: 0},
	}))

	chunks, err := store.ListChunks(ctx, "work")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "a:0", chunks[0].ID)

	all, err := store.ListChunks(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestChunkStoreDeleteDocumentCascades(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "doc-1"}))
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "doc-1:0", DocumentID: "doc-1", Index: 0},
	}))

	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	_, err := store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	chunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunkStoreListDocuments(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "b", CollectionID: "work"}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "a", CollectionID: "work"}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{ID: "c", CollectionID: "personal"}))

	docs, err := store.ListDocuments(ctx, "work")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
}
