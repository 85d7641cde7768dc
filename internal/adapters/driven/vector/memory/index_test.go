package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

func upsertPoint(t *testing.T, idx *Index, chunkID, docID, collID string, vec []float32) {
	t.Helper()
	err := idx.Upsert(context.Background(), []driven.VectorPoint{{
		PointID: "pt-" + chunkID,
		ChunkID: chunkID,
		Vector:  vec,
		Payload: driven.VectorPayload{DocumentID: docID, CollectionID: collID},
	}})
	require.NoError(t, err)
}

func TestIndexSearchOrdersBySimilarity(t *testing.T) {
	idx := NewIndex()
	upsertPoint(t, idx, "a:0", "a", "", []float32{1, 0, 0})
	upsertPoint(t, idx, "a:1", "a", "", []float32{0.9, 0.1, 0})
	upsertPoint(t, idx, "b:0", "b", "", []float32{0, 1, 0})

	hits, err := idx.Search(context.Background(), []float32{1, 0, 0}, 10, driven.VectorFilter{})
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "a:0", hits[0].ChunkID)
	assert.Equal(t, "a:1", hits[1].ChunkID)
	assert.Equal(t, "b:0", hits[2].ChunkID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
	assert.InDelta(t, 0.0, hits[2].Similarity, 1e-9)
}

func TestIndexSearchRespectsLimit(t *testing.T) {
	idx := NewIndex()
	upsertPoint(t, idx, "a:0", "a", "", []float32{1, 0})
	upsertPoint(t, idx, "a:1", "a", "", []float32{0, 1})
	upsertPoint(t, idx, "a:2", "a", "", []float32{1, 1})

	hits, err := idx.Search(context.Background(), []float32{1, 0}, 2, driven.VectorFilter{})
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestIndexSearchCollectionFilter(t *testing.T) {
	idx := NewIndex()
	upsertPoint(t, idx, "a:0", "a", "work", []float32{1, 0})
	upsertPoint(t, idx, "b:0", "b", "personal", []float32{1, 0})

	hits, err := idx.Search(context.Background(), []float32{1, 0}, 10, driven.VectorFilter{CollectionID: "work"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "a:0", hits[0].ChunkID)
}

func TestIndexSearchDocumentFilter(t *testing.T) {
	idx := NewIndex()
	upsertPoint(t, idx, "a:0", "a", "", []float32{1, 0})
	upsertPoint(t, idx, "b:0", "b", "", []float32{1, 0})
	upsertPoint(t, idx, "c:0", "c", "", []float32{1, 0})

	hits, err := idx.Search(context.Background(), []float32{1, 0}, 10, driven.VectorFilter{
		DocumentIDs: []string{"b"},
	})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "b:0", hits[0].ChunkID)
}

func TestIndexUpsertOverwritesByChunkID(t *testing.T) {
	idx := NewIndex()
	upsertPoint(t, idx, "a:0", "a", "", []float32{1, 0})
	upsertPoint(t, idx, "a:0", "a", "", []float32{0, 1})

	hits, err := idx.Search(context.Background(), []float32{0, 1}, 10, driven.VectorFilter{})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
}

func TestIndexDelete(t *testing.T) {
	idx := NewIndex()
	upsertPoint(t, idx, "a:0", "a", "", []float32{1, 0})
	upsertPoint(t, idx, "a:1", "a", "", []float32{0, 1})

	require.NoError(t, idx.Delete(context.Background(), []string{"a:0"}))

	hits, err := idx.Search(context.Background(), []float32{1, 0}, 10, driven.VectorFilter{})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "a:1", hits[0].ChunkID)
}

func TestCosineMismatchedDimensions(t *testing.T) {
	assert.Zero(t, cosine([]float32{1, 0}, []float32{1, 0, 0}))
	assert.Zero(t, cosine(nil, nil))
	assert.Zero(t, cosine([]float32{0, 0}, []float32{1, 0}))
}
