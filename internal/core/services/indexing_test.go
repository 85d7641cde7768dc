package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keywordmem "github.com/recall-labs/recall-cli/internal/adapters/driven/keyword/memory"
	"github.com/recall-labs/recall-cli/internal/adapters/driven/storage/memory"
	vectormem "github.com/recall-labs/recall-cli/internal/adapters/driven/vector/memory"
	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// dimEmbedder returns embeddings sized from the text, so dimension
// mismatches can be provoked.
type dimEmbedder struct {
	mockEmbeddingService
	vectors [][]float32
}

func (d *dimEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if d.vectors != nil {
		return d.vectors, nil
	}
	return d.mockEmbeddingService.EmbedBatch(context.Background(), texts)
}

func newTestIndexing(store driven.ChunkStore, vec driven.VectorIndex, kw driven.KeywordIndex, embedder driven.EmbeddingService) *IndexingService {
	return NewIndexingService(NewChunkingService(), store, vec, kw, embedder)
}

func TestIndexDocumentPipeline(t *testing.T) {
	store := memory.NewChunkStore()
	vec := vectormem.NewIndex()
	kw := keywordmem.NewIndex()
	embedder := &mockEmbeddingService{embedding: []float32{0.1, 0.2, 0.3}, dims: 3}

	svc := newTestIndexing(store, vec, kw, embedder)
	ctx := context.Background()

	doc := &domain.Document{
		ID:           "doc-1",
		CollectionID: "notes",
		Title:        "Reactor notes",
		Content:      "The reactor design uses liquid sodium. It transfers heat efficiently.",
	}
	chunks, err := svc.IndexDocument(ctx, doc, domain.ChunkingOptions{
		Strategy:   domain.StrategySentence,
		TargetSize: 1000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for i, chunk := range chunks {
		assert.Equal(t, domain.ChunkID("doc-1", i), chunk.ID)
		assert.Equal(t, "notes", chunk.CollectionID)
		assert.Len(t, chunk.Embedding, 3)
		assert.NotEmpty(t, chunk.EmbeddingID)
	}

	// Document and chunks persisted.
	saved, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.False(t, saved.UpdatedAt.IsZero())

	stored, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Len(t, stored, len(chunks))

	// Both indexes answer for the new content.
	vhits, err := vec.Search(ctx, []float32{0.1, 0.2, 0.3}, 10, driven.VectorFilter{})
	require.NoError(t, err)
	assert.Len(t, vhits, len(chunks))

	khits, err := kw.Search(ctx, "reactor", 10, driven.KeywordFilter{})
	require.NoError(t, err)
	assert.NotEmpty(t, khits)
}

func TestIndexDocumentDeterministicPointIDs(t *testing.T) {
	store := memory.NewChunkStore()
	embedder := &mockEmbeddingService{embedding: []float32{0.1, 0.2, 0.3}, dims: 3}
	svc := newTestIndexing(store, vectormem.NewIndex(), keywordmem.NewIndex(), embedder)
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", Content: "Same content both times."}
	opts := domain.ChunkingOptions{Strategy: domain.StrategyFixed, TargetSize: 1000}

	first, err := svc.IndexDocument(ctx, doc, opts)
	require.NoError(t, err)
	second, err := svc.IndexDocument(ctx, doc, opts)
	require.NoError(t, err)

	// Re-indexing overwrites points rather than duplicating them.
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].EmbeddingID, second[i].EmbeddingID)
	}
}

func TestIndexDocumentMissingID(t *testing.T) {
	svc := newTestIndexing(memory.NewChunkStore(), vectormem.NewIndex(), keywordmem.NewIndex(),
		&mockEmbeddingService{embedding: []float32{0.1}, dims: 1})

	_, err := svc.IndexDocument(context.Background(), &domain.Document{Content: "text"},
		domain.ChunkingOptions{Strategy: domain.StrategyFixed, TargetSize: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.IndexDocument(context.Background(), nil,
		domain.ChunkingOptions{Strategy: domain.StrategyFixed, TargetSize: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndexDocumentEmptyContent(t *testing.T) {
	svc := newTestIndexing(memory.NewChunkStore(), vectormem.NewIndex(), keywordmem.NewIndex(),
		&mockEmbeddingService{embedding: []float32{0.1}, dims: 1})

	_, err := svc.IndexDocument(context.Background(), &domain.Document{ID: "doc-1"},
		domain.ChunkingOptions{Strategy: domain.StrategyFixed, TargetSize: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndexDocumentDimensionMismatch(t *testing.T) {
	embedder := &dimEmbedder{
		mockEmbeddingService: mockEmbeddingService{dims: 384},
		vectors:              [][]float32{{0.1, 0.2}},
	}
	svc := newTestIndexing(memory.NewChunkStore(), vectormem.NewIndex(), keywordmem.NewIndex(), embedder)

	_, err := svc.IndexDocument(context.Background(),
		&domain.Document{ID: "doc-1", Content: "Short text."},
		domain.ChunkingOptions{Strategy: domain.StrategyFixed, TargetSize: 1000})
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestIndexDocumentEmbedFailure(t *testing.T) {
	embedder := &mockEmbeddingService{embedErr: errors.New("model not loaded")}
	svc := newTestIndexing(memory.NewChunkStore(), vectormem.NewIndex(), keywordmem.NewIndex(), embedder)

	_, err := svc.IndexDocument(context.Background(),
		&domain.Document{ID: "doc-1", Content: "Some text."},
		domain.ChunkingOptions{Strategy: domain.StrategyFixed, TargetSize: 1000})
	assert.Error(t, err)
}

func TestDeleteDocumentRemovesEverything(t *testing.T) {
	store := memory.NewChunkStore()
	vec := vectormem.NewIndex()
	kw := keywordmem.NewIndex()
	embedder := &mockEmbeddingService{embedding: []float32{0.1, 0.2, 0.3}, dims: 3}

	svc := newTestIndexing(store, vec, kw, embedder)
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", Content: "Disposable content about llamas."}
	_, err := svc.IndexDocument(ctx, doc, domain.ChunkingOptions{
		Strategy:   domain.StrategyFixed,
		TargetSize: 1000,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDocument(ctx, "doc-1"))

	_, err = store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	vhits, err := vec.Search(ctx, []float32{0.1, 0.2, 0.3}, 10, driven.VectorFilter{})
	require.NoError(t, err)
	assert.Empty(t, vhits)

	khits, err := kw.Search(ctx, "llamas", 10, driven.KeywordFilter{})
	require.NoError(t, err)
	assert.Empty(t, khits)
}

func TestDeleteDocumentEmptyID(t *testing.T) {
	svc := newTestIndexing(memory.NewChunkStore(), vectormem.NewIndex(), keywordmem.NewIndex(), nil)

	err := svc.DeleteDocument(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteDocumentUnknownIsNoop(t *testing.T) {
	svc := newTestIndexing(memory.NewChunkStore(), vectormem.NewIndex(), keywordmem.NewIndex(), nil)

	assert.NoError(t, svc.DeleteDocument(context.Background(), "missing"))
}
