package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Ensure IndexingService implements the interface.
var _ driving.IndexingService = (*IndexingService)(nil)

// IndexingService runs the document-processing pipeline: chunk, embed,
// persist, index.
type IndexingService struct {
	chunking     driving.ChunkingService
	chunkStore   driven.ChunkStore
	vectorIndex  driven.VectorIndex
	keywordIndex driven.KeywordIndex
	embedder     driven.EmbeddingService
}

// NewIndexingService creates a new indexing service.
func NewIndexingService(
	chunking driving.ChunkingService,
	chunkStore driven.ChunkStore,
	vectorIndex driven.VectorIndex,
	keywordIndex driven.KeywordIndex,
	embedder driven.EmbeddingService,
) *IndexingService {
	return &IndexingService{
		chunking:     chunking,
		chunkStore:   chunkStore,
		vectorIndex:  vectorIndex,
		keywordIndex: keywordIndex,
		embedder:     embedder,
	}
}

// IndexDocument chunks, embeds, persists and indexes one document.
func (s *IndexingService) IndexDocument(
	ctx context.Context, doc *domain.Document, opts domain.ChunkingOptions,
) ([]domain.Chunk, error) {
	logger.Section("Indexing")
	if doc == nil || doc.ID == "" {
		return nil, fmt.Errorf("%w: document is missing an ID", domain.ErrInvalidInput)
	}
	logger.Debug("Indexing document %s (%d bytes)", doc.ID, len(doc.Content))

	chunks, err := s.chunking.Chunk(ctx, doc.ID, doc.Content, opts)
	if err != nil {
		return nil, err
	}
	for i := range chunks {
		chunks[i].CollectionID = doc.CollectionID
	}

	if err := s.embedChunks(ctx, chunks); err != nil {
		return nil, err
	}

	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	if err := s.chunkStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	if err := s.chunkStore.SaveChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("save chunks: %w", err)
	}

	if err := s.indexChunks(ctx, chunks); err != nil {
		return nil, err
	}

	logger.Info("Indexed document %s: %d chunks", doc.ID, len(chunks))
	return chunks, nil
}

// embedChunks generates embeddings for all chunks in one batch and
// assigns deterministic embedding point IDs.
func (s *IndexingService) embedChunks(ctx context.Context, chunks []domain.Chunk) error {
	if s.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embed chunks: got %d embeddings for %d chunks", len(embeddings), len(chunks))
	}

	dims := s.embedder.Dimensions()
	for i := range chunks {
		if len(embeddings[i]) != dims {
			return fmt.Errorf("%w: embedding dimension %d does not match model dimension %d",
				domain.ErrInvalidConfiguration, len(embeddings[i]), dims)
		}
		chunks[i].Embedding = embeddings[i]
		// Point IDs are derived from the chunk ID so re-indexing a
		// document overwrites its points instead of duplicating them.
		chunks[i].EmbeddingID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(chunks[i].ID)).String()
	}
	return nil
}

// indexChunks registers the chunks with the vector and keyword indexes.
func (s *IndexingService) indexChunks(ctx context.Context, chunks []domain.Chunk) error {
	if s.vectorIndex == nil {
		return domain.ErrVectorIndexUnavailable
	}
	if s.keywordIndex == nil {
		return domain.ErrKeywordIndexUnavailable
	}

	points := make([]driven.VectorPoint, len(chunks))
	for i, chunk := range chunks {
		points[i] = driven.VectorPoint{
			PointID: chunk.EmbeddingID,
			ChunkID: chunk.ID,
			Vector:  chunk.Embedding,
			Payload: driven.VectorPayload{
				DocumentID:   chunk.DocumentID,
				CollectionID: chunk.CollectionID,
				ChunkIndex:   chunk.Index,
			},
		}
	}
	if err := s.vectorIndex.Upsert(ctx, points); err != nil {
		return fmt.Errorf("upsert vectors: %w", err)
	}

	for _, chunk := range chunks {
		if err := s.keywordIndex.Index(ctx, chunk); err != nil {
			return fmt.Errorf("index chunk %s: %w", chunk.ID, err)
		}
	}
	return nil
}

// DeleteDocument removes a document, its chunks, and their index
// entries.
func (s *IndexingService) DeleteDocument(ctx context.Context, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("%w: document ID is empty", domain.ErrInvalidInput)
	}

	chunks, err := s.chunkStore.GetChunks(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get chunks: %w", err)
	}

	if s.vectorIndex != nil && len(chunks) > 0 {
		chunkIDs := make([]string, len(chunks))
		for i, chunk := range chunks {
			chunkIDs[i] = chunk.ID
		}
		if err := s.vectorIndex.Delete(ctx, chunkIDs); err != nil {
			return fmt.Errorf("delete vectors: %w", err)
		}
	}

	if s.keywordIndex != nil {
		for _, chunk := range chunks {
			if err := s.keywordIndex.Delete(ctx, chunk.ID); err != nil {
				return fmt.Errorf("deindex chunk %s: %w", chunk.ID, err)
			}
		}
	}

	if err := s.chunkStore.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	logger.Info("Deleted document %s (%d chunks)", documentID, len(chunks))
	return nil
}
