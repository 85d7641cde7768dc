package driving

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// IndexingService runs the document-processing pipeline: chunk, embed,
// persist, and index for both retrieval methods.
type IndexingService interface {
	// IndexDocument chunks the document, embeds the chunks, persists
	// them and registers them with the vector and keyword indexes.
	// Returns the stored chunks with embedding references populated.
	IndexDocument(ctx context.Context, doc *domain.Document, opts domain.ChunkingOptions) ([]domain.Chunk, error)

	// DeleteDocument removes a document and its chunks from storage and
	// from both indexes.
	DeleteDocument(ctx context.Context, documentID string) error
}
