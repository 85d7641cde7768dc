package driven

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// ChunkStore persists documents and chunks.
// Backed by SQLite for metadata storage.
type ChunkStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks stores chunks for a document.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document in reading order.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// ListChunks retrieves every stored chunk, optionally scoped to a
	// collection. Used to rebuild in-process indexes at startup.
	ListChunks(ctx context.Context, collectionID string) ([]domain.Chunk, error)

	// DeleteDocument removes a document and cascades to its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns documents for a collection.
	ListDocuments(ctx context.Context, collectionID string) ([]domain.Document, error)

	// Close releases resources.
	Close() error
}
