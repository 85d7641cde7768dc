package driven

import "context"

// VectorIndex provides semantic similarity search operations.
// Backed by Qdrant in production; an in-memory implementation exists
// for tests and single-process use.
type VectorIndex interface {
	// Upsert inserts or updates points for the given chunks.
	Upsert(ctx context.Context, points []VectorPoint) error

	// Delete removes the points for the given chunk IDs.
	Delete(ctx context.Context, chunkIDs []string) error

	// Search finds the limit nearest chunks to the query vector by
	// cosine similarity, applying filter as a hard predicate before
	// ranking.
	Search(ctx context.Context, query []float32, limit int, filter VectorFilter) ([]VectorHit, error)

	// Close releases resources.
	Close() error
}

// VectorPoint is one chunk vector with its payload, as stored in the
// index. Payload fields are the only place chunk metadata is serialized
// outside the process.
type VectorPoint struct {
	// PointID identifies the stored point (the chunk's EmbeddingID).
	PointID string

	// ChunkID is the chunk this vector represents.
	ChunkID string

	// Vector is the embedding.
	Vector []float32

	// Payload carries the filterable chunk metadata.
	Payload VectorPayload
}

// VectorPayload is the structured payload stored alongside each vector.
type VectorPayload struct {
	// DocumentID is the owning document.
	DocumentID string

	// CollectionID scopes the chunk to a collection.
	CollectionID string

	// ChunkIndex is the chunk's position within the document.
	ChunkIndex int
}

// VectorFilter is an equality predicate over payload fields, applied
// before ranking. Zero values mean no restriction.
type VectorFilter struct {
	// CollectionID restricts hits to one collection.
	CollectionID string

	// DocumentIDs restricts hits to specific documents.
	DocumentIDs []string
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score (0-1).
	Similarity float64

	// Payload is the stored chunk metadata.
	Payload VectorPayload
}
