package driven

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// KeywordIndex provides lexical relevance scoring over the chunk
// corpus, independent of the vector index. Scores are BM25-style raw
// values; the retriever normalises them over the candidate set.
type KeywordIndex interface {
	// Index adds or updates a chunk in the keyword index.
	Index(ctx context.Context, chunk domain.Chunk) error

	// Delete removes a chunk from the keyword index.
	Delete(ctx context.Context, chunkID string) error

	// Search scores the corpus against the query terms and returns the
	// top limit chunks, highest score first. Filter restricts the
	// scored corpus before ranking. Zero matches is a valid empty
	// result, not an error.
	Search(ctx context.Context, query string, limit int, filter KeywordFilter) ([]KeywordHit, error)

	// Close releases resources.
	Close() error
}

// KeywordFilter restricts the scored corpus. Zero values mean no
// restriction.
type KeywordFilter struct {
	// CollectionID restricts scoring to one collection.
	CollectionID string

	// DocumentIDs restricts scoring to specific documents.
	DocumentIDs []string
}

// KeywordHit represents a lexical search result.
type KeywordHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Score is the raw lexical relevance score (e.g., BM25).
	Score float64
}
