package driven

import "context"

// Reranker scores (query, passage) pairs with a cross-encoder-style
// relevance model. This is an optional second retrieval pass: more
// expensive and more accurate than first-pass scoring.
type Reranker interface {
	// Rerank scores the candidates against the query and returns one
	// result per candidate. It never changes the candidate set, only
	// supplies new scores.
	Rerank(ctx context.Context, query string, candidates []RerankCandidate) ([]RerankResult, error)

	// ModelName returns the model identifier for logging.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// RerankCandidate is one passage to score against the query.
type RerankCandidate struct {
	// ChunkID maps the result back to the retrieval candidate.
	ChunkID string

	// Content is the passage text.
	Content string
}

// RerankResult is the cross-encoder score for one candidate.
type RerankResult struct {
	// ChunkID matches the candidate.
	ChunkID string

	// Score is the relevance score, typically in [0,1].
	Score float64
}
