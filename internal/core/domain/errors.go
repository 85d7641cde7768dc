package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input, such as an
	// empty document passed to the chunker. These are programmer errors
	// and must not be retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfiguration indicates invalid strategy or retrieval
	// parameters: overlap not smaller than the target size, fusion
	// weights not summing to 1.0, mismatched embedding dimensions.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrRetrievalBackend indicates the vector index or embedding
	// provider was unreachable or failed during retrieval. Potentially
	// transient; callers may retry with backoff.
	ErrRetrievalBackend = errors.New("retrieval backend unavailable")

	// ErrRerankerUnavailable indicates re-ranking was explicitly
	// requested but the re-ranker could not be reached. The retrieve
	// call aborts rather than silently falling back to fused-score
	// ordering.
	ErrRerankerUnavailable = errors.New("reranker unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Vector search is impossible without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not
	// configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrKeywordIndexUnavailable indicates the keyword index is not
	// configured.
	ErrKeywordIndexUnavailable = errors.New("keyword index unavailable")
)
