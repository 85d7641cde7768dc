package domain

import (
	"fmt"
	"math"
)

// weightSumTolerance absorbs float rounding when checking that fusion
// weights sum to 1.0.
const weightSumTolerance = 1e-9

// FusionWeights controls how vector and keyword scores combine into a
// fused relevance score.
type FusionWeights struct {
	// Vector is the weight applied to the cosine-similarity score.
	Vector float64

	// Keyword is the weight applied to the normalised lexical score.
	Keyword float64
}

// DefaultFusionWeights favour vector similarity 0.7 to 0.3.
func DefaultFusionWeights() FusionWeights {
	return FusionWeights{Vector: 0.7, Keyword: 0.3}
}

// Validate checks that both weights are non-negative and sum to 1.0.
func (w FusionWeights) Validate() error {
	if w.Vector < 0 || w.Keyword < 0 {
		return fmt.Errorf("%w: fusion weights must not be negative (vector=%v keyword=%v)",
			ErrInvalidConfiguration, w.Vector, w.Keyword)
	}
	if math.Abs(w.Vector+w.Keyword-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: fusion weights must sum to 1.0, got %v",
			ErrInvalidConfiguration, w.Vector+w.Keyword)
	}
	return nil
}

// Fuse combines the two method scores into one fused score.
func (w FusionWeights) Fuse(vectorScore, keywordScore float64) float64 {
	return w.Vector*vectorScore + w.Keyword*keywordScore
}

// RetrievalOptions configures a single retrieve call.
type RetrievalOptions struct {
	// TopK is the maximum number of candidates to return.
	TopK int

	// UseReranking enables cross-encoder re-ranking of the fused top
	// candidates. When the re-ranker is unreachable the call fails; it
	// never silently falls back to fused ordering.
	UseReranking bool

	// CollectionID restricts retrieval to one collection. Empty means
	// the whole corpus.
	CollectionID string

	// DocumentIDs restricts retrieval to specific documents. Applied as
	// a hard filter before ranking.
	DocumentIDs []string

	// Weights overrides the service's fusion weights when non-zero.
	Weights FusionWeights
}

// RetrievalCandidate is a chunk scored by one retrieval call.
// Candidates exist only for the duration of the call and are never
// persisted.
type RetrievalCandidate struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// VectorScore is the cosine similarity in [0,1]. Zero when the chunk
	// was found by keyword search only.
	VectorScore float64

	// KeywordScore is the lexical score normalised into [0,1] over the
	// candidate set. Zero when found by vector search only.
	KeywordScore float64

	// FusedScore is the weighted combination of the two method scores.
	FusedScore float64

	// RerankScore is the cross-encoder relevance score. Nil unless
	// re-ranking ran; when set it replaces FusedScore as the ranking key.
	RerankScore *float64
}

// FinalScore returns the ranking key: the rerank score when re-ranking
// ran, the fused score otherwise.
func (c RetrievalCandidate) FinalScore() float64 {
	if c.RerankScore != nil {
		return *c.RerankScore
	}
	return c.FusedScore
}
