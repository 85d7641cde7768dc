package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ChunkStrategy selects the algorithm used to split a document into chunks.
// The strategy set is closed; dispatch happens inside the chunker.
type ChunkStrategy string

// Available chunking strategies.
const (
	// StrategySentence accumulates whole sentences up to the target size.
	StrategySentence ChunkStrategy = "sentence"

	// StrategyParagraph splits on blank-line boundaries, falling back to
	// sentence chunking for oversized paragraphs.
	StrategyParagraph ChunkStrategy = "paragraph"

	// StrategyFixed cuts at character offsets, optionally snapping to
	// sentence ends.
	StrategyFixed ChunkStrategy = "fixed"

	// StrategySemantic groups adjacent sentences while a continuation
	// heuristic holds.
	StrategySemantic ChunkStrategy = "semantic"
)

// IsValid returns true if the strategy is recognised.
func (s ChunkStrategy) IsValid() bool {
	switch s {
	case StrategySentence, StrategyParagraph, StrategyFixed, StrategySemantic:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ChunkStrategy) String() string {
	return string(s)
}

// Chunk represents the atomic retrieval unit within a document.
// Chunks are created once per document-processing run and never mutated;
// they are deleted only when the owning document is deleted.
type Chunk struct {
	// ID is the stable identifier, derived from DocumentID and Index.
	ID string

	// DocumentID links to the owning document.
	DocumentID string

	// CollectionID scopes the chunk to a document collection.
	CollectionID string

	// Content is the chunk's text, immutable once created.
	Content string

	// Index is the zero-based ordinal position within the document.
	// It defines reading order.
	Index int

	// StartOffset and EndOffset are character offsets into the original
	// document text. EndOffset is always greater than StartOffset.
	StartOffset int
	EndOffset   int

	// Derived statistics, computed at creation time.
	CharCount     int
	WordCount     int
	SentenceCount int

	// Strategy is the algorithm that produced this chunk.
	Strategy ChunkStrategy

	// Embedding is the vector representation, populated at indexing time.
	Embedding []float32

	// EmbeddingID references the point in the vector index once embedded.
	// Empty until indexing completes.
	EmbeddingID string
}

// ChunkID derives the stable chunk identifier from the owning document
// and the chunk's ordinal position. The derivation is deterministic so
// concurrent chunking of different documents never collides.
func ChunkID(documentID string, index int) string {
	return documentID + ":" + strconv.Itoa(index)
}

// NewChunk builds a chunk over content[start:end) with derived statistics.
// sentences is the number of sentences the span covers.
func NewChunk(documentID string, index int, content string, start, end int, sentences int, strategy ChunkStrategy) Chunk {
	text := content[start:end]
	return Chunk{
		ID:            ChunkID(documentID, index),
		DocumentID:    documentID,
		Content:       text,
		Index:         index,
		StartOffset:   start,
		EndOffset:     end,
		CharCount:     len(text),
		WordCount:     len(strings.Fields(text)),
		SentenceCount: sentences,
		Strategy:      strategy,
	}
}

// Default chunking parameters.
const (
	DefaultChunkTargetSize = 1000
	DefaultChunkOverlap    = 200
)

// ChunkingOptions configures a chunking run.
type ChunkingOptions struct {
	// Strategy selects the chunking algorithm.
	Strategy ChunkStrategy

	// TargetSize is a soft character-count ceiling per chunk. Strategies
	// may exceed it rather than split an indivisible unit.
	TargetSize int

	// Overlap is the amount of trailing context repeated into the next
	// chunk, in characters. Must be smaller than TargetSize.
	Overlap int

	// Exact disables sentence-boundary snapping for the fixed strategy,
	// cutting at exact offsets regardless of word boundaries.
	Exact bool
}

// Validate checks the options for configuration errors.
func (o ChunkingOptions) Validate() error {
	if !o.Strategy.IsValid() {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfiguration, string(o.Strategy))
	}
	if o.TargetSize <= 0 {
		return fmt.Errorf("%w: target size must be positive, got %d", ErrInvalidConfiguration, o.TargetSize)
	}
	if o.Overlap < 0 {
		return fmt.Errorf("%w: overlap must not be negative, got %d", ErrInvalidConfiguration, o.Overlap)
	}
	if o.Overlap >= o.TargetSize {
		return fmt.Errorf("%w: overlap %d must be smaller than target size %d",
			ErrInvalidConfiguration, o.Overlap, o.TargetSize)
	}
	return nil
}

// DefaultChunkingOptions returns the sentence strategy with default sizes.
func DefaultChunkingOptions() ChunkingOptions {
	return ChunkingOptions{
		Strategy:   StrategySentence,
		TargetSize: DefaultChunkTargetSize,
		Overlap:    DefaultChunkOverlap,
	}
}
