package domain

// ExcerptLength bounds the citation preview taken from chunk content.
const ExcerptLength = 200

// ChunkDelimiter separates chunk contents in assembled context so the
// downstream LLM can distinguish chunk boundaries.
const ChunkDelimiter = "\n\n"

// Citation points from an LLM-visible context excerpt back to its exact
// source chunk. Citations are one-to-one with the chunks included in
// the assembled context.
type Citation struct {
	// DocumentID is the owning document.
	DocumentID string

	// ChunkID is the cited chunk.
	ChunkID string

	// ChunkIndex is the chunk's ordinal position within the document.
	ChunkIndex int

	// RelevanceScore is the final retrieval score of the cited chunk.
	RelevanceScore float64

	// Excerpt is a bounded-length preview of the chunk content.
	Excerpt string
}

// RAGContext is the assembled, token-budgeted context block handed to
// the downstream LLM together with its citations.
type RAGContext struct {
	// ContextText is the concatenated, ordered chunk contents.
	ContextText string

	// Chunks lists the included chunks with their scores, in emission
	// order. No chunk ID appears twice.
	Chunks []RetrievalCandidate

	// Citations has exactly one entry per included chunk.
	Citations []Citation

	// TotalTokens is the estimated token count of ContextText. Never
	// exceeds the configured budget.
	TotalTokens int
}
