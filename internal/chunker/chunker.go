package chunker

import (
	"fmt"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// chunkSpan is a strategy's output: one chunk-to-be with its sentence
// count.
type chunkSpan struct {
	start     int
	end       int
	sentences int
}

// Chunker deterministically splits document text into chunks.
// It is stateless and safe for concurrent use.
type Chunker struct{}

// New creates a new chunker.
func New() *Chunker {
	return &Chunker{}
}

// Split divides content into an ordered list of chunks for documentID
// under the given options. Empty content fails with
// domain.ErrInvalidInput; invalid options fail with
// domain.ErrInvalidConfiguration. Valid non-empty input never fails:
// when no strategy-specific split point exists the whole document
// becomes a single chunk.
func (c *Chunker) Split(documentID, content string, opts domain.ChunkingOptions) ([]domain.Chunk, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is empty", domain.ErrInvalidInput)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var spans []chunkSpan
	switch opts.Strategy {
	case domain.StrategySentence:
		spans = sentenceSpans(content, opts.TargetSize, opts.Overlap)
	case domain.StrategyParagraph:
		spans = paragraphSpans(content, opts.TargetSize)
	case domain.StrategyFixed:
		spans = fixedSpans(content, opts.TargetSize, opts.Overlap, opts.Exact)
	case domain.StrategySemantic:
		spans = semanticSpans(content, opts.TargetSize)
	}

	// Degrade to a single whole-document chunk rather than fail.
	if len(spans) == 0 {
		spans = []chunkSpan{{0, len(content), len(splitSentences(content))}}
	}

	chunks := make([]domain.Chunk, len(spans))
	for i, s := range spans {
		chunks[i] = domain.NewChunk(documentID, i, content, s.start, s.end, s.sentences, opts.Strategy)
	}

	return chunks, nil
}
