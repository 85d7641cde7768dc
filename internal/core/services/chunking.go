package services

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/chunker"
	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Ensure ChunkingService implements the interface.
var _ driving.ChunkingService = (*ChunkingService)(nil)

// ChunkingService splits document text into ordered chunks.
type ChunkingService struct {
	chunker *chunker.Chunker
}

// NewChunkingService creates a new chunking service.
func NewChunkingService() *ChunkingService {
	return &ChunkingService{chunker: chunker.New()}
}

// Chunk deterministically splits content under the chosen strategy.
func (s *ChunkingService) Chunk(
	_ context.Context, documentID, content string, opts domain.ChunkingOptions,
) ([]domain.Chunk, error) {
	logger.Debug("Chunking document %s: strategy=%s target=%d overlap=%d",
		documentID, opts.Strategy, opts.TargetSize, opts.Overlap)

	chunks, err := s.chunker.Split(documentID, content, opts)
	if err != nil {
		return nil, err
	}

	logger.Debug("Chunked document %s into %d chunks", documentID, len(chunks))
	return chunks, nil
}
