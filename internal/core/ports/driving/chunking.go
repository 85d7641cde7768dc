package driving

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// ChunkingService splits document text into ordered chunks.
type ChunkingService interface {
	// Chunk deterministically splits content into an ordered list of
	// chunks under the chosen strategy. Empty content fails with
	// domain.ErrInvalidInput; invalid options fail with
	// domain.ErrInvalidConfiguration.
	Chunk(ctx context.Context, documentID, content string, opts domain.ChunkingOptions) ([]domain.Chunk, error)
}
