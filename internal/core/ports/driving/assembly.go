package driving

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// ContextAssembler turns a ranked chunk list into a token-budgeted
// context block with citation metadata.
type ContextAssembler interface {
	// Assemble deduplicates, orders and truncates the candidates into a
	// context within maxContextTokens. Zero fitting chunks is a valid
	// empty result, not an error.
	Assemble(ctx context.Context, candidates []domain.RetrievalCandidate, maxContextTokens int) (*domain.RAGContext, error)
}
