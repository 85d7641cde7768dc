package driving

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// RetrievalService answers free-text queries with ranked chunk
// candidates from hybrid (vector + keyword) search.
type RetrievalService interface {
	// Retrieve returns at most opts.TopK candidates, highest score
	// first. An unreachable vector backend fails the call with
	// domain.ErrRetrievalBackend; it never silently degrades to
	// keyword-only results.
	Retrieve(ctx context.Context, query string, opts domain.RetrievalOptions) ([]domain.RetrievalCandidate, error)
}
