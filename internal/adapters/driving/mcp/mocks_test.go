package mcp

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// mockRetrievalService implements driving.RetrievalService for testing.
type mockRetrievalService struct {
	candidates []domain.RetrievalCandidate
	err        error

	gotQuery string
	gotOpts  domain.RetrievalOptions
}

func (m *mockRetrievalService) Retrieve(
	_ context.Context, query string, opts domain.RetrievalOptions,
) ([]domain.RetrievalCandidate, error) {
	m.gotQuery = query
	m.gotOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.candidates, nil
}

// mockAssembler implements driving.ContextAssembler for testing.
type mockAssembler struct {
	result *domain.RAGContext
	err    error

	gotCandidates []domain.RetrievalCandidate
	gotMaxTokens  int
}

func (m *mockAssembler) Assemble(
	_ context.Context, candidates []domain.RetrievalCandidate, maxContextTokens int,
) (*domain.RAGContext, error) {
	m.gotCandidates = candidates
	m.gotMaxTokens = maxContextTokens
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.RAGContext{
		Chunks:    []domain.RetrievalCandidate{},
		Citations: []domain.Citation{},
	}, nil
}
