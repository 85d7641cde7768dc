package cli

import (
	"context"
	"errors"
	"time"

	"github.com/recall-labs/recall-cli/internal/adapters/driven/storage/memory"
	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// mockIndexingService returns canned chunks and records deletions.
type mockIndexingService struct {
	chunks  []domain.Chunk
	err     error
	deleted []string
}

func (m *mockIndexingService) IndexDocument(
	_ context.Context, doc *domain.Document, opts domain.ChunkingOptions,
) ([]domain.Chunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.chunks != nil {
		return m.chunks, nil
	}
	return []domain.Chunk{
		{ID: domain.ChunkID(doc.ID, 0), DocumentID: doc.ID, Strategy: opts.Strategy},
	}, nil
}

func (m *mockIndexingService) DeleteDocument(_ context.Context, documentID string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, documentID)
	return nil
}

// mockRetrievalService returns canned candidates.
type mockRetrievalService struct {
	candidates []domain.RetrievalCandidate
	err        error
	gotOpts    domain.RetrievalOptions
}

func (m *mockRetrievalService) Retrieve(
	_ context.Context, _ string, opts domain.RetrievalOptions,
) ([]domain.RetrievalCandidate, error) {
	m.gotOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.candidates, nil
}

// mockAssemblerService returns a canned context.
type mockAssemblerService struct {
	result *domain.RAGContext
	err    error
}

func (m *mockAssemblerService) Assemble(
	_ context.Context, candidates []domain.RetrievalCandidate, _ int,
) (*domain.RAGContext, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.RAGContext{Chunks: candidates}, nil
}

var errMockService = errors.New("mock service failure")

// setupTestServices installs mock services with canned data and returns
// a cleanup that restores the previous wiring.
func setupTestServices() func() {
	oldIndexing := indexingService
	oldRetrieval := retrievalService
	oldAssembler := assemblerService
	oldStore := documentStore

	candidates := []domain.RetrievalCandidate{
		{
			Chunk: domain.Chunk{
				ID:         "doc-1:0",
				DocumentID: "doc-1",
				Index:      0,
				Content:    "First relevant chunk of text.",
			},
			VectorScore:  0.9,
			KeywordScore: 0.5,
			FusedScore:   0.78,
		},
		{
			Chunk: domain.Chunk{
				ID:         "doc-2:3",
				DocumentID: "doc-2",
				Index:      3,
				Content:    "Second relevant chunk of text.",
			},
			VectorScore: 0.6,
			FusedScore:  0.42,
		},
	}

	store := memory.NewChunkStore()
	_ = store.SaveDocument(context.Background(), &domain.Document{
		ID:        "doc-1",
		Title:     "Test Document",
		URI:       "file:///test.md",
		Content:   "Full document text.",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})

	indexingService = &mockIndexingService{}
	retrievalService = &mockRetrievalService{candidates: candidates}
	assemblerService = &mockAssemblerService{
		result: &domain.RAGContext{
			ContextText: "First relevant chunk of text.\n\nSecond relevant chunk of text.",
			Chunks:      candidates,
			Citations: []domain.Citation{
				{DocumentID: "doc-1", ChunkID: "doc-1:0", ChunkIndex: 0, RelevanceScore: 0.78, Excerpt: "First relevant chunk of text."},
				{DocumentID: "doc-2", ChunkID: "doc-2:3", ChunkIndex: 3, RelevanceScore: 0.42, Excerpt: "Second relevant chunk of text."},
			},
			TotalTokens: 15,
		},
	}
	documentStore = store

	return func() {
		indexingService = oldIndexing
		retrievalService = oldRetrieval
		assemblerService = oldAssembler
		documentStore = oldStore
	}
}
