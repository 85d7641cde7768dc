package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func newTestServer(t *testing.T, retrieval *mockRetrievalService, assembler *mockAssembler) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Retrieval: retrieval, Assembler: assembler})
	require.NoError(t, err)
	return server
}

func TestServer_handleRetrieve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked chunks", func(t *testing.T) {
		retrieval := &mockRetrievalService{
			candidates: []domain.RetrievalCandidate{
				{
					Chunk: domain.Chunk{
						ID:         "doc-1:0",
						DocumentID: "doc-1",
						Index:      0,
						Content:    "Relevant passage.",
					},
					VectorScore:  0.9,
					KeywordScore: 0.4,
					FusedScore:   0.75,
				},
			},
		}
		server := newTestServer(t, retrieval, &mockAssembler{})

		_, output, err := server.handleRetrieve(ctx, nil, RetrieveInput{Query: "question"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Chunks, 1)
		assert.Equal(t, "doc-1:0", output.Chunks[0].ChunkID)
		assert.Equal(t, "doc-1", output.Chunks[0].DocumentID)
		assert.Equal(t, "Relevant passage.", output.Chunks[0].Content)
		assert.InDelta(t, 0.75, output.Chunks[0].Score, 1e-9)
		assert.InDelta(t, 0.9, output.Chunks[0].VectorScore, 1e-9)
		assert.InDelta(t, 0.4, output.Chunks[0].KeywordScore, 1e-9)
	})

	t.Run("default top_k is 10", func(t *testing.T) {
		retrieval := &mockRetrievalService{}
		server := newTestServer(t, retrieval, &mockAssembler{})

		_, _, err := server.handleRetrieve(ctx, nil, RetrieveInput{Query: "question"})

		require.NoError(t, err)
		assert.Equal(t, 10, retrieval.gotOpts.TopK)
	})

	t.Run("forwards scope and rerank options", func(t *testing.T) {
		retrieval := &mockRetrievalService{}
		server := newTestServer(t, retrieval, &mockAssembler{})

		_, _, err := server.handleRetrieve(ctx, nil, RetrieveInput{
			Query:        "question",
			TopK:         3,
			CollectionID: "work",
			DocumentIDs:  []string{"doc-1"},
			Rerank:       true,
		})

		require.NoError(t, err)
		assert.Equal(t, "question", retrieval.gotQuery)
		assert.Equal(t, 3, retrieval.gotOpts.TopK)
		assert.Equal(t, "work", retrieval.gotOpts.CollectionID)
		assert.Equal(t, []string{"doc-1"}, retrieval.gotOpts.DocumentIDs)
		assert.True(t, retrieval.gotOpts.UseReranking)
	})

	t.Run("returns error on retrieval failure", func(t *testing.T) {
		retrieval := &mockRetrievalService{err: errors.New("backend down")}
		server := newTestServer(t, retrieval, &mockAssembler{})

		_, _, err := server.handleRetrieve(ctx, nil, RetrieveInput{Query: "question"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "backend down")
	})
}

func TestServer_handleAssemble(t *testing.T) {
	ctx := context.Background()

	t.Run("returns context with citations", func(t *testing.T) {
		candidates := []domain.RetrievalCandidate{
			{Chunk: domain.Chunk{ID: "doc-1:0", DocumentID: "doc-1", Content: "text"}, FusedScore: 0.8},
		}
		retrieval := &mockRetrievalService{candidates: candidates}
		assembler := &mockAssembler{
			result: &domain.RAGContext{
				ContextText: "text",
				Chunks:      candidates,
				Citations: []domain.Citation{
					{DocumentID: "doc-1", ChunkID: "doc-1:0", ChunkIndex: 0, RelevanceScore: 0.8, Excerpt: "text"},
				},
				TotalTokens: 1,
			},
		}
		server := newTestServer(t, retrieval, assembler)

		_, output, err := server.handleAssemble(ctx, nil, AssembleInput{Query: "question"})

		require.NoError(t, err)
		assert.Equal(t, "text", output.Context)
		assert.Equal(t, 1, output.TotalTokens)
		require.Len(t, output.Citations, 1)
		assert.Equal(t, "doc-1:0", output.Citations[0].ChunkID)
		assert.InDelta(t, 0.8, output.Citations[0].Score, 1e-9)
		assert.Equal(t, candidates, assembler.gotCandidates)
	})

	t.Run("default budget is 4000 tokens", func(t *testing.T) {
		assembler := &mockAssembler{}
		server := newTestServer(t, &mockRetrievalService{}, assembler)

		_, _, err := server.handleAssemble(ctx, nil, AssembleInput{Query: "question"})

		require.NoError(t, err)
		assert.Equal(t, defaultMaxTokens, assembler.gotMaxTokens)
	})

	t.Run("explicit budget forwarded", func(t *testing.T) {
		assembler := &mockAssembler{}
		server := newTestServer(t, &mockRetrievalService{}, assembler)

		_, _, err := server.handleAssemble(ctx, nil, AssembleInput{Query: "question", MaxTokens: 512})

		require.NoError(t, err)
		assert.Equal(t, 512, assembler.gotMaxTokens)
	})

	t.Run("returns error on assembly failure", func(t *testing.T) {
		assembler := &mockAssembler{err: errors.New("assembly failed")}
		server := newTestServer(t, &mockRetrievalService{}, assembler)

		_, _, err := server.handleAssemble(ctx, nil, AssembleInput{Query: "question"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "assembly failed")
	})
}

func TestNewServerValidatesPorts(t *testing.T) {
	_, err := NewServer(&Ports{Assembler: &mockAssembler{}})
	assert.ErrorIs(t, err, ErrMissingRetrievalService)

	_, err = NewServer(&Ports{Retrieval: &mockRetrievalService{}})
	assert.ErrorIs(t, err, ErrMissingAssembler)
}
