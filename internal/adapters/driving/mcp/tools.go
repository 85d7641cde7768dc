package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query        string   `json:"query" jsonschema:"the question or topic to retrieve relevant chunks for"`
	TopK         int      `json:"top_k,omitempty" jsonschema:"maximum number of chunks to return (default 10)"`
	CollectionID string   `json:"collection_id,omitempty" jsonschema:"restrict retrieval to one collection"`
	DocumentIDs  []string `json:"document_ids,omitempty" jsonschema:"restrict retrieval to specific documents"`
	Rerank       bool     `json:"rerank,omitempty" jsonschema:"re-rank candidates with the cross-encoder"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Chunks []ChunkOutput `json:"chunks"`
	Count  int           `json:"count"`
}

// ChunkOutput represents a single retrieved chunk.
type ChunkOutput struct {
	ChunkID      string  `json:"chunk_id"`
	DocumentID   string  `json:"document_id"`
	Index        int     `json:"index"`
	Content      string  `json:"content"`
	Score        float64 `json:"score"`
	VectorScore  float64 `json:"vector_score"`
	KeywordScore float64 `json:"keyword_score"`
}

// AssembleInput is the input schema for the assemble_context tool.
type AssembleInput struct {
	Query        string   `json:"query" jsonschema:"the question to build context for"`
	MaxTokens    int      `json:"max_tokens,omitempty" jsonschema:"token budget for the context block (default 4000)"`
	TopK         int      `json:"top_k,omitempty" jsonschema:"maximum number of chunks to retrieve first (default 10)"`
	CollectionID string   `json:"collection_id,omitempty" jsonschema:"restrict retrieval to one collection"`
	DocumentIDs  []string `json:"document_ids,omitempty" jsonschema:"restrict retrieval to specific documents"`
	Rerank       bool     `json:"rerank,omitempty" jsonschema:"re-rank candidates with the cross-encoder"`
}

// AssembleOutput is the output schema for the assemble_context tool.
type AssembleOutput struct {
	Context     string           `json:"context"`
	Citations   []CitationOutput `json:"citations"`
	TotalTokens int              `json:"total_tokens"`
}

// CitationOutput maps a span of the context back to its source.
type CitationOutput struct {
	DocumentID string  `json:"document_id"`
	ChunkID    string  `json:"chunk_id"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
	Excerpt    string  `json:"excerpt"`
}

// defaultMaxTokens is the assemble_context budget when none is given.
const defaultMaxTokens = 4000

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Retrieve the most relevant knowledge-base chunks for a query using hybrid vector and keyword search",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "assemble_context",
		Description: "Retrieve relevant chunks and assemble them into a token-budgeted context block with citations",
	}, s.handleAssemble)
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	candidates, err := s.retrieve(ctx, input.Query, input.TopK,
		input.CollectionID, input.DocumentIDs, input.Rerank)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		Chunks: make([]ChunkOutput, len(candidates)),
		Count:  len(candidates),
	}
	for i := range candidates {
		output.Chunks[i] = ChunkOutput{
			ChunkID:      candidates[i].Chunk.ID,
			DocumentID:   candidates[i].Chunk.DocumentID,
			Index:        candidates[i].Chunk.Index,
			Content:      candidates[i].Chunk.Content,
			Score:        candidates[i].FinalScore(),
			VectorScore:  candidates[i].VectorScore,
			KeywordScore: candidates[i].KeywordScore,
		}
	}

	return nil, output, nil
}

// handleAssemble handles the assemble_context tool invocation.
func (s *Server) handleAssemble(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AssembleInput,
) (*mcp.CallToolResult, AssembleOutput, error) {
	candidates, err := s.retrieve(ctx, input.Query, input.TopK,
		input.CollectionID, input.DocumentIDs, input.Rerank)
	if err != nil {
		return nil, AssembleOutput{}, err
	}

	maxTokens := input.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	ragContext, err := s.ports.Assembler.Assemble(ctx, candidates, maxTokens)
	if err != nil {
		return nil, AssembleOutput{}, err
	}

	output := AssembleOutput{
		Context:     ragContext.ContextText,
		Citations:   make([]CitationOutput, len(ragContext.Citations)),
		TotalTokens: ragContext.TotalTokens,
	}
	for i, cit := range ragContext.Citations {
		output.Citations[i] = CitationOutput{
			DocumentID: cit.DocumentID,
			ChunkID:    cit.ChunkID,
			ChunkIndex: cit.ChunkIndex,
			Score:      cit.RelevanceScore,
			Excerpt:    cit.Excerpt,
		}
	}

	return nil, output, nil
}

// retrieve runs the shared retrieval step for both tools.
func (s *Server) retrieve(
	ctx context.Context, query string, topK int, collectionID string, documentIDs []string, rerank bool,
) ([]domain.RetrievalCandidate, error) {
	if topK <= 0 {
		topK = 10
	}

	opts := domain.RetrievalOptions{
		TopK:         topK,
		UseReranking: rerank,
		CollectionID: collectionID,
		DocumentIDs:  documentIDs,
	}
	return s.ports.Retrieval.Retrieve(ctx, query, opts)
}
