package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

var (
	queryTopK       int
	queryCollection string
	queryRerank     bool
	queryJSON       bool
)

var queryCmd = &cobra.Command{
	Use:   "query [query]",
	Short: "Search the knowledge base",
	Long: `Performs hybrid retrieval across indexed documents, combining
semantic (vector) and keyword (BM25) search into a single ranking.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "n", 10, "maximum number of results")
	queryCmd.Flags().StringVarP(&queryCollection, "collection", "c", "", "restrict to one collection")
	queryCmd.Flags().BoolVar(&queryRerank, "rerank", false, "re-rank results with the cross-encoder")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	ctx := context.Background()
	opts := domain.RetrievalOptions{
		TopK:         queryTopK,
		UseReranking: queryRerank,
		CollectionID: queryCollection,
	}

	candidates, err := retrievalService.Retrieve(ctx, args[0], opts)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, candidates)
	}
	return outputQueryTable(cmd, candidates)
}

// queryResult is the JSON shape for one retrieved chunk.
type queryResult struct {
	ChunkID      string  `json:"chunk_id"`
	DocumentID   string  `json:"document_id"`
	Index        int     `json:"index"`
	Score        float64 `json:"score"`
	VectorScore  float64 `json:"vector_score"`
	KeywordScore float64 `json:"keyword_score"`
	Content      string  `json:"content"`
}

func outputQueryJSON(cmd *cobra.Command, candidates []domain.RetrievalCandidate) error {
	results := make([]queryResult, len(candidates))
	for i := range candidates {
		results[i] = queryResult{
			ChunkID:      candidates[i].Chunk.ID,
			DocumentID:   candidates[i].Chunk.DocumentID,
			Index:        candidates[i].Chunk.Index,
			Score:        candidates[i].FinalScore(),
			VectorScore:  candidates[i].VectorScore,
			KeywordScore: candidates[i].KeywordScore,
			Content:      candidates[i].Chunk.Content,
		}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryTable(cmd *cobra.Command, candidates []domain.RetrievalCandidate) error {
	if len(candidates) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range candidates {
		c := &candidates[i]
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, c.Chunk.ID, c.FinalScore())
		cmd.Printf("      vector=%.3f keyword=%.3f\n", c.VectorScore, c.KeywordScore)
		cmd.Printf("      %s\n", snippet(c.Chunk.Content))
		cmd.Println()
	}

	return nil
}

// snippet shortens chunk content for table output.
func snippet(content string) string {
	const maxLen = 120
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	return string(runes[:maxLen]) + "..."
}
