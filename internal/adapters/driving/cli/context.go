package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

var (
	contextMaxTokens  int
	contextTopK       int
	contextCollection string
	contextRerank     bool
)

var contextCmd = &cobra.Command{
	Use:   "context [query]",
	Short: "Assemble a citation-backed context block",
	Long: `Retrieves the most relevant chunks for a query and assembles them
into a token-budgeted context block with citations back to the source
documents. The output is ready to paste into an LLM prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: runContext,
}

func init() {
	contextCmd.Flags().IntVar(&contextMaxTokens, "max-tokens", 0, "token budget for the context block")
	contextCmd.Flags().IntVarP(&contextTopK, "top-k", "n", 10, "maximum number of chunks to retrieve")
	contextCmd.Flags().StringVarP(&contextCollection, "collection", "c", "", "restrict to one collection")
	contextCmd.Flags().BoolVar(&contextRerank, "rerank", false, "re-rank candidates with the cross-encoder")
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}
	if assemblerService == nil {
		return errors.New("assembler service not configured")
	}

	ctx := context.Background()
	opts := domain.RetrievalOptions{
		TopK:         contextTopK,
		UseReranking: contextRerank,
		CollectionID: contextCollection,
	}

	candidates, err := retrievalService.Retrieve(ctx, args[0], opts)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	maxTokens := contextMaxTokens
	if maxTokens <= 0 {
		maxTokens = 4000
		if settingsStore != nil {
			maxTokens = settingsStore.Settings().Assembly.MaxContextTokens
		}
	}

	ragContext, err := assemblerService.Assemble(ctx, candidates, maxTokens)
	if err != nil {
		return fmt.Errorf("context assembly failed: %w", err)
	}

	if ragContext.ContextText == "" {
		cmd.Println("No chunks fit the token budget.")
		return nil
	}

	cmd.Println(ragContext.ContextText)
	cmd.Println()
	cmd.Printf("--- %d tokens, %d chunks ---\n", ragContext.TotalTokens, len(ragContext.Chunks))
	cmd.Println("Citations:")
	for i, cit := range ragContext.Citations {
		cmd.Printf("  [%d] %s chunk %d (%.3f)\n", i+1, cit.DocumentID, cit.ChunkIndex, cit.RelevanceScore)
	}
	return nil
}
