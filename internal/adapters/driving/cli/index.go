package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

var (
	indexCollection string
	indexTitle      string
	indexStrategy   string
	indexTargetSize int
	indexOverlap    int
)

var indexCmd = &cobra.Command{
	Use:   "index [file]",
	Short: "Index a document into the knowledge base",
	Long: `Reads a text file, splits it into chunks, embeds the chunks and
registers them with the vector and keyword indexes. Re-indexing the
same file replaces its previous chunks.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVarP(&indexCollection, "collection", "c", "", "collection to index into")
	indexCmd.Flags().StringVar(&indexTitle, "title", "", "document title (defaults to the file name)")
	indexCmd.Flags().StringVar(&indexStrategy, "strategy", "", "chunking strategy: sentence, paragraph, fixed, semantic")
	indexCmd.Flags().IntVar(&indexTargetSize, "target-size", 0, "target chunk size in characters")
	indexCmd.Flags().IntVar(&indexOverlap, "overlap", -1, "chunk overlap in characters")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexingService == nil {
		return errors.New("indexing service not configured")
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("file %s is not valid UTF-8 text", path)
	}

	title := indexTitle
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	doc := &domain.Document{
		// Derived from the path so re-indexing the same file updates the
		// existing document instead of creating a duplicate.
		ID:           uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+path)).String(),
		CollectionID: indexCollection,
		URI:          "file://" + path,
		Title:        title,
		Content:      string(data),
	}

	opts := indexChunkingOptions()

	ctx := context.Background()
	chunks, err := indexingService.IndexDocument(ctx, doc, opts)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	cmd.Printf("Indexed %s\n", path)
	cmd.Printf("  Document ID: %s\n", doc.ID)
	if doc.CollectionID != "" {
		cmd.Printf("  Collection:  %s\n", doc.CollectionID)
	}
	cmd.Printf("  Chunks:      %d (%s strategy)\n", len(chunks), opts.Strategy)
	return nil
}

// indexChunkingOptions merges command flags over the configured defaults.
func indexChunkingOptions() domain.ChunkingOptions {
	opts := domain.DefaultChunkingOptions()
	if settingsStore != nil {
		opts = settingsStore.Settings().ChunkingOptions()
	}
	if indexStrategy != "" {
		opts.Strategy = domain.ChunkStrategy(indexStrategy)
	}
	if indexTargetSize > 0 {
		opts.TargetSize = indexTargetSize
	}
	if indexOverlap >= 0 {
		opts.Overlap = indexOverlap
	}
	return opts
}
