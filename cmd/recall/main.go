// Command recall is the entry point for the Recall CLI and MCP server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/recall-labs/recall-cli/internal/adapters/driven/config/file"
	"github.com/recall-labs/recall-cli/internal/adapters/driven/embedding/ollama"
	"github.com/recall-labs/recall-cli/internal/adapters/driven/embedding/openai"
	keywordmem "github.com/recall-labs/recall-cli/internal/adapters/driven/keyword/memory"
	rerankhttp "github.com/recall-labs/recall-cli/internal/adapters/driven/rerank/http"
	"github.com/recall-labs/recall-cli/internal/adapters/driven/storage/sqlite"
	vectormem "github.com/recall-labs/recall-cli/internal/adapters/driven/vector/memory"
	"github.com/recall-labs/recall-cli/internal/adapters/driven/vector/qdrant"
	"github.com/recall-labs/recall-cli/internal/adapters/driving/cli"
	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/services"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	settingsStore, err := file.NewStore(os.Getenv("RECALL_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	settings := settingsStore.Settings()

	chunkStore, err := sqlite.NewStore(settings.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening chunk store: %w", err)
	}
	defer chunkStore.Close()

	embedder, err := buildEmbedder(settings)
	if err != nil {
		return err
	}
	defer embedder.Close()

	vectorIndex, err := buildVectorIndex(ctx, settings, chunkStore, embedder.Dimensions())
	if err != nil {
		return err
	}
	defer vectorIndex.Close()

	keywordIndex, err := buildKeywordIndex(ctx, chunkStore)
	if err != nil {
		return err
	}
	defer keywordIndex.Close()

	var reranker driven.Reranker
	if settings.Reranker.Enabled {
		reranker = rerankhttp.NewReranker(rerankhttp.Config{
			BaseURL: settings.Reranker.BaseURL,
			Model:   settings.Reranker.Model,
		})
	}

	chunking := services.NewChunkingService()
	indexing := services.NewIndexingService(chunking, chunkStore, vectorIndex, keywordIndex, embedder)
	retrieval := services.NewRetrievalService(chunkStore, vectorIndex, keywordIndex, embedder, reranker, settings.FusionWeights())
	assembler := services.NewContextAssembler(nil)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Indexing:  indexing,
		Retrieval: retrieval,
		Assembler: assembler,
		Documents: chunkStore,
		Settings:  settingsStore,
	})

	return cli.Execute()
}

func buildEmbedder(settings file.Settings) (driven.EmbeddingService, error) {
	switch settings.Embedding.Provider {
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			BaseURL:    settings.Embedding.BaseURL,
			APIKey:     settings.Embedding.APIKey,
			Model:      settings.Embedding.Model,
			Dimensions: settings.Embedding.Dimensions,
		})
	default:
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    settings.Embedding.BaseURL,
			Model:      settings.Embedding.Model,
			Dimensions: settings.Embedding.Dimensions,
		}), nil
	}
}

// buildVectorIndex wires the configured backend. The in-memory backend
// is rebuilt from the stored chunk embeddings at startup.
func buildVectorIndex(
	ctx context.Context, settings file.Settings, chunkStore driven.ChunkStore, dimensions int,
) (driven.VectorIndex, error) {
	if settings.Vector.Backend == "qdrant" {
		index, err := qdrant.NewIndex(ctx, qdrant.Config{
			Address:    settings.Vector.Address,
			APIKey:     settings.Vector.APIKey,
			Collection: settings.Vector.Collection,
			Dimensions: dimensions,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to qdrant: %w", err)
		}
		return index, nil
	}

	index := vectormem.NewIndex()
	chunks, err := chunkStore.ListChunks(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}

	points := make([]driven.VectorPoint, 0, len(chunks))
	for i := range chunks {
		if len(chunks[i].Embedding) == 0 {
			continue
		}
		points = append(points, vectorPoint(&chunks[i]))
	}
	if len(points) > 0 {
		if err := index.Upsert(ctx, points); err != nil {
			return nil, fmt.Errorf("rebuilding vector index: %w", err)
		}
	}
	logger.Debug("Rebuilt in-memory vector index with %d points", len(points))
	return index, nil
}

// buildKeywordIndex rebuilds the in-process BM25 index from storage.
func buildKeywordIndex(ctx context.Context, chunkStore driven.ChunkStore) (driven.KeywordIndex, error) {
	index := keywordmem.NewIndex()
	chunks, err := chunkStore.ListChunks(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}
	for i := range chunks {
		if err := index.Index(ctx, chunks[i]); err != nil {
			return nil, fmt.Errorf("rebuilding keyword index: %w", err)
		}
	}
	logger.Debug("Rebuilt keyword index with %d chunks", len(chunks))
	return index, nil
}

func vectorPoint(chunk *domain.Chunk) driven.VectorPoint {
	return driven.VectorPoint{
		PointID: chunk.EmbeddingID,
		ChunkID: chunk.ID,
		Vector:  chunk.Embedding,
		Payload: driven.VectorPayload{
			DocumentID:   chunk.DocumentID,
			CollectionID: chunk.CollectionID,
			ChunkIndex:   chunk.Index,
		},
	}
}
