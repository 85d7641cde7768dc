// Package qdrant provides a vector index adapter backed by a Qdrant
// instance over gRPC.
package qdrant

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"

	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default configuration values.
const (
	DefaultAddress    = "localhost:6334"
	DefaultCollection = "recall_chunks"

	// upsertBatchSize caps points per upsert request.
	upsertBatchSize = 100

	// maxRecvMsgSize allows large result pages when hydrating wide
	// candidate pools.
	maxRecvMsgSize = 32 * 1024 * 1024
)

// Payload field names stored with each point.
const (
	payloadChunkID      = "chunk_id"
	payloadDocumentID   = "document_id"
	payloadCollectionID = "collection_id"
	payloadChunkIndex   = "chunk_index"
)

// Config holds configuration for the Qdrant vector index.
type Config struct {
	// Address is the host:port of the Qdrant gRPC endpoint
	// (default: localhost:6334).
	Address string

	// APIKey authenticates against a secured instance (optional).
	APIKey string

	// Collection is the Qdrant collection name (default: recall_chunks).
	Collection string

	// Dimensions is the vector size the collection is created with
	// (required).
	Dimensions int
}

// Index is a Qdrant-backed implementation of driven.VectorIndex.
// Points are stored under the chunk's deterministic embedding UUID with
// chunk identity in the payload, so deletes can address points by chunk
// ID without knowing the UUID.
type Index struct {
	client     *qdrant.Client
	collection string
}

// NewIndex connects to Qdrant and ensures the collection exists with
// cosine distance.
func NewIndex(ctx context.Context, cfg Config) (*Index, error) {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Dimensions <= 0 {
		return nil, fmt.Errorf("qdrant: dimensions must be positive, got %d", cfg.Dimensions)
	}

	host, portStr, err := net.SplitHostPort(cfg.Address)
	if err != nil {
		host = cfg.Address
		portStr = "6334"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("qdrant: invalid port in address %q: %w", cfg.Address, err)
	}

	clientConfig := &qdrant.Config{
		Host: host,
		Port: port,
		GrpcOptions: []grpc.DialOption{
			grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(maxRecvMsgSize)),
		},
	}
	if cfg.APIKey != "" {
		clientConfig.APIKey = cfg.APIKey
	}

	client, err := qdrant.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("qdrant: create client: %w", err)
	}

	idx := &Index{
		client:     client,
		collection: cfg.Collection,
	}
	if err := idx.ensureCollection(ctx, cfg.Dimensions); err != nil {
		_ = client.Close()
		return nil, err
	}

	return idx, nil
}

// ensureCollection creates the collection if it does not exist.
func (idx *Index) ensureCollection(ctx context.Context, dimensions int) error {
	exists, err := idx.client.CollectionExists(ctx, idx.collection)
	if err != nil {
		return fmt.Errorf("qdrant: check collection %s: %w", idx.collection, err)
	}
	if exists {
		return nil
	}

	logger.Debug("Creating Qdrant collection %s (%d dimensions)", idx.collection, dimensions)

	err = idx.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: idx.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimensions),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("qdrant: create collection %s: %w", idx.collection, err)
	}
	return nil
}

// Upsert inserts or updates points in bounded batches.
func (idx *Index) Upsert(ctx context.Context, points []driven.VectorPoint) error {
	if len(points) == 0 {
		return nil
	}

	qpoints := make([]*qdrant.PointStruct, len(points))
	for i, p := range points {
		qpoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(p.PointID),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: map[string]*qdrant.Value{
				payloadChunkID:      qdrant.NewValueString(p.ChunkID),
				payloadDocumentID:   qdrant.NewValueString(p.Payload.DocumentID),
				payloadCollectionID: qdrant.NewValueString(p.Payload.CollectionID),
				payloadChunkIndex:   qdrant.NewValueInt(int64(p.Payload.ChunkIndex)),
			},
		}
	}

	for start := 0; start < len(qpoints); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(qpoints) {
			end = len(qpoints)
		}

		_, err := idx.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: idx.collection,
			Points:         qpoints[start:end],
		})
		if err != nil {
			return fmt.Errorf("qdrant: upsert batch at %d: %w", start, err)
		}
	}

	return nil
}

// Delete removes points by chunk ID via a payload filter, so callers
// never need the point UUIDs.
func (idx *Index) Delete(ctx context.Context, chunkIDs []string) error {
	if len(chunkIDs) == 0 {
		return nil
	}

	_, err := idx.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: idx.collection,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatchKeywords(payloadChunkID, chunkIDs...),
			},
		}),
	})
	if err != nil {
		return fmt.Errorf("qdrant: delete points: %w", err)
	}
	return nil
}

// Search runs a similarity query with the scope filter applied
// server-side.
func (idx *Index) Search(
	ctx context.Context, query []float32, limit int, filter driven.VectorFilter,
) ([]driven.VectorHit, error) {
	if limit <= 0 {
		return []driven.VectorHit{}, nil
	}

	limitU := uint64(limit)
	points, err := idx.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: idx.collection,
		Query:          qdrant.NewQuery(query...),
		Limit:          &limitU,
		Filter:         buildFilter(filter),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: query: %w", err)
	}

	hits := make([]driven.VectorHit, 0, len(points))
	for _, point := range points {
		hit := driven.VectorHit{
			Similarity: float64(point.GetScore()),
		}
		if payload := point.GetPayload(); payload != nil {
			hit.ChunkID = payload[payloadChunkID].GetStringValue()
			hit.Payload = driven.VectorPayload{
				DocumentID:   payload[payloadDocumentID].GetStringValue(),
				CollectionID: payload[payloadCollectionID].GetStringValue(),
				ChunkIndex:   int(payload[payloadChunkIndex].GetIntegerValue()),
			}
		}
		if hit.ChunkID == "" {
			// Point written by something else; not addressable as a chunk.
			continue
		}
		hits = append(hits, hit)
	}

	return hits, nil
}

// buildFilter translates the port filter into Qdrant must-conditions.
func buildFilter(filter driven.VectorFilter) *qdrant.Filter {
	var must []*qdrant.Condition
	if filter.CollectionID != "" {
		must = append(must, qdrant.NewMatch(payloadCollectionID, filter.CollectionID))
	}
	if len(filter.DocumentIDs) > 0 {
		must = append(must, qdrant.NewMatchKeywords(payloadDocumentID, filter.DocumentIDs...))
	}
	if len(must) == 0 {
		return nil
	}
	return &qdrant.Filter{Must: must}
}

// Close releases the gRPC connection.
func (idx *Index) Close() error {
	return idx.client.Close()
}
