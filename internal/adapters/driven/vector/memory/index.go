// Package memory provides an exact-scan in-memory vector index for
// tests and single-process use.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an in-memory implementation of driven.VectorIndex using an
// exact cosine-similarity scan. Fine for personal-corpus sizes; swap in
// the Qdrant adapter beyond that.
type Index struct {
	mu     sync.RWMutex
	points map[string]driven.VectorPoint // keyed by chunk ID
}

// NewIndex creates a new in-memory vector index.
func NewIndex() *Index {
	return &Index{points: make(map[string]driven.VectorPoint)}
}

// Upsert inserts or updates points.
func (idx *Index) Upsert(_ context.Context, points []driven.VectorPoint) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, p := range points {
		idx.points[p.ChunkID] = p
	}
	return nil
}

// Delete removes points by chunk ID.
func (idx *Index) Delete(_ context.Context, chunkIDs []string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, id := range chunkIDs {
		delete(idx.points, id)
	}
	return nil
}

// Search scans all points and returns the limit most similar, filter
// applied before ranking.
func (idx *Index) Search(
	_ context.Context, query []float32, limit int, filter driven.VectorFilter,
) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var hits []driven.VectorHit
	for _, p := range idx.points {
		if !matches(p.Payload, filter) {
			continue
		}
		hits = append(hits, driven.VectorHit{
			ChunkID:    p.ChunkID,
			Similarity: cosine(query, p.Vector),
			Payload:    p.Payload,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Close releases resources.
func (idx *Index) Close() error {
	return nil
}

// matches applies the hard payload filter.
func matches(payload driven.VectorPayload, filter driven.VectorFilter) bool {
	if filter.CollectionID != "" && payload.CollectionID != filter.CollectionID {
		return false
	}
	if len(filter.DocumentIDs) > 0 {
		found := false
		for _, id := range filter.DocumentIDs {
			if payload.DocumentID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// cosine computes cosine similarity between two vectors. Mismatched or
// zero-length vectors score 0.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
