// Package memory provides an in-process BM25 keyword index over the
// chunk corpus.
package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.KeywordIndex = (*Index)(nil)

// BM25 parameters: k1 controls term-frequency saturation, b controls
// length normalisation.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// indexedChunk is the per-chunk state needed for scoring.
type indexedChunk struct {
	documentID   string
	collectionID string
	termFreq     map[string]int
	length       int
}

// Index is an in-memory BM25 implementation of driven.KeywordIndex.
// Corpus statistics (document frequencies, average length) are
// maintained incrementally on Index and Delete.
type Index struct {
	mu          sync.RWMutex
	chunks      map[string]indexedChunk // keyed by chunk ID
	docFreq     map[string]int
	totalLength int
}

// NewIndex creates a new in-memory keyword index.
func NewIndex() *Index {
	return &Index{
		chunks:  make(map[string]indexedChunk),
		docFreq: make(map[string]int),
	}
}

// Index adds or updates a chunk in the index.
func (idx *Index) Index(_ context.Context, chunk domain.Chunk) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.removeLocked(chunk.ID)

	terms := tokenize(chunk.Content)
	tf := make(map[string]int, len(terms))
	for _, t := range terms {
		tf[t]++
	}
	for t := range tf {
		idx.docFreq[t]++
	}

	idx.chunks[chunk.ID] = indexedChunk{
		documentID:   chunk.DocumentID,
		collectionID: chunk.CollectionID,
		termFreq:     tf,
		length:       len(terms),
	}
	idx.totalLength += len(terms)
	return nil
}

// Delete removes a chunk from the index.
func (idx *Index) Delete(_ context.Context, chunkID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.removeLocked(chunkID)
	return nil
}

// removeLocked unregisters a chunk and rolls back its corpus
// statistics. Caller holds the write lock.
func (idx *Index) removeLocked(chunkID string) {
	c, ok := idx.chunks[chunkID]
	if !ok {
		return
	}
	for t := range c.termFreq {
		idx.docFreq[t]--
		if idx.docFreq[t] <= 0 {
			delete(idx.docFreq, t)
		}
	}
	idx.totalLength -= c.length
	delete(idx.chunks, chunkID)
}

// Search scores the corpus with BM25 and returns the top limit chunks.
// Zero matches is a valid empty result.
func (idx *Index) Search(
	_ context.Context, query string, limit int, filter driven.KeywordFilter,
) ([]driven.KeywordHit, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return []driven.KeywordHit{}, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	n := len(idx.chunks)
	if n == 0 {
		return []driven.KeywordHit{}, nil
	}
	avgLength := float64(idx.totalLength) / float64(n)

	var hits []driven.KeywordHit
	for chunkID, c := range idx.chunks {
		if !matches(c, filter) {
			continue
		}
		score := idx.scoreLocked(c, terms, n, avgLength)
		if score <= 0 {
			continue
		}
		hits = append(hits, driven.KeywordHit{ChunkID: chunkID, Score: score})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// scoreLocked computes the BM25 score of one chunk for the query terms.
// Caller holds at least the read lock.
func (idx *Index) scoreLocked(c indexedChunk, terms []string, n int, avgLength float64) float64 {
	var score float64
	for _, t := range terms {
		tf := c.termFreq[t]
		if tf == 0 {
			continue
		}
		df := idx.docFreq[t]
		idf := math.Log(1.0 + (float64(n)-float64(df)+0.5)/(float64(df)+0.5))
		norm := 1.0 - bm25B + bm25B*float64(c.length)/avgLength
		score += idf * (float64(tf) * (bm25K1 + 1.0)) / (float64(tf) + bm25K1*norm)
	}
	return score
}

// Close releases resources.
func (idx *Index) Close() error {
	return nil
}

// matches applies the corpus scope filter.
func matches(c indexedChunk, filter driven.KeywordFilter) bool {
	if filter.CollectionID != "" && c.collectionID != filter.CollectionID {
		return false
	}
	if len(filter.DocumentIDs) > 0 {
		found := false
		for _, id := range filter.DocumentIDs {
			if c.documentID == id {
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

// tokenize lowercases and splits text on non-alphanumeric runes.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
