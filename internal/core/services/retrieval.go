package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// defaultTopK is used when the caller does not specify a result count.
const defaultTopK = 10

// fusedScores holds the per-method scores for one chunk before
// hydration.
type fusedScores struct {
	chunkID string
	vector  float64
	keyword float64
}

// RetrievalService performs hybrid retrieval: vector and keyword search
// issued concurrently, weighted score fusion, and optional cross-encoder
// re-ranking.
type RetrievalService struct {
	chunkStore   driven.ChunkStore
	vectorIndex  driven.VectorIndex
	keywordIndex driven.KeywordIndex
	embedder     driven.EmbeddingService
	reranker     driven.Reranker
	weights      domain.FusionWeights
}

// NewRetrievalService creates a new retrieval service.
// The reranker parameter is optional (can be nil); retrieval with
// re-ranking requested then fails explicitly.
func NewRetrievalService(
	chunkStore driven.ChunkStore,
	vectorIndex driven.VectorIndex,
	keywordIndex driven.KeywordIndex,
	embedder driven.EmbeddingService,
	reranker driven.Reranker,
	weights domain.FusionWeights,
) *RetrievalService {
	return &RetrievalService{
		chunkStore:   chunkStore,
		vectorIndex:  vectorIndex,
		keywordIndex: keywordIndex,
		embedder:     embedder,
		reranker:     reranker,
		weights:      weights,
	}
}

// vectorCandidateLimit is how deep vector search goes for a topK ask.
func vectorCandidateLimit(topK int) int {
	n := topK * 4
	if n < 20 {
		n = 20
	}
	return n
}

// keywordCandidateLimit is how deep keyword search goes for a topK ask.
func keywordCandidateLimit(topK int) int {
	m := topK * 2
	if m < 10 {
		m = 10
	}
	return m
}

// rerankDepth is how many fused candidates the re-ranker scores.
func rerankDepth(topK int) int {
	k := topK * 2
	if k < 10 {
		k = 10
	}
	return k
}

// Retrieve returns at most opts.TopK candidates for the query, highest
// score first.
func (s *RetrievalService) Retrieve(
	ctx context.Context, query string, opts domain.RetrievalOptions,
) ([]domain.RetrievalCandidate, error) {
	logger.Section("Retrieval")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no candidates")
		return []domain.RetrievalCandidate{}, nil
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	weights := opts.Weights
	if weights == (domain.FusionWeights{}) {
		weights = s.weights
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("TopK: %d, weights: vector=%.2f keyword=%.2f, rerank=%t",
		topK, weights.Vector, weights.Keyword, opts.UseReranking)

	// Vector and keyword search are read-only and independent; issue
	// them concurrently and join before fusion.
	var (
		vectorHits  []driven.VectorHit
		keywordHits []driven.KeywordHit
		vectorErr   error
		keywordErr  error
	)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		vectorHits, vectorErr = s.vectorSearch(ctx, query, vectorCandidateLimit(topK), opts)
	}()

	go func() {
		defer wg.Done()
		keywordHits, keywordErr = s.keywordSearch(ctx, query, keywordCandidateLimit(topK), opts)
	}()

	wg.Wait()

	// An unreachable backend fails the whole call. Degrading to a
	// single-method result silently would hand callers a different
	// score basis than they asked for.
	if vectorErr != nil {
		logger.Warn("Vector search failed: %v", vectorErr)
		return nil, vectorErr
	}
	if keywordErr != nil {
		logger.Warn("Keyword search failed: %v", keywordErr)
		return nil, keywordErr
	}

	logger.Debug("Vector hits: %d, keyword hits: %d", len(vectorHits), len(keywordHits))

	fused := fuseScores(vectorHits, keywordHits)

	candidates, err := s.hydrate(ctx, fused, weights)
	if err != nil {
		return nil, fmt.Errorf("hydrate candidates: %w", err)
	}
	sortCandidates(candidates)

	if opts.UseReranking {
		candidates, err = s.rerank(ctx, query, candidates, rerankDepth(topK))
		if err != nil {
			return nil, err
		}
	}

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	logger.Info("Retrieval returned %d candidates", len(candidates))
	return candidates, nil
}

// vectorSearch embeds the query and searches the vector index.
func (s *RetrievalService) vectorSearch(
	ctx context.Context, query string, limit int, opts domain.RetrievalOptions,
) ([]driven.VectorHit, error) {
	if s.vectorIndex == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRetrievalBackend, domain.ErrVectorIndexUnavailable)
	}
	if s.embedder == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRetrievalBackend, domain.ErrEmbeddingUnavailable)
	}

	logger.Debug("Vector search: limit=%d", limit)

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %w", domain.ErrRetrievalBackend, err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	filter := driven.VectorFilter{
		CollectionID: opts.CollectionID,
		DocumentIDs:  opts.DocumentIDs,
	}
	hits, err := s.vectorIndex.Search(ctx, embedding, limit, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: vector search: %w", domain.ErrRetrievalBackend, err)
	}

	return hits, nil
}

// keywordSearch scores the corpus lexically. Zero matches is a valid
// empty result.
func (s *RetrievalService) keywordSearch(
	ctx context.Context, query string, limit int, opts domain.RetrievalOptions,
) ([]driven.KeywordHit, error) {
	if s.keywordIndex == nil {
		return nil, domain.ErrKeywordIndexUnavailable
	}

	logger.Debug("Keyword search: limit=%d", limit)

	filter := driven.KeywordFilter{
		CollectionID: opts.CollectionID,
		DocumentIDs:  opts.DocumentIDs,
	}
	hits, err := s.keywordIndex.Search(ctx, query, limit, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: keyword search: %w", domain.ErrRetrievalBackend, err)
	}

	return hits, nil
}

// fuseScores unions the two candidate sets by chunk ID. Vector scores
// are clamped into [0,1]; keyword scores are min-max normalised over
// the candidate set to guard against score-scale mismatches between
// the two methods. A chunk found by one method only scores 0 on the
// other.
func fuseScores(vectorHits []driven.VectorHit, keywordHits []driven.KeywordHit) []fusedScores {
	byID := make(map[string]*fusedScores, len(vectorHits)+len(keywordHits))
	var order []string

	for _, hit := range vectorHits {
		if _, ok := byID[hit.ChunkID]; !ok {
			byID[hit.ChunkID] = &fusedScores{chunkID: hit.ChunkID}
			order = append(order, hit.ChunkID)
		}
		byID[hit.ChunkID].vector = clamp01(hit.Similarity)
	}

	for _, hit := range keywordHits {
		if _, ok := byID[hit.ChunkID]; !ok {
			byID[hit.ChunkID] = &fusedScores{chunkID: hit.ChunkID}
			order = append(order, hit.ChunkID)
		}
		byID[hit.ChunkID].keyword = hit.Score
	}

	normaliseKeywordScores(byID, keywordHits)

	out := make([]fusedScores, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}

// normaliseKeywordScores min-max scales the keyword scores of the
// candidate set into [0,1]. Chunks absent from the keyword results keep
// their zero score rather than an imputed one.
func normaliseKeywordScores(byID map[string]*fusedScores, keywordHits []driven.KeywordHit) {
	if len(keywordHits) == 0 {
		return
	}

	minScore, maxScore := keywordHits[0].Score, keywordHits[0].Score
	for _, hit := range keywordHits[1:] {
		if hit.Score < minScore {
			minScore = hit.Score
		}
		if hit.Score > maxScore {
			maxScore = hit.Score
		}
	}

	for _, hit := range keywordHits {
		cand := byID[hit.ChunkID]
		switch {
		case maxScore > minScore:
			cand.keyword = (hit.Score - minScore) / (maxScore - minScore)
		case maxScore > 0:
			// All candidates scored identically; treat them as equally,
			// fully relevant on the keyword axis.
			cand.keyword = 1.0
		default:
			cand.keyword = 0.0
		}
	}
}

// hydrate loads chunk records for the fused candidates and applies the
// fusion weights. Chunks deleted since indexing are skipped.
func (s *RetrievalService) hydrate(
	ctx context.Context, fused []fusedScores, weights domain.FusionWeights,
) ([]domain.RetrievalCandidate, error) {
	if s.chunkStore == nil {
		return nil, errors.New("chunk store unavailable")
	}

	candidates := make([]domain.RetrievalCandidate, 0, len(fused))
	for _, f := range fused {
		chunk, err := s.chunkStore.GetChunk(ctx, f.chunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get chunk %s: %w", f.chunkID, err)
		}

		candidates = append(candidates, domain.RetrievalCandidate{
			Chunk:        *chunk,
			VectorScore:  f.vector,
			KeywordScore: f.keyword,
			FusedScore:   weights.Fuse(f.vector, f.keyword),
		})
	}

	return candidates, nil
}

// rerank scores the top depth candidates with the cross-encoder and
// re-sorts them by the new score. The candidate set never changes, only
// the order of the scored prefix.
func (s *RetrievalService) rerank(
	ctx context.Context, query string, candidates []domain.RetrievalCandidate, depth int,
) ([]domain.RetrievalCandidate, error) {
	if s.reranker == nil {
		return nil, fmt.Errorf("%w: no reranker configured", domain.ErrRerankerUnavailable)
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	if depth > len(candidates) {
		depth = len(candidates)
	}
	head := candidates[:depth]

	logger.Debug("Re-ranking top %d candidates with %s", depth, s.reranker.ModelName())

	rerankCandidates := make([]driven.RerankCandidate, len(head))
	for i, c := range head {
		rerankCandidates[i] = driven.RerankCandidate{
			ChunkID: c.Chunk.ID,
			Content: c.Chunk.Content,
		}
	}

	results, err := s.reranker.Rerank(ctx, query, rerankCandidates)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRerankerUnavailable, err)
	}

	scores := make(map[string]float64, len(results))
	for _, r := range results {
		scores[r.ChunkID] = r.Score
	}

	for i := range head {
		if score, ok := scores[head[i].Chunk.ID]; ok {
			sc := score
			head[i].RerankScore = &sc
		}
	}
	sortCandidates(head)

	return candidates, nil
}

// sortCandidates orders by final score descending. Ties break by chunk
// index ascending (earlier document position wins), then by document ID
// for full determinism.
func sortCandidates(candidates []domain.RetrievalCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := candidates[i].FinalScore(), candidates[j].FinalScore()
		if si != sj {
			return si > sj
		}
		if candidates[i].Chunk.Index != candidates[j].Chunk.Index {
			return candidates[i].Chunk.Index < candidates[j].Chunk.Index
		}
		return candidates[i].Chunk.DocumentID < candidates[j].Chunk.DocumentID
	})
}

// clamp01 bounds a score into [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
