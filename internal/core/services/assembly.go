package services

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Ensure ContextAssembler implements the interface.
var _ driving.ContextAssembler = (*ContextAssembler)(nil)

// charsPerToken is the character-based token estimate used when no real
// tokenizer is configured.
const charsPerToken = 4

// ContextAssembler converts ranked candidates into a token-budgeted
// context block with citations.
type ContextAssembler struct {
	tokens driven.TokenCounter
}

// NewContextAssembler creates a new assembler. The tokens parameter is
// optional (can be nil); a chars/4 estimate is used then.
func NewContextAssembler(tokens driven.TokenCounter) *ContextAssembler {
	return &ContextAssembler{tokens: tokens}
}

// Assemble deduplicates, orders and truncates the candidates into a
// context within maxContextTokens.
func (a *ContextAssembler) Assemble(
	_ context.Context, candidates []domain.RetrievalCandidate, maxContextTokens int,
) (*domain.RAGContext, error) {
	logger.Section("Context Assembly")
	logger.Debug("Candidates: %d, budget: %d tokens", len(candidates), maxContextTokens)

	result := &domain.RAGContext{
		Chunks:    []domain.RetrievalCandidate{},
		Citations: []domain.Citation{},
	}
	if len(candidates) == 0 || maxContextTokens <= 0 {
		return result, nil
	}

	ordered := orderForReading(deduplicate(candidates))

	// Include whole chunks until the next one would exceed the budget.
	// A chunk is never split to fit.
	total := 0
	var included []domain.RetrievalCandidate
	for _, c := range ordered {
		cost := a.estimateTokens(c.Chunk.Content)
		if total+cost > maxContextTokens {
			break
		}
		total += cost
		included = append(included, c)
	}

	if len(included) == 0 {
		// Budget smaller than the smallest chunk: a valid empty result.
		logger.Debug("No chunk fits the budget")
		return result, nil
	}

	parts := make([]string, len(included))
	citations := make([]domain.Citation, len(included))
	for i, c := range included {
		parts[i] = c.Chunk.Content
		citations[i] = domain.Citation{
			DocumentID:     c.Chunk.DocumentID,
			ChunkID:        c.Chunk.ID,
			ChunkIndex:     c.Chunk.Index,
			RelevanceScore: c.FinalScore(),
			Excerpt:        excerpt(c.Chunk.Content, domain.ExcerptLength),
		}
	}

	result.ContextText = strings.Join(parts, domain.ChunkDelimiter)
	result.Chunks = included
	result.Citations = citations
	result.TotalTokens = total

	logger.Info("Assembled context: %d chunks, %d tokens", len(included), total)
	return result, nil
}

// estimateTokens returns the token cost of text.
func (a *ContextAssembler) estimateTokens(text string) int {
	if a.tokens != nil {
		return a.tokens.CountTokens(text)
	}
	n := len(text) / charsPerToken
	if len(text)%charsPerToken != 0 {
		n++
	}
	return n
}

// deduplicate drops repeated chunk IDs, keeping the highest-ranked
// occurrence. The retriever already guarantees uniqueness; this is
// defensive against callers that merge result lists.
func deduplicate(candidates []domain.RetrievalCandidate) []domain.RetrievalCandidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]domain.RetrievalCandidate, 0, len(candidates))
	for _, c := range candidates {
		if seen[c.Chunk.ID] {
			continue
		}
		seen[c.Chunk.ID] = true
		out = append(out, c)
	}
	return out
}

// orderForReading groups candidates by document and restores reading
// order within each group, even though retrieval ranking may have
// interleaved documents. Groups are emitted best-first: the group
// holding the single most relevant chunk comes first.
func orderForReading(candidates []domain.RetrievalCandidate) []domain.RetrievalCandidate {
	groups := make(map[string][]domain.RetrievalCandidate)
	best := make(map[string]float64)
	var docOrder []string

	for _, c := range candidates {
		docID := c.Chunk.DocumentID
		if _, ok := groups[docID]; !ok {
			docOrder = append(docOrder, docID)
			best[docID] = c.FinalScore()
		}
		groups[docID] = append(groups[docID], c)
		if score := c.FinalScore(); score > best[docID] {
			best[docID] = score
		}
	}

	sort.SliceStable(docOrder, func(i, j int) bool {
		return best[docOrder[i]] > best[docOrder[j]]
	})

	out := make([]domain.RetrievalCandidate, 0, len(candidates))
	for _, docID := range docOrder {
		group := groups[docID]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Chunk.Index < group[j].Chunk.Index
		})
		out = append(out, group...)
	}
	return out
}

// excerpt returns a rune-safe bounded preview of content.
func excerpt(content string, limit int) string {
	content = strings.TrimSpace(content)
	if len(content) <= limit {
		return content
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + "..."
}
