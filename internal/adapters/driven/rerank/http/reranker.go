// Package http provides a cross-encoder re-ranker adapter speaking the
// text-embeddings-inference rerank API.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Reranker implements the interface.
var _ driven.Reranker = (*Reranker)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultModel   = "BAAI/bge-reranker-base"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the rerank service.
type Config struct {
	// BaseURL is the rerank API base URL (default: http://localhost:8080).
	BaseURL string

	// Model is the model identifier, for logging only; the server
	// decides which model it serves.
	Model string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Reranker scores (query, passage) pairs against an HTTP rerank
// service.
type Reranker struct {
	client  *http.Client
	baseURL string
	model   string
}

// rerankRequest is the API request format.
type rerankRequest struct {
	Query string   `json:"query"`
	Texts []string `json:"texts"`
}

// rerankResult is one entry of the API response. Index refers back to
// the position in the request texts.
type rerankResult struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// NewReranker creates a new HTTP rerank adapter.
func NewReranker(cfg Config) *Reranker {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Reranker{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
	}
}

// Rerank scores the candidates against the query. The response carries
// one score per candidate, mapped back by request position.
func (r *Reranker) Rerank(
	ctx context.Context, query string, candidates []driven.RerankCandidate,
) ([]driven.RerankResult, error) {
	if len(candidates) == 0 {
		return []driven.RerankResult{}, nil
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Content
	}

	jsonBody, err := json.Marshal(rerankRequest{Query: query, Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		r.baseURL+"/rerank",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("rerank error (status %d): failed to read response", resp.StatusCode)
		}
		return nil, fmt.Errorf("rerank error (status %d): %s", resp.StatusCode, string(body))
	}

	var scored []rerankResult
	if err := json.NewDecoder(resp.Body).Decode(&scored); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]driven.RerankResult, 0, len(scored))
	for _, s := range scored {
		if s.Index < 0 || s.Index >= len(candidates) {
			return nil, fmt.Errorf("rerank: result index %d out of range for %d candidates", s.Index, len(candidates))
		}
		results = append(results, driven.RerankResult{
			ChunkID: candidates[s.Index].ChunkID,
			Score:   s.Score,
		})
	}

	return results, nil
}

// ModelName returns the model identifier for logging.
func (r *Reranker) ModelName() string {
	return r.model
}

// Ping validates the service is reachable via its health endpoint.
func (r *Reranker) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("rerank: failed to create ping request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("rerank: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rerank: API returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources.
func (r *Reranker) Close() error {
	return nil
}
