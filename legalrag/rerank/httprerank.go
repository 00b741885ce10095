// Package rerank implements the Reranker: an HTTP adapter speaking a
// generic {query, passages} -> {scores} contract to a cross-encoder
// service, plus a candidate-level wrapper applying the rerank score
// normalization and empty-text passthrough rules.
package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lookatitude/beluga-ai/legalrag"
)

// HTTPCrossEncoder implements legalrag.CrossEncoder against any service
// speaking a {query, passages} -> {scores} JSON contract — the same shape
// BAAI/bge-reranker, Cohere Rerank, and ms-marco cross-encoder servers can
// all be made to expose behind a thin shim, so this adapter is
// server-agnostic.
type HTTPCrossEncoder struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures an HTTPCrossEncoder.
type Option func(*HTTPCrossEncoder)

// WithHTTPClient overrides the default *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(e *HTTPCrossEncoder) { e.httpClient = client }
}

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(e *HTTPCrossEncoder) { e.apiKey = key }
}

// New constructs an HTTPCrossEncoder pointed at baseURL.
func New(baseURL string, opts ...Option) *HTTPCrossEncoder {
	e := &HTTPCrossEncoder{baseURL: baseURL, httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type scoreRequest struct {
	Query    string   `json:"query"`
	Passages []string `json:"passages"`
}

type scoreResponse struct {
	Scores []float64 `json:"scores"`
}

// Score implements legalrag.CrossEncoder.
func (e *HTTPCrossEncoder) Score(ctx context.Context, query string, passages []string) ([]float64, error) {
	if len(passages) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(scoreRequest{Query: query, Passages: passages})
	if err != nil {
		return nil, fmt.Errorf("rerank: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/score", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("rerank: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rerank: request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rerank: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("rerank: unexpected status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed scoreResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("rerank: unmarshal response: %w", err)
	}
	if len(parsed.Scores) != len(passages) {
		return nil, fmt.Errorf("rerank: got %d scores for %d passages", len(parsed.Scores), len(passages))
	}
	return parsed.Scores, nil
}

var _ legalrag.CrossEncoder = (*HTTPCrossEncoder)(nil)
