// Package qdrant implements the vectorstore.VectorStore capability against
// a Qdrant server's REST API. The pack carries no Go SDK binding for
// Qdrant, so this adapter speaks the API directly over net/http, the same
// way the pack's other non-SDK REST providers are built.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lookatitude/beluga-ai/config"
	"github.com/lookatitude/beluga-ai/rag/vectorstore"
	"github.com/lookatitude/beluga-ai/schema"
)

const (
	defaultCollection = "documents"
	defaultDimension  = 1536
)

func init() {
	vectorstore.Register("qdrant", func(cfg config.ProviderConfig) (vectorstore.VectorStore, error) {
		return NewFromConfig(cfg)
	})
}

// Store calls a Qdrant server's HTTP API.
type Store struct {
	baseURL    string
	collection string
	dimension  int
	apiKey     string
	httpClient *http.Client
}

// Option configures a Store.
type Option func(*Store)

// WithCollection overrides the default collection name "documents".
func WithCollection(name string) Option {
	return func(s *Store) { s.collection = name }
}

// WithDimension overrides the default vector dimension of 1536.
func WithDimension(dim int) Option {
	return func(s *Store) { s.dimension = dim }
}

// WithHTTPClient overrides the default *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Store) { s.httpClient = client }
}

// WithAPIKey sets the "api-key" header sent with every request.
func WithAPIKey(key string) Option {
	return func(s *Store) { s.apiKey = key }
}

// New constructs a Qdrant Store pointed at baseURL.
func New(baseURL string, opts ...Option) *Store {
	s := &Store{
		baseURL:    baseURL,
		collection: defaultCollection,
		dimension:  defaultDimension,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig constructs a Qdrant Store from a ProviderConfig. BaseURL is
// required; Options["collection"] and Options["dimension"] override the
// defaults.
func NewFromConfig(cfg config.ProviderConfig) (*Store, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("qdrant: base_url is required")
	}

	opts := []Option{}
	if collection, ok := config.GetOption[string](cfg, "collection"); ok && collection != "" {
		opts = append(opts, WithCollection(collection))
	}
	if dim, ok := config.GetOption[float64](cfg, "dimension"); ok && dim > 0 {
		opts = append(opts, WithDimension(int(dim)))
	}
	if cfg.APIKey != "" {
		opts = append(opts, WithAPIKey(cfg.APIKey))
	}

	return New(cfg.BaseURL, opts...), nil
}

func (s *Store) doRequest(ctx context.Context, method, path string, body any) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("qdrant: encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("qdrant: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("qdrant: request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("qdrant: read response: %w", err)
	}
	return raw, resp.StatusCode, nil
}

// EnsureCollection creates the store's collection if it does not already
// exist, sized for cosine similarity over s.dimension.
func (s *Store) EnsureCollection(ctx context.Context) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     s.dimension,
			"distance": "Cosine",
		},
	}
	_, status, err := s.doRequest(ctx, http.MethodPut, "/collections/"+s.collection, body)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("qdrant: ensure collection: unexpected status %d", status)
	}
	return nil
}

// Add implements vectorstore.VectorStore.
func (s *Store) Add(ctx context.Context, docs []schema.Document, embeddings [][]float32) error {
	if len(docs) != len(embeddings) {
		return fmt.Errorf("qdrant vectorstore: docs length %d does not match embeddings length %d", len(docs), len(embeddings))
	}

	points := make([]map[string]any, len(docs))
	for i, doc := range docs {
		payload := map[string]any{"content": doc.Content}
		for k, v := range doc.Metadata {
			payload[k] = v
		}
		points[i] = map[string]any{
			"id":      doc.ID,
			"vector":  embeddings[i],
			"payload": payload,
		}
	}

	body := map[string]any{"points": points}
	raw, status, err := s.doRequest(ctx, http.MethodPut, "/collections/"+s.collection+"/points", body)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("qdrant: add: unexpected status %d: %s", status, string(raw))
	}
	return nil
}

type qdrantFilterCondition struct {
	Key   string `json:"key"`
	Match struct {
		Value any `json:"value"`
	} `json:"match"`
}

// Search implements vectorstore.VectorStore.
func (s *Store) Search(ctx context.Context, query []float32, k int, opts ...vectorstore.SearchOption) ([]schema.Document, error) {
	cfg := vectorstore.ApplySearchOptions(opts...)

	body := map[string]any{
		"vector":       query,
		"limit":        k,
		"with_payload": true,
	}
	if len(cfg.Filter) > 0 {
		must := make([]qdrantFilterCondition, 0, len(cfg.Filter))
		for key, val := range cfg.Filter {
			cond := qdrantFilterCondition{Key: key}
			cond.Match.Value = val
			must = append(must, cond)
		}
		body["filter"] = map[string]any{"must": must}
	}
	if cfg.Threshold > 0 {
		body["score_threshold"] = cfg.Threshold
	}

	raw, status, err := s.doRequest(ctx, http.MethodPost, "/collections/"+s.collection+"/points/search", body)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("qdrant: search: unexpected status %d: %s", status, string(raw))
	}

	var parsed struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("qdrant: search: unmarshal response: %w", err)
	}

	docs := make([]schema.Document, len(parsed.Result))
	for i, r := range parsed.Result {
		content, _ := r.Payload["content"].(string)
		metadata := make(map[string]any, len(r.Payload))
		for k, v := range r.Payload {
			if k == "content" {
				continue
			}
			metadata[k] = v
		}
		docs[i] = schema.Document{
			ID:       fmt.Sprintf("%v", r.ID),
			Content:  content,
			Metadata: metadata,
			Score:    r.Score,
		}
	}
	return docs, nil
}

// Delete implements vectorstore.VectorStore.
func (s *Store) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	points := make([]string, len(ids))
	copy(points, ids)
	body := map[string]any{"points": points}

	raw, status, err := s.doRequest(ctx, http.MethodPost, "/collections/"+s.collection+"/points/delete", body)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("qdrant: delete: unexpected status %d: %s", status, string(raw))
	}
	return nil
}
