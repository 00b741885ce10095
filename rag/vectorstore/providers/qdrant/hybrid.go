package qdrant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lookatitude/beluga-ai/legalrag"
	"github.com/lookatitude/beluga-ai/schema"
)

// denseVectorName and sparseVectorName are the named vectors a hybrid
// collection must be configured with: one dense vector plus one sparse
// vector per point, queried together via Qdrant's prefetch+fusion API.
const (
	denseVectorName  = "dense"
	sparseVectorName = "sparse"
)

// HybridSearch implements legalrag.HybridVectorStore over Qdrant's
// prefetch+fusion query API (POST /collections/{name}/points/query),
// combining a dense nearest-neighbor prefetch and a sparse nearest-neighbor
// prefetch with reciprocal rank fusion computed server-side. The fused
// scores are rescaled per response so the top result is 1.0 and the others
// keep their ratio to it. The collection must be configured with named
// vectors "dense" and "sparse" per point.
func (s *Store) HybridSearch(ctx context.Context, dense []float32, sparse legalrag.SparseVector, k int, filters map[string]any) ([]schema.Document, error) {
	body := map[string]any{
		"prefetch": []map[string]any{
			{
				"query":  dense,
				"using":  denseVectorName,
				"limit":  k,
			},
			{
				"query": map[string]any{
					"indices": sparse.Indices,
					"values":  sparse.Values,
				},
				"using": sparseVectorName,
				"limit": k,
			},
		},
		"query":        map[string]any{"fusion": "rrf"},
		"limit":        k,
		"with_payload": true,
	}
	if len(filters) > 0 {
		must := make([]qdrantFilterCondition, 0, len(filters))
		for key, val := range filters {
			cond := qdrantFilterCondition{Key: key}
			cond.Match.Value = val
			must = append(must, cond)
		}
		body["filter"] = map[string]any{"must": must}
	}

	raw, status, err := s.doRequest(ctx, http.MethodPost, "/collections/"+s.collection+"/points/query", body)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("qdrant: hybrid search: unexpected status %d: %s", status, string(raw))
	}

	var parsed struct {
		Result struct {
			Points []struct {
				ID      any            `json:"id"`
				Score   float64        `json:"score"`
				Payload map[string]any `json:"payload"`
			} `json:"points"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("qdrant: hybrid search: unmarshal response: %w", err)
	}

	var maxScore float64
	for _, r := range parsed.Result.Points {
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}

	docs := make([]schema.Document, len(parsed.Result.Points))
	for i, r := range parsed.Result.Points {
		score := r.Score
		if maxScore > 0 {
			score /= maxScore
		}
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
			Score:    score,
		}
	}
	return docs, nil
}
