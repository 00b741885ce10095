// Package inmemory provides a process-local VectorStore backed by a
// linear scan. It is useful for tests and small offline corpora; it does
// not persist across restarts.
package inmemory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/lookatitude/beluga-ai/config"
	"github.com/lookatitude/beluga-ai/rag/vectorstore"
	"github.com/lookatitude/beluga-ai/schema"
)

func init() {
	vectorstore.Register("inmemory", func(_ config.ProviderConfig) (vectorstore.VectorStore, error) {
		return New(), nil
	})
}

type entry struct {
	doc       schema.Document
	embedding []float32
}

// Store is an in-memory VectorStore.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New constructs an empty in-memory Store.
func New() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Add implements vectorstore.VectorStore.
func (s *Store) Add(_ context.Context, docs []schema.Document, embeddings [][]float32) error {
	if len(docs) != len(embeddings) {
		return fmt.Errorf("inmemory vectorstore: docs length %d does not match embeddings length %d", len(docs), len(embeddings))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, doc := range docs {
		s.entries[doc.ID] = entry{doc: doc, embedding: embeddings[i]}
	}
	return nil
}

// Search implements vectorstore.VectorStore.
func (s *Store) Search(_ context.Context, query []float32, k int, opts ...vectorstore.SearchOption) ([]schema.Document, error) {
	cfg := vectorstore.ApplySearchOptions(opts...)

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]schema.Document, 0, len(s.entries))
	for _, e := range s.entries {
		if !matchesFilter(e.doc, cfg.Filter) {
			continue
		}

		var score float64
		switch cfg.Strategy {
		case vectorstore.DotProduct:
			score = dotProduct(query, e.embedding)
		case vectorstore.Euclidean:
			score = -euclideanDistance(query, e.embedding)
		default:
			score = cosineSimilarity(query, e.embedding)
		}

		if cfg.Threshold > 0 && score < cfg.Threshold {
			continue
		}

		doc := e.doc
		doc.Score = score
		results = append(results, doc)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Delete implements vectorstore.VectorStore.
func (s *Store) Delete(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.entries, id)
	}
	return nil
}

func matchesFilter(doc schema.Document, filter map[string]any) bool {
	if len(filter) == 0 {
		return true
	}
	if doc.Metadata == nil {
		return false
	}
	for k, v := range filter {
		if doc.Metadata[k] != v {
			return false
		}
	}
	return true
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func dotProduct(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func euclideanDistance(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
