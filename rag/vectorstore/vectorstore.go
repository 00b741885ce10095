// Package vectorstore defines the VectorStore capability: persisting
// embedded documents and searching them by vector similarity. Concrete
// providers live under rag/vectorstore/providers and self-register via
// blank import.
package vectorstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lookatitude/beluga-ai/config"
	"github.com/lookatitude/beluga-ai/schema"
)

// VectorStore persists documents alongside their embeddings and retrieves
// the nearest neighbors of a query vector.
type VectorStore interface {
	Add(ctx context.Context, docs []schema.Document, embeddings [][]float32) error
	Search(ctx context.Context, query []float32, k int, opts ...SearchOption) ([]schema.Document, error)
	Delete(ctx context.Context, ids []string) error
}

// SearchStrategy selects the similarity metric used by Search.
type SearchStrategy int

const (
	// Cosine ranks by cosine similarity (the default).
	Cosine SearchStrategy = iota
	// DotProduct ranks by raw dot product.
	DotProduct
	// Euclidean ranks by negative Euclidean distance (closer is higher).
	Euclidean
)

// String implements fmt.Stringer.
func (s SearchStrategy) String() string {
	switch s {
	case Cosine:
		return "cosine"
	case DotProduct:
		return "dot_product"
	case Euclidean:
		return "euclidean"
	default:
		return "unknown"
	}
}

// SearchConfig holds the options applied to a single Search call.
type SearchConfig struct {
	Filter    map[string]any
	Threshold float64
	Strategy  SearchStrategy
}

// SearchOption mutates a SearchConfig.
type SearchOption func(*SearchConfig)

// WithFilter restricts results to documents whose metadata matches filter
// exactly on every key.
func WithFilter(filter map[string]any) SearchOption {
	return func(c *SearchConfig) { c.Filter = filter }
}

// WithThreshold drops results scoring below threshold.
func WithThreshold(threshold float64) SearchOption {
	return func(c *SearchConfig) { c.Threshold = threshold }
}

// WithStrategy selects the similarity metric.
func WithStrategy(strategy SearchStrategy) SearchOption {
	return func(c *SearchConfig) { c.Strategy = strategy }
}

// ApplySearchOptions builds a SearchConfig from a list of options.
func ApplySearchOptions(opts ...SearchOption) SearchConfig {
	var cfg SearchConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Factory constructs a VectorStore from a ProviderConfig.
type Factory func(cfg config.ProviderConfig) (VectorStore, error)

var (
	registryMu sync.Mutex
	registry   = make(map[string]Factory)
)

// Register adds (or overwrites) a named provider factory.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// New constructs a VectorStore using the factory registered under name.
func New(name string, cfg config.ProviderConfig) (VectorStore, error) {
	registryMu.Lock()
	factory, ok := registry[name]
	registryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("vectorstore: unknown provider %q", name)
	}
	return factory(cfg)
}

// List returns the names of all registered providers, sorted.
func List() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
