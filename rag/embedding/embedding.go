// Package embedding defines the Embedder capability: turning text into
// dense vectors for similarity search. Concrete providers live under
// rag/embedding/providers and self-register via blank import.
package embedding

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lookatitude/beluga-ai/config"
)

// Embedder turns text into dense float32 vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedSingle(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// Factory constructs an Embedder from a ProviderConfig.
type Factory func(cfg config.ProviderConfig) (Embedder, error)

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

// New constructs an Embedder using the factory registered under name.
func New(name string, cfg config.ProviderConfig) (Embedder, error) {
	registryMu.Lock()
	factory, ok := registry[name]
	registryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("embedding: unknown provider %q", name)
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
