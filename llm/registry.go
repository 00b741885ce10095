package llm

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lookatitude/beluga-ai/config"
)

// Factory constructs a ChatModel from a ProviderConfig. Providers register a
// Factory via Register in their package init().
type Factory func(cfg config.ProviderConfig) (ChatModel, error)

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

// New constructs a ChatModel using the factory registered under name.
func New(name string, cfg config.ProviderConfig) (ChatModel, error) {
	registryMu.Lock()
	factory, ok := registry[name]
	registryMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("llm: unknown provider %q", name)
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
