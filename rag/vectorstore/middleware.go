package vectorstore

import (
	"context"

	"github.com/lookatitude/beluga-ai/schema"
)

// Middleware wraps a VectorStore to add cross-cutting behavior.
type Middleware func(next VectorStore) VectorStore

// ApplyMiddleware wraps store with mws, outside-in: the first Middleware in
// mws is the outermost wrapper and observes calls first.
func ApplyMiddleware(store VectorStore, mws ...Middleware) VectorStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}

// WithHooks returns a Middleware that invokes hooks around every call.
func WithHooks(hooks Hooks) Middleware {
	return func(next VectorStore) VectorStore {
		return &hookedStore{next: next, hooks: hooks}
	}
}

type hookedStore struct {
	next  VectorStore
	hooks Hooks
}

func (h *hookedStore) Add(ctx context.Context, docs []schema.Document, embeddings [][]float32) error {
	if h.hooks.BeforeAdd != nil {
		if err := h.hooks.BeforeAdd(ctx, docs); err != nil {
			return err
		}
	}
	return h.next.Add(ctx, docs, embeddings)
}

func (h *hookedStore) Search(ctx context.Context, query []float32, k int, opts ...SearchOption) ([]schema.Document, error) {
	results, err := h.next.Search(ctx, query, k, opts...)
	if h.hooks.AfterSearch != nil {
		h.hooks.AfterSearch(ctx, results, err)
	}
	return results, err
}

func (h *hookedStore) Delete(ctx context.Context, ids []string) error {
	if h.hooks.BeforeDelete != nil {
		if err := h.hooks.BeforeDelete(ctx, ids); err != nil {
			return err
		}
	}
	return h.next.Delete(ctx, ids)
}
