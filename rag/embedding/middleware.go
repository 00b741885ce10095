package embedding

import "context"

// Middleware wraps an Embedder to add cross-cutting behavior.
type Middleware func(next Embedder) Embedder

// ApplyMiddleware wraps emb with mws, outside-in: the first Middleware in
// mws is the outermost wrapper and observes calls first.
func ApplyMiddleware(emb Embedder, mws ...Middleware) Embedder {
	for i := len(mws) - 1; i >= 0; i-- {
		emb = mws[i](emb)
	}
	return emb
}

// WithHooks returns a Middleware that invokes hooks around every call.
func WithHooks(hooks Hooks) Middleware {
	return func(next Embedder) Embedder {
		return &hookedEmbedder{next: next, hooks: hooks}
	}
}

type hookedEmbedder struct {
	next  Embedder
	hooks Hooks
}

func (h *hookedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if h.hooks.BeforeEmbed != nil {
		if err := h.hooks.BeforeEmbed(ctx, texts); err != nil {
			if h.hooks.AfterEmbed != nil {
				h.hooks.AfterEmbed(ctx, nil, err)
			}
			return nil, err
		}
	}
	embeddings, err := h.next.Embed(ctx, texts)
	if h.hooks.AfterEmbed != nil {
		h.hooks.AfterEmbed(ctx, embeddings, err)
	}
	return embeddings, err
}

func (h *hookedEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	if h.hooks.BeforeEmbed != nil {
		if err := h.hooks.BeforeEmbed(ctx, []string{text}); err != nil {
			if h.hooks.AfterEmbed != nil {
				h.hooks.AfterEmbed(ctx, nil, err)
			}
			return nil, err
		}
	}
	vec, err := h.next.EmbedSingle(ctx, text)
	if h.hooks.AfterEmbed != nil {
		if err != nil {
			h.hooks.AfterEmbed(ctx, nil, err)
		} else {
			h.hooks.AfterEmbed(ctx, [][]float32{vec}, nil)
		}
	}
	return vec, err
}

func (h *hookedEmbedder) Dimensions() int {
	return h.next.Dimensions()
}
