package embedding

import "context"

// Hooks observe an Embedder's calls without altering its behavior.
type Hooks struct {
	BeforeEmbed func(ctx context.Context, texts []string) error
	AfterEmbed  func(ctx context.Context, embeddings [][]float32, err error)
}

// ComposeHooks runs BeforeEmbed in order, aborting on the first error, and
// runs AfterEmbed in order.
func ComposeHooks(hooks ...Hooks) Hooks {
	return Hooks{
		BeforeEmbed: func(ctx context.Context, texts []string) error {
			for _, h := range hooks {
				if h.BeforeEmbed == nil {
					continue
				}
				if err := h.BeforeEmbed(ctx, texts); err != nil {
					return err
				}
			}
			return nil
		},
		AfterEmbed: func(ctx context.Context, embeddings [][]float32, err error) {
			for _, h := range hooks {
				if h.AfterEmbed != nil {
					h.AfterEmbed(ctx, embeddings, err)
				}
			}
		},
	}
}
