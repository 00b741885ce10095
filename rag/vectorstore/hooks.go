package vectorstore

import (
	"context"

	"github.com/lookatitude/beluga-ai/schema"
)

// Hooks observe a VectorStore's calls without altering its behavior.
type Hooks struct {
	BeforeAdd    func(ctx context.Context, docs []schema.Document) error
	AfterSearch  func(ctx context.Context, results []schema.Document, err error)
	BeforeDelete func(ctx context.Context, ids []string) error
}

// ComposeHooks runs Before* hooks in order, aborting on the first error, and
// runs After* hooks in order.
func ComposeHooks(hooks ...Hooks) Hooks {
	return Hooks{
		BeforeAdd: func(ctx context.Context, docs []schema.Document) error {
			for _, h := range hooks {
				if h.BeforeAdd == nil {
					continue
				}
				if err := h.BeforeAdd(ctx, docs); err != nil {
					return err
				}
			}
			return nil
		},
		AfterSearch: func(ctx context.Context, results []schema.Document, err error) {
			for _, h := range hooks {
				if h.AfterSearch != nil {
					h.AfterSearch(ctx, results, err)
				}
			}
		},
		BeforeDelete: func(ctx context.Context, ids []string) error {
			for _, h := range hooks {
				if h.BeforeDelete == nil {
					continue
				}
				if err := h.BeforeDelete(ctx, ids); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
