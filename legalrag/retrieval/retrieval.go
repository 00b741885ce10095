// Package retrieval implements the Vector Retriever: dense or dense+sparse
// hybrid search across every search text in a plan, merging results by
// keeping the highest score per chunk.
package retrieval

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/lookatitude/beluga-ai/legalrag"
	"github.com/lookatitude/beluga-ai/legalrag/candidate"
	"github.com/lookatitude/beluga-ai/rag/embedding"
	"github.com/lookatitude/beluga-ai/rag/vectorstore"
	"github.com/lookatitude/beluga-ai/schema"
)

// maxConcurrentExpansions bounds per-expansion-query fan-out.
const maxConcurrentExpansions = 3

// Retriever performs dense-only or dense+sparse hybrid vector search across
// a plan's search texts, fanning out per expansion and merging by max score.
type Retriever struct {
	embedder embedding.Embedder
	dense    vectorstore.VectorStore
	hybrid   legalrag.HybridVectorStore
	sparse   legalrag.SparseEmbeddingProvider
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithHybrid enables hybrid search: hybridStore performs the fused
// dense+sparse query, and sparseEmbedder produces the sparse side of it.
func WithHybrid(hybridStore legalrag.HybridVectorStore, sparseEmbedder legalrag.SparseEmbeddingProvider) Option {
	return func(r *Retriever) {
		r.hybrid = hybridStore
		r.sparse = sparseEmbedder
	}
}

// New constructs a Retriever over a dense embedder and vector store.
func New(embedder embedding.Embedder, dense vectorstore.VectorStore, opts ...Option) *Retriever {
	r := &Retriever{embedder: embedder, dense: dense}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// UsesHybrid reports whether a hybrid store and sparse embedder are both
// configured.
func (r *Retriever) UsesHybrid() bool {
	return r.hybrid != nil && r.sparse != nil
}

// Retrieve runs search for every text in searchTexts, dense-only unless
// useHybrid is requested and a hybrid store is configured, and merges
// results across expansions keeping the highest score per chunk_id. The
// dense embedding call batches all search texts in one request; when hybrid
// search is active, the sparse embedding call does too, per the embedding
// contract: 1 (dense) + 0 or 1 (sparse) calls regardless of expansion size.
func (r *Retriever) Retrieve(ctx context.Context, searchTexts []string, topK int, filters map[string]any, useHybrid bool) ([]candidate.Candidate, error) {
	if len(searchTexts) == 0 {
		return nil, nil
	}

	denseVecs, err := r.embedder.Embed(ctx, searchTexts)
	if err != nil {
		return nil, err
	}

	hybridActive := useHybrid && r.UsesHybrid()
	var sparseVecs []legalrag.SparseVector
	if hybridActive {
		sparseVecs, err = r.sparse.EmbedBatch(ctx, searchTexts)
		if err != nil {
			hybridActive = false
		}
	}

	resultSets := make([][]schema.Document, len(searchTexts))
	sem := semaphore.NewWeighted(maxConcurrentExpansions)
	g, gctx := errgroup.WithContext(ctx)

	for i := range searchTexts {
		i := i
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			var docs []schema.Document
			var searchErr error
			if hybridActive {
				docs, searchErr = r.hybrid.HybridSearch(gctx, denseVecs[i], sparseVecs[i], topK, filters)
			} else {
				docs, searchErr = r.dense.Search(gctx, denseVecs[i], topK, vectorstore.WithFilter(filters))
			}
			if searchErr != nil {
				// A single expansion failing contributes nothing; the
				// others still proceed (fan-out error isolation).
				return nil
			}
			resultSets[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	anySucceeded := false
	for _, set := range resultSets {
		if set != nil {
			anySucceeded = true
			break
		}
	}
	if !anySucceeded {
		return nil, nil
	}

	return mergeByMaxScore(resultSets, hybridActive), nil
}

// mergeByMaxScore collapses result sets across expansions, keeping the
// candidate with the highest score per chunk_id.
func mergeByMaxScore(sets [][]schema.Document, hybrid bool) []candidate.Candidate {
	best := make(map[string]candidate.Candidate)
	order := make([]string, 0)
	source := candidate.SourceVector
	if hybrid {
		source = candidate.SourceHybrid
	}

	for _, set := range sets {
		for _, doc := range set {
			c := candidate.FromDocument(doc, source)
			c.OriginalScore = c.Score
			existing, seen := best[c.ChunkID]
			if !seen {
				best[c.ChunkID] = c
				order = append(order, c.ChunkID)
				continue
			}
			if c.Score > existing.Score {
				best[c.ChunkID] = c
			}
		}
	}

	result := make([]candidate.Candidate, 0, len(order))
	for _, id := range order {
		result = append(result, best[id])
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Score > result[j].Score })
	return result
}
