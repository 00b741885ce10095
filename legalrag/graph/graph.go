// Package graph implements the Graph Retriever: entity-anchored lookups
// against a knowledge graph of Laws, Chapters, Articles, and Paragraphs,
// plus a Neo4j-backed legalrag.GraphStore adapter.
package graph

import (
	"context"

	"github.com/lookatitude/beluga-ai/legalrag"
	"github.com/lookatitude/beluga-ai/o11y"
)

// maxTraversalDepth bounds FindRelated's REFERENCES traversal; the graph may
// contain reference cycles but traversal is always depth-limited.
const maxTraversalDepth = 2

// keywordRelevance is the fixed relevance assigned to KeywordSearch hits.
const keywordRelevance = 0.8

// Retriever wraps a legalrag.GraphStore with the Graph Retriever's failure
// semantics: any individual query failure is logged and degrades to an
// empty result rather than propagating, since the graph retriever is never
// fatal to the pipeline.
type Retriever struct {
	store legalrag.GraphStore
}

// New constructs a Retriever over store. A nil store is valid: every
// operation degrades to an empty result, equivalent to running with
// use_graph=false.
func New(store legalrag.GraphStore) *Retriever {
	return &Retriever{store: store}
}

// Available reports whether a backing GraphStore was configured.
func (r *Retriever) Available() bool {
	return r.store != nil
}

// FindArticle looks up a single article by law-title substring and exact
// article number. A store error or unavailable store returns nil.
func (r *Retriever) FindArticle(ctx context.Context, lawTitleSubstring, articleNum string) *legalrag.GraphResult {
	if r.store == nil {
		return nil
	}
	result, err := r.store.FindArticle(ctx, lawTitleSubstring, articleNum)
	if err != nil {
		o11y.FromContext(ctx).Warn(ctx, "graph find_article failed", "error", err, "law", lawTitleSubstring, "article", articleNum)
		return nil
	}
	return result
}

// FindRelated traverses REFERENCES edges from (lawID, articleNum) up to
// depth (capped at maxTraversalDepth), ordered by ascending distance. A
// store error or unavailable store returns an empty slice.
func (r *Retriever) FindRelated(ctx context.Context, lawID, articleNum string, depth, limit int) []legalrag.GraphResult {
	if r.store == nil {
		return nil
	}
	if depth > maxTraversalDepth {
		depth = maxTraversalDepth
	}
	results, err := r.store.FindRelated(ctx, lawID, articleNum, depth, limit)
	if err != nil {
		o11y.FromContext(ctx).Warn(ctx, "graph find_related failed", "error", err, "law_id", lawID, "article", articleNum)
		return nil
	}
	return results
}

// KeywordSearch substring-matches article and law titles/captions. A store
// error or unavailable store returns an empty slice.
func (r *Retriever) KeywordSearch(ctx context.Context, keyword string, limit int) []legalrag.GraphResult {
	if r.store == nil {
		return nil
	}
	results, err := r.store.KeywordSearch(ctx, keyword, limit)
	if err != nil {
		o11y.FromContext(ctx).Warn(ctx, "graph keyword_search failed", "error", err, "keyword", keyword)
		return nil
	}
	return results
}
