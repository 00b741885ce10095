package legalrag

import (
	"context"

	"github.com/lookatitude/beluga-ai/schema"
)

// SparseVector is a bag-of-terms representation with parallel (Indices,
// Values) slices, used for lexical scoring in hybrid search.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// SparseEmbeddingProvider produces sparse (lexical) vectors for hybrid
// search. Concrete implementations live in legalrag/sparse.
type SparseEmbeddingProvider interface {
	Embed(ctx context.Context, text string) (SparseVector, error)
	EmbedBatch(ctx context.Context, texts []string) ([]SparseVector, error)
}

// GraphResult is a single hit from the knowledge graph: a law, article, or
// traversal result with enough payload to promote directly to a Candidate.
type GraphResult struct {
	LawID          string
	LawTitle       string
	ArticleNum     string
	ArticleTitle   string
	ArticleCaption string
	ChunkID        string
	Relevance      float64
	HighlightPath  string
}

// GraphStore answers entity-anchored lookups against a knowledge graph of
// Laws, Chapters, Articles, and Paragraphs. Any individual query failure is
// expected to be logged by the caller and treated as an empty result, never
// fatal. Concrete implementations live in legalrag/graph.
type GraphStore interface {
	// FindArticle matches a law by substring and an article by exact number.
	// Returns (nil, nil) when no match is found.
	FindArticle(ctx context.Context, lawTitleSubstring string, articleNum string) (*GraphResult, error)

	// FindRelated performs a variable-length traversal over REFERENCES edges
	// up to depth (capped at 2), ordered by ascending distance.
	FindRelated(ctx context.Context, lawID string, articleNum string, depth int, limit int) ([]GraphResult, error)

	// KeywordSearch substring-matches article and law titles/captions.
	KeywordSearch(ctx context.Context, keyword string, limit int) ([]GraphResult, error)
}

// HybridVectorStore performs combined dense+sparse search with server-side
// reciprocal rank fusion, returning scores normalized so the top result is
// 1.0. The concrete implementation in this repository is the qdrant
// provider's Store (rag/vectorstore/providers/qdrant); legalrag/retrieval
// consumes it.
type HybridVectorStore interface {
	HybridSearch(ctx context.Context, dense []float32, sparse SparseVector, k int, filters map[string]any) ([]schema.Document, error)
}

// Translator turns a raw query into a primary search text in the corpus
// language and, optionally, an expansion set of alternative phrasings.
// Translation and expansion failures are never fatal to the caller: the
// zero-value behavior documented by each method's implementation is a
// graceful fallback to the original text. Concrete implementations live in
// legalrag/llmtranslate.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
	GetAllSearchTexts(ctx context.Context, text string) ([]string, error)
}

// CrossEncoder scores (query, passage) pairs jointly, producing
// higher-fidelity relevance scores than independent dense retrieval.
// Concrete implementations live in legalrag/rerank.
type CrossEncoder interface {
	Score(ctx context.Context, query string, passages []string) ([]float64, error)
}
