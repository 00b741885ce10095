// Package sparse implements legalrag.SparseEmbeddingProvider with an
// in-process BM25-style term-frequency/inverse-document-frequency sparse
// embedder. No sparse-embedding SDK exists in the example pack, and the
// computation is simple enough bag-of-words statistics that adding a
// dependency has no precedent in the corpus; see DESIGN.md.
package sparse

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/lookatitude/beluga-ai/legalrag"
)

// vocabSpace bounds the term->index hash space. Collisions are accepted as
// an acceptable approximation for a lexical signal that only needs to be
// internally consistent, not globally unique.
const vocabSpace = 1 << 20

// BM25Embedder produces sparse vectors whose weight per term is the
// standard Okapi BM25 term-saturation formula, using document-frequency
// statistics accumulated by Index.
type BM25Embedder struct {
	mu        sync.RWMutex
	k1        float64
	b         float64
	docFreq   map[string]int
	docCount  int
	totalLen  int
}

// Option configures a BM25Embedder.
type Option func(*BM25Embedder)

// WithK1 overrides the term-frequency saturation parameter (default 1.5).
func WithK1(k1 float64) Option { return func(e *BM25Embedder) { e.k1 = k1 } }

// WithB overrides the length-normalization parameter (default 0.75).
func WithB(b float64) Option { return func(e *BM25Embedder) { e.b = b } }

// NewBM25Embedder constructs a BM25Embedder with an empty corpus. Call Index
// to accumulate document-frequency statistics before embedding for
// meaningful IDF weights; Embed still produces a usable term-frequency-only
// vector against an unindexed corpus.
func NewBM25Embedder(opts ...Option) *BM25Embedder {
	e := &BM25Embedder{k1: 1.5, b: 0.75, docFreq: make(map[string]int)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Index accumulates document-frequency and average-length statistics from a
// corpus of documents so subsequent Embed calls produce IDF-weighted
// vectors. It is safe to call repeatedly as new documents become available.
func (e *BM25Embedder) Index(_ context.Context, texts []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, text := range texts {
		terms := tokenize(text)
		e.docCount++
		e.totalLen += len(terms)
		for term := range uniqueSet(terms) {
			e.docFreq[term]++
		}
	}
	return nil
}

// Embed implements legalrag.SparseEmbeddingProvider.
func (e *BM25Embedder) Embed(_ context.Context, text string) (legalrag.SparseVector, error) {
	terms := tokenize(text)
	if len(terms) == 0 {
		return legalrag.SparseVector{}, nil
	}

	tf := make(map[string]int, len(terms))
	for _, t := range terms {
		tf[t]++
	}

	e.mu.RLock()
	docCount := e.docCount
	avgLen := e.averageLength()
	e.mu.RUnlock()

	docLen := float64(len(terms))
	indices := make([]int, 0, len(tf))
	values := make([]float64, 0, len(tf))
	for term, freq := range tf {
		idf := e.idf(term, docCount)
		num := float64(freq) * (e.k1 + 1)
		den := float64(freq) + e.k1*(1-e.b+e.b*docLen/avgLen)
		weight := idf * (num / den)
		indices = append(indices, termIndex(term))
		values = append(values, weight)
	}
	return legalrag.SparseVector{Indices: indices, Values: values}, nil
}

// EmbedBatch implements legalrag.SparseEmbeddingProvider.
func (e *BM25Embedder) EmbedBatch(ctx context.Context, texts []string) ([]legalrag.SparseVector, error) {
	out := make([]legalrag.SparseVector, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *BM25Embedder) averageLength() float64 {
	if e.docCount == 0 {
		return 1
	}
	return float64(e.totalLen) / float64(e.docCount)
}

// idf returns the smoothed inverse document frequency for term. An
// unindexed corpus (docCount == 0) falls back to a flat weight of 1 so
// Embed remains usable before Index has been called.
func (e *BM25Embedder) idf(term string, docCount int) float64 {
	if docCount == 0 {
		return 1
	}
	e.mu.RLock()
	df := e.docFreq[term]
	e.mu.RUnlock()
	return logBase(float64(docCount-df)+0.5, float64(df)+0.5)
}

func logBase(num, den float64) float64 {
	if den <= 0 {
		den = 0.5
	}
	ratio := num / den
	if ratio <= 0 {
		ratio = 1e-9
	}
	return math.Log(ratio + 1)
}

func termIndex(term string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(term))
	return int(h.Sum32() % vocabSpace)
}

func tokenize(text string) []string {
	var terms []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			terms = append(terms, strings.ToLower(current.String()))
			current.Reset()
		}
	}
	for _, r := range text {
		switch {
		case unicode.IsSpace(r) || unicode.IsPunct(r):
			flush()
		case isCJK(r):
			flush()
			terms = append(terms, strings.ToLower(string(r)))
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return terms
}

func isCJK(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF) || (r >= 0x4E00 && r <= 0x9FFF)
}

func uniqueSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}
