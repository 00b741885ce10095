package rerank

import (
	"context"
	"math"
	"sort"

	"github.com/lookatitude/beluga-ai/legalrag"
	"github.com/lookatitude/beluga-ai/legalrag/candidate"
)

// Reranker rescores a filtered candidate list with a legalrag.CrossEncoder
// that consumes (query, passage) pairs jointly.
type Reranker struct {
	encoder legalrag.CrossEncoder
}

// New constructs a Reranker over encoder.
func New(encoder legalrag.CrossEncoder) *Reranker {
	return &Reranker{encoder: encoder}
}

// Rerank scores candidates against query, normalizes rerank scores so the
// top result is exactly 1.0, and returns the top_k ordered by descending
// rerank score. Candidates with empty text are excluded from scoring and
// appended unchanged at the tail, below every rescored entry, before the
// top_k truncation.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []candidate.Candidate, topK int) ([]candidate.Candidate, error) {
	var scoreable []candidate.Candidate
	var empty []candidate.Candidate
	var passages []string

	for _, c := range candidates {
		text := c.Payload.DisplayText()
		if text == "" {
			empty = append(empty, c)
			continue
		}
		scoreable = append(scoreable, c)
		passages = append(passages, text)
	}

	var rescored []candidate.Candidate
	if len(scoreable) > 0 {
		rawScores, err := r.encoder.Score(ctx, query, passages)
		if err != nil {
			return nil, err
		}

		normalized := make([]float64, len(rawScores))
		maxScore := 0.0
		for i, raw := range rawScores {
			normalized[i] = sigmoid(raw)
			if normalized[i] > maxScore {
				maxScore = normalized[i]
			}
		}
		if maxScore == 0 {
			maxScore = 1
		}

		rescored = make([]candidate.Candidate, len(scoreable))
		for i, c := range scoreable {
			c.OriginalScore = c.Score
			c.RerankScore = normalized[i]
			c.Score = normalized[i] / maxScore
			c.Source = candidate.SourceRerank
			rescored[i] = c
		}
		sort.SliceStable(rescored, func(i, j int) bool { return rescored[i].RerankScore > rescored[j].RerankScore })
	}

	out := append(rescored, empty...)
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
