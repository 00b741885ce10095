// Package fusion implements Fusion & Filter: collapsing graph and vector
// candidates into a single ordered list, keyed by chunk identity, with a
// minimum-score filter and a top-3 fallback.
package fusion

import (
	"sort"

	"github.com/lookatitude/beluga-ai/legalrag"
	"github.com/lookatitude/beluga-ai/legalrag/candidate"
)

// fallbackSize is how many of the unfiltered sorted candidates are kept
// when the threshold filter would otherwise leave nothing.
const fallbackSize = 3

// PromoteGraphResults converts GraphResults into Candidates with
// score = relevance * graphWeight and source "graph".
func PromoteGraphResults(results []legalrag.GraphResult, graphWeight float64) []candidate.Candidate {
	out := make([]candidate.Candidate, 0, len(results))
	for _, g := range results {
		out = append(out, candidate.Candidate{
			ChunkID:       g.ChunkID,
			Score:         g.Relevance * graphWeight,
			OriginalScore: g.Relevance,
			Source:        candidate.SourceGraph,
			Payload: candidate.Payload{
				LawID:          g.LawID,
				LawTitle:       g.LawTitle,
				ArticleTitle:   g.ArticleTitle,
				ArticleCaption: g.ArticleCaption,
				HighlightPath:  g.HighlightPath,
			},
		})
	}
	return out
}

// Merge collapses graphCandidates and vectorCandidates into a single map
// keyed by chunk_id, keeping the max-scoring entry per key, then sorts the
// result descending by score (ties broken lexicographically by chunk_id for
// reproducibility).
func Merge(graphCandidates, vectorCandidates []candidate.Candidate) []candidate.Candidate {
	merged := make(map[string]candidate.Candidate, len(graphCandidates)+len(vectorCandidates))
	order := make([]string, 0, len(graphCandidates)+len(vectorCandidates))

	upsert := func(c candidate.Candidate) {
		existing, seen := merged[c.ChunkID]
		if !seen {
			merged[c.ChunkID] = c
			order = append(order, c.ChunkID)
			return
		}
		if c.Score > existing.Score {
			merged[c.ChunkID] = c
		}
	}

	for _, c := range graphCandidates {
		upsert(c)
	}
	for _, c := range vectorCandidates {
		upsert(c)
	}

	result := make([]candidate.Candidate, 0, len(order))
	for _, id := range order {
		result = append(result, merged[id])
	}
	sortByScoreThenID(result)
	return result
}

// Filter keeps candidates scoring at or above minScoreThreshold. If that
// leaves nothing, it falls back to the top fallbackSize entries of the
// unfiltered (already sorted) input.
func Filter(sorted []candidate.Candidate, minScoreThreshold float64) []candidate.Candidate {
	kept := make([]candidate.Candidate, 0, len(sorted))
	for _, c := range sorted {
		if c.Score >= minScoreThreshold {
			kept = append(kept, c)
		}
	}
	if len(kept) > 0 {
		return kept
	}
	if len(sorted) > fallbackSize {
		return sorted[:fallbackSize]
	}
	return sorted
}

func sortByScoreThenID(candidates []candidate.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ChunkID < candidates[j].ChunkID
	})
}
