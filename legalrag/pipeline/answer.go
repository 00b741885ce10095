package pipeline

import (
	"github.com/lookatitude/beluga-ai/core"
	"github.com/lookatitude/beluga-ai/legalrag"
	"github.com/lookatitude/beluga-ai/legalrag/candidate"
)

// sourceTextDisplayCap bounds the source text surfaced on an Answer.
const sourceTextDisplayCap = 500

// Source is a single cited passage on the returned Answer.
type Source struct {
	ChunkID       string
	LawTitle      string
	Article       string
	Text          string
	Score         float64
	HighlightPath string
	Metadata      map[string]any
}

// Answer is the pipeline's single response contract: the generated text,
// its ordered supporting sources, the original query, and elapsed time.
type Answer struct {
	AnswerText string
	Sources    []Source
	Query      string
	ElapsedMs  int64
}

func sourcesFromCandidates(candidates []candidate.Candidate) []Source {
	sources := make([]Source, len(candidates))
	for i, c := range candidates {
		sources[i] = Source{
			ChunkID:       c.ChunkID,
			LawTitle:      c.Payload.LawTitle,
			Article:       c.Payload.ArticleTitle,
			Text:          candidate.Truncate(c.Payload.DisplayText(), sourceTextDisplayCap),
			Score:         c.Score,
			HighlightPath: c.Payload.HighlightPath,
			Metadata: map[string]any{
				"law_id":          c.Payload.LawID,
				"article_caption": c.Payload.ArticleCaption,
				"chapter_title":   c.Payload.ChapterTitle,
				"paragraph_num":   c.Payload.ParagraphNum,
				"source":          string(c.Source),
				"original_score":  c.OriginalScore,
			},
		}
	}
	return sources
}

func newInputError(msg string) error {
	return core.NewError("legalrag.pipeline.chat", legalrag.ErrCodeInputInvalid, msg, nil)
}

func newRetrievalEmptyError() error {
	return core.NewError("legalrag.pipeline.chat", legalrag.ErrCodeRetrievalEmpty, "every retriever returned nothing", nil)
}

func newCancelledError(cause error) error {
	return core.NewError("legalrag.pipeline.chat", legalrag.ErrCodeCancelled, "request cancelled", cause)
}
