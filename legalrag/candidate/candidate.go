// Package candidate defines the Candidate value type shared by every stage
// of the legal-statute retrieval pipeline: graph lookup, vector search,
// fusion, and reranking all produce and consume Candidates.
package candidate

import "github.com/lookatitude/beluga-ai/schema"

// Source tags where a Candidate originated, preserved through fusion so
// downstream stages (and tests) can tell graph hits from vector hits.
type Source string

const (
	SourceGraph  Source = "graph"
	SourceVector Source = "vector"
	SourceHybrid Source = "hybrid"
	SourceRerank Source = "rerank"
)

// Payload carries the denormalized statute metadata a Candidate needs to be
// rendered into a citation-ready context block without a further lookup.
type Payload struct {
	LawID           string
	LawTitle        string
	ArticleTitle    string
	ArticleCaption  string
	ChapterTitle    string
	ParagraphNum    int
	Text            string
	TextWithContext string
	HighlightPath   string
}

// Candidate is a single retrievable passage with its score, source tag, and
// payload metadata, keyed by a stable chunk identifier.
type Candidate struct {
	ChunkID       string
	Score         float64
	Payload       Payload
	Source        Source
	OriginalScore float64
	RerankScore   float64
}

// FromDocument converts a schema.Document (the wire type at the
// rag/vectorstore and rag/embedding boundary) into a Candidate. The
// document's metadata map is read for the Payload fields it carries.
func FromDocument(doc schema.Document, source Source) Candidate {
	c := Candidate{
		ChunkID: doc.ID,
		Score:   doc.Score,
		Source:  source,
		Payload: Payload{
			Text: doc.Content,
		},
	}
	if doc.Metadata == nil {
		return c
	}
	if v, ok := doc.Metadata["law_id"].(string); ok {
		c.Payload.LawID = v
	}
	if v, ok := doc.Metadata["law_title"].(string); ok {
		c.Payload.LawTitle = v
	}
	if v, ok := doc.Metadata["article_title"].(string); ok {
		c.Payload.ArticleTitle = v
	}
	if v, ok := doc.Metadata["article_caption"].(string); ok {
		c.Payload.ArticleCaption = v
	}
	if v, ok := doc.Metadata["chapter_title"].(string); ok {
		c.Payload.ChapterTitle = v
	}
	if v, ok := doc.Metadata["paragraph_num"].(int); ok {
		c.Payload.ParagraphNum = v
	}
	if v, ok := doc.Metadata["text_with_context"].(string); ok {
		c.Payload.TextWithContext = v
	}
	if v, ok := doc.Metadata["highlight_path"].(string); ok {
		c.Payload.HighlightPath = v
	}
	return c
}

// ToDocument converts a Candidate back into a schema.Document, the wire type
// at the rag/vectorstore and rag/embedding boundary.
func (c Candidate) ToDocument() schema.Document {
	text := c.Payload.Text
	return schema.Document{
		ID:      c.ChunkID,
		Content: text,
		Score:   c.Score,
		Metadata: map[string]any{
			"law_id":            c.Payload.LawID,
			"law_title":         c.Payload.LawTitle,
			"article_title":     c.Payload.ArticleTitle,
			"article_caption":   c.Payload.ArticleCaption,
			"chapter_title":     c.Payload.ChapterTitle,
			"paragraph_num":     c.Payload.ParagraphNum,
			"text_with_context": c.Payload.TextWithContext,
			"highlight_path":    c.Payload.HighlightPath,
		},
	}
}

// DisplayText returns the text preferred for the generator context:
// TextWithContext when present, else Text.
func (p Payload) DisplayText() string {
	if p.TextWithContext != "" {
		return p.TextWithContext
	}
	return p.Text
}

// Truncate returns a copy of text truncated to at most n runes, used when
// building the Answer's surfaced source list (display cap).
func Truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
