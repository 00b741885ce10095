// Package llmtranslate implements legalrag.Translator backed by an
// llm.ChatModel: the model itself translates the query and produces a
// structured expansion record (keywords, related terms, alternative
// phrasings) via JSON-mode generation.
package llmtranslate

import (
	"context"
	"fmt"
	"strings"

	"github.com/lookatitude/beluga-ai/legalrag"
	"github.com/lookatitude/beluga-ai/llm"
	"github.com/lookatitude/beluga-ai/schema"
)

// expansion mirrors the structured record the translator asks the model
// for: the translated primary, 3-5 corpus-language keywords, 2-3 related
// legal-domain terms, and 2-3 alternative full-sentence queries.
type expansion struct {
	Translated   string   `json:"translated"`
	Keywords     []string `json:"keywords"`
	RelatedTerms []string `json:"related_terms"`
	AltQueries   []string `json:"alt_queries"`
}

// Translator implements legalrag.Translator using an llm.ChatModel.
type Translator struct {
	model      llm.ChatModel
	structured *llm.StructuredOutput[expansion]
}

// New constructs a Translator over model.
func New(model llm.ChatModel) *Translator {
	return &Translator{
		model:      model,
		structured: llm.NewStructured[expansion](model),
	}
}

// Translate asks the model to translate text into the corpus language
// (Japanese). On any failure it falls back to returning the original text,
// per the Translator port's documented fallback contract.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	msgs := []schema.Message{
		schema.NewSystemMessage("Translate the user's question into natural Japanese. Respond with only the translation, no commentary."),
		schema.NewHumanMessage(text),
	}
	resp, err := t.model.Generate(ctx, msgs)
	if err != nil {
		return text, nil
	}
	translated := strings.TrimSpace(resp.Text())
	if translated == "" {
		return text, nil
	}
	return translated, nil
}

// GetAllSearchTexts asks the model for the structured expansion record and
// flattens it into an ordered list: translated primary, then alternative
// queries, then a single keyword-join as the last entry. Any failure or
// malformed response falls back to []string{text}.
func (t *Translator) GetAllSearchTexts(ctx context.Context, text string) ([]string, error) {
	msgs := []schema.Message{
		schema.NewSystemMessage(
			"Produce a JSON object with fields: translated (the question translated into natural Japanese), " +
				"keywords (3-5 Japanese keyword terms), related_terms (2-3 related legal-domain terms), " +
				"alt_queries (2-3 alternative full-sentence Japanese phrasings of the question).",
		),
		schema.NewHumanMessage(text),
	}

	result, err := t.structured.Generate(ctx, msgs)
	if err != nil {
		return []string{text}, nil
	}

	searchTexts := []string{}
	if result.Translated != "" {
		searchTexts = append(searchTexts, result.Translated)
	} else {
		searchTexts = append(searchTexts, text)
	}
	searchTexts = append(searchTexts, result.AltQueries...)
	if len(result.Keywords) > 0 {
		searchTexts = append(searchTexts, strings.Join(result.Keywords, " "))
	}

	if len(searchTexts) == 0 {
		return []string{text}, fmt.Errorf("llmtranslate: empty expansion")
	}
	return searchTexts, nil
}

var _ legalrag.Translator = (*Translator)(nil)
