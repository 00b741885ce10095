// Package query implements the Query Preparer & Translator: turning a raw
// user query into a primary corpus-language search text plus an optional
// expansion set of alternative phrasings, never failing fatally.
package query

import (
	"context"
	"unicode"

	"github.com/lookatitude/beluga-ai/legalrag"
)

// corpusLanguageThreshold is the minimum fraction of script-specific
// characters (Hiragana, Katakana, Han) among non-whitespace, non-punctuation
// runes for a query to be treated as already being in the corpus language.
const corpusLanguageThreshold = 0.5

// maxSearchTexts bounds the expansion set for latency: the preparer never
// returns more than this many search texts, primary included.
const maxSearchTexts = 3

// SearchPlan is the result of query preparation: an ordered list of search
// texts (first element is the primary) and any auto-detected filter hints.
type SearchPlan struct {
	SearchTexts []string
	FilterHints map[string]any
}

// Prepare turns rawQuery into a SearchPlan. It never returns an error:
// translation and expansion failures fall back to using the original text,
// per the Query Preparer's documented failure semantics. translator may be
// nil, in which case no translation or expansion is attempted.
func Prepare(ctx context.Context, rawQuery string, multiQueryEnabled bool, translator legalrag.Translator) SearchPlan {
	primary := rawQuery

	if translator != nil && !isCorpusLanguage(rawQuery) {
		if translated, err := translator.Translate(ctx, rawQuery); err == nil && translated != "" {
			primary = translated
		}
	}

	searchTexts := []string{primary}

	if multiQueryEnabled && translator != nil {
		if expansion, err := translator.GetAllSearchTexts(ctx, primary); err == nil && len(expansion) > 0 {
			searchTexts = mergeExpansion(primary, expansion)
		}
	}

	if len(searchTexts) > maxSearchTexts {
		searchTexts = searchTexts[:maxSearchTexts]
	}

	return SearchPlan{SearchTexts: searchTexts}
}

// mergeExpansion puts primary first, followed by the distinct entries of
// expansion (skipping a leading duplicate of primary, which translators
// commonly include).
func mergeExpansion(primary string, expansion []string) []string {
	out := []string{primary}
	seen := map[string]bool{primary: true}
	for _, text := range expansion {
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, text)
	}
	return out
}

// isCorpusLanguage reports whether rawQuery meets the script-ratio threshold
// to be treated as already being in the corpus language (Japanese).
func isCorpusLanguage(rawQuery string) bool {
	var scriptRunes, countedRunes int
	for _, r := range rawQuery {
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			continue
		}
		countedRunes++
		if isHiragana(r) || isKatakana(r) || isHan(r) {
			scriptRunes++
		}
	}
	if countedRunes == 0 {
		return false
	}
	return float64(scriptRunes)/float64(countedRunes) >= corpusLanguageThreshold
}

func isHiragana(r rune) bool { return r >= 0x3040 && r <= 0x309F }
func isKatakana(r rune) bool { return r >= 0x30A0 && r <= 0x30FF }
func isHan(r rune) bool      { return r >= 0x4E00 && r <= 0x9FFF }
