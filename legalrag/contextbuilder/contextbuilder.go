// Package contextbuilder implements the Context Builder: formatting the
// final ordered Candidates into numbered, citation-ready text blocks.
package contextbuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lookatitude/beluga-ai/legalrag/candidate"
)

// Block is a single rendered citation block: its 1-based citation index,
// law/article titles, and displayed text.
type Block struct {
	Index        int
	LawTitle     string
	ArticleTitle string
	Text         string
	Rendered     string
}

// Build renders candidates into an ordered list of Blocks and the joined
// context string passed to the generator. Citation index i (1-based)
// corresponds to candidates[i-1]. When a candidate carries no law/article
// title, its block degenerates to "[i] <text>".
func Build(candidates []candidate.Candidate) ([]Block, string) {
	blocks := make([]Block, len(candidates))
	rendered := make([]string, len(candidates))

	for i, c := range candidates {
		index := i + 1
		text := c.Payload.DisplayText()

		var block string
		if c.Payload.LawTitle == "" && c.Payload.ArticleTitle == "" {
			block = fmt.Sprintf("[%d] %s", index, text)
		} else {
			block = fmt.Sprintf("[%d]【%s %s】\n%s", index, c.Payload.LawTitle, c.Payload.ArticleTitle, text)
		}

		blocks[i] = Block{
			Index:        index,
			LawTitle:     c.Payload.LawTitle,
			ArticleTitle: c.Payload.ArticleTitle,
			Text:         text,
			Rendered:     block,
		}
		rendered[i] = block
	}

	return blocks, strings.Join(rendered, "\n\n")
}

// ParseCitationOrder recovers the rank order encoded by a rendered context's
// "[i]" prefixes, the round-trip check that the context builder's output,
// once rendered, can be parsed back to the original rank order (L3).
func ParseCitationOrder(rendered string) []int {
	var order []int
	for _, block := range strings.Split(rendered, "\n\n") {
		block = strings.TrimSpace(block)
		if !strings.HasPrefix(block, "[") {
			continue
		}
		end := strings.IndexByte(block, ']')
		if end <= 1 {
			continue
		}
		n, err := strconv.Atoi(block[1:end])
		if err != nil {
			continue
		}
		order = append(order, n)
	}
	return order
}
