// Package router implements the Query Router: classifying a query into one
// of ENTITY_LOOKUP, MULTI_HOP, HYBRID, or SEMANTIC by extracting legal
// entities with regex patterns and checking intent keywords.
package router

import (
	"regexp"
	"strings"
)

// QueryType classifies how a query should be routed between graph and
// vector retrieval.
type QueryType string

const (
	Semantic     QueryType = "semantic"
	EntityLookup QueryType = "entity_lookup"
	MultiHop     QueryType = "multi_hop"
	Hybrid       QueryType = "hybrid"
)

// EntityKind identifies the shape of an extracted entity.
type EntityKind string

const (
	LawArticle EntityKind = "law_article"
	Article    EntityKind = "article"
	Law        EntityKind = "law"
)

// Entity is a single legal reference extracted from a query, e.g.
// ("労働基準法第32条", law_article) or ("第32条", article).
type Entity struct {
	Text string
	Kind EntityKind
}

// RoutedQuery is the result of routing: the original query, its classified
// type, the ordered entities extracted from it, and the use_graph/use_vector
// flags downstream retrieval reads.
type RoutedQuery struct {
	OriginalQuery string
	Type          QueryType
	Entities      []Entity
	UseGraph      bool
	UseVector     bool
}

// jpScript matches a run of Hiragana, Katakana, or Han characters, the
// script classes a Japanese law name is built from.
const jpScript = `[\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FFF}]+`

var (
	lawArticlePattern = regexp.MustCompile(`(` + jpScript + `法)第(\d+)条`)
	articleOnlyPattern = regexp.MustCompile(`第(\d+)条(?:の(\d+))?`)
	lawNamePattern     = regexp.MustCompile(jpScript + `法`)
)

// relationshipKeywords indicate the query asks about a connection between
// entities rather than a direct lookup.
var relationshipKeywords = []string{
	"liên quan", "related", "tham chiếu", "references",
	"kết nối", "connected", "điều khác", "các điều",
	"quy định tại", "theo điều", "dựa trên",
}

// lookupKeywords indicate the query wants a direct definition/lookup.
var lookupKeywords = []string{
	"là gì", "nói gì", "quy định gì", "what is",
	"điều", "khoản", "mục", "chương",
}

// Route classifies text and extracts its legal entities. It is a pure
// function with no side effects.
func Route(text string) RoutedQuery {
	entities := extractEntities(text)
	isRelationship := containsAny(text, relationshipKeywords)
	isLookup := containsAny(text, lookupKeywords)

	var queryType QueryType
	var useGraph, useVector bool

	switch {
	case len(entities) > 0 && isLookup && !isRelationship:
		queryType, useGraph, useVector = EntityLookup, true, false
	case len(entities) > 0 && isRelationship:
		queryType, useGraph, useVector = MultiHop, true, true
	case len(entities) > 0:
		queryType, useGraph, useVector = Hybrid, true, true
	default:
		queryType, useGraph, useVector = Semantic, false, true
	}

	return RoutedQuery{
		OriginalQuery: text,
		Type:          queryType,
		Entities:      entities,
		UseGraph:      useGraph,
		UseVector:     useVector,
	}
}

// extractEntities applies the entity patterns in order — law+article, then
// article-only, then law-name — and deduplicates while preserving first-seen
// order. An article-only or law-name match that is already a substring of an
// earlier match is suppressed.
func extractEntities(text string) []Entity {
	var entities []Entity

	for _, m := range lawArticlePattern.FindAllStringSubmatchIndex(text, -1) {
		lawAndArticle := text[m[0]:m[1]]
		lawName := text[m[2]:m[3]]
		articleNum := text[m[4]:m[5]]
		_ = lawAndArticle
		entities = append(entities, Entity{Text: lawName + "第" + articleNum + "条", Kind: LawArticle})
	}

	for _, m := range articleOnlyPattern.FindAllStringSubmatch(text, -1) {
		articleNum := m[1]
		subNum := m[2]
		articleText := "第" + articleNum + "条"
		if subNum != "" {
			articleText += "の" + subNum
		}
		if isSubSpanOfAny(articleText, entities) {
			continue
		}
		entities = append(entities, Entity{Text: articleText, Kind: Article})
	}

	for _, m := range lawNamePattern.FindAllString(text, -1) {
		if isSubSpanOfAny(m, entities) {
			continue
		}
		entities = append(entities, Entity{Text: m, Kind: Law})
	}

	return dedupEntities(entities)
}

func isSubSpanOfAny(name string, entities []Entity) bool {
	for _, e := range entities {
		if strings.Contains(e.Text, name) {
			return true
		}
	}
	return false
}

func dedupEntities(entities []Entity) []Entity {
	seen := make(map[Entity]bool, len(entities))
	unique := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if seen[e] {
			continue
		}
		seen[e] = true
		unique = append(unique, e)
	}
	return unique
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
