package graph

import (
	"context"
	"fmt"
	"math"

	"github.com/lookatitude/beluga-ai/legalrag"
	driver "github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// distanceDecay is the base of the distance-weighted relevance formula for
// FindRelated: relevance = distanceDecay ^ distance.
const distanceDecay = 0.95

// Config holds the connection parameters for the Neo4j-backed GraphStore.
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// sessionRunner abstracts Neo4j session operations for testability; the
// driver's own interfaces carry unexported methods, so a thin wrapper is
// needed to fake them in tests.
type sessionRunner interface {
	executeRead(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
	close(ctx context.Context) error
}

type neo4jRunner struct {
	drv      driver.DriverWithContext
	database string
}

func (r *neo4jRunner) executeRead(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	session := r.drv.NewSession(ctx, driver.SessionConfig{
		DatabaseName: r.database,
		AccessMode:   driver.AccessModeRead,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx driver.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		var rows []map[string]any
		for res.Next(ctx) {
			rec := res.Record()
			row := make(map[string]any, len(rec.Keys))
			for i, key := range rec.Keys {
				row[key] = rec.Values[i]
			}
			rows = append(rows, row)
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]map[string]any), nil
}

func (r *neo4jRunner) close(ctx context.Context) error {
	return r.drv.Close(ctx)
}

// Neo4jGraphStore implements legalrag.GraphStore against a Neo4j database
// whose schema models Law/Chapter/Article/Paragraph nodes connected by
// HAS_CHAPTER/HAS_ARTICLE/HAS_PARAGRAPH edges, and Article-to-Article
// REFERENCES edges.
type Neo4jGraphStore struct {
	runner sessionRunner
}

// NewNeo4jGraphStore connects to a Neo4j database using cfg.
func NewNeo4jGraphStore(cfg Config) (*Neo4jGraphStore, error) {
	drv, err := driver.NewDriverWithContext(cfg.URI, driver.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("graph/neo4j: create driver: %w", err)
	}
	return &Neo4jGraphStore{runner: &neo4jRunner{drv: drv, database: cfg.Database}}, nil
}

func newWithRunner(r sessionRunner) *Neo4jGraphStore {
	return &Neo4jGraphStore{runner: r}
}

// Close closes the underlying Neo4j driver.
func (s *Neo4jGraphStore) Close(ctx context.Context) error {
	return s.runner.close(ctx)
}

// FindArticle implements legalrag.GraphStore.
func (s *Neo4jGraphStore) FindArticle(ctx context.Context, lawTitleSubstring, articleNum string) (*legalrag.GraphResult, error) {
	cypher := `MATCH (l:Law)-[:HAS_CHAPTER|HAS_ARTICLE*0..1]->(a:Article)
WHERE l.title CONTAINS $lawTitle AND a.article_num = $articleNum
RETURN l.id AS law_id, l.title AS law_title, a.article_num AS article_num,
       a.title AS article_title, a.caption AS article_caption, a.chunk_id AS chunk_id
LIMIT 1`
	rows, err := s.runner.executeRead(ctx, cypher, map[string]any{
		"lawTitle":   lawTitleSubstring,
		"articleNum": articleNum,
	})
	if err != nil {
		return nil, fmt.Errorf("graph/neo4j find_article: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	result := rowToResult(rows[0])
	result.Relevance = 1.0
	return &result, nil
}

// FindRelated implements legalrag.GraphStore.
func (s *Neo4jGraphStore) FindRelated(ctx context.Context, lawID, articleNum string, depth, limit int) ([]legalrag.GraphResult, error) {
	if depth <= 0 {
		depth = 1
	}
	cypher := fmt.Sprintf(`MATCH (start:Article {law_id: $lawID, article_num: $articleNum})
MATCH path = (start)-[:REFERENCES*1..%d]->(related:Article)
WITH related, min(length(path)) AS distance
RETURN related.law_id AS law_id, related.law_title AS law_title,
       related.article_num AS article_num, related.title AS article_title,
       related.caption AS article_caption, related.chunk_id AS chunk_id,
       distance
ORDER BY distance ASC
LIMIT $limit`, depth)
	rows, err := s.runner.executeRead(ctx, cypher, map[string]any{
		"lawID":      lawID,
		"articleNum": articleNum,
		"limit":      int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("graph/neo4j find_related: %w", err)
	}

	results := make([]legalrag.GraphResult, 0, len(rows))
	for _, row := range rows {
		result := rowToResult(row)
		distance := toInt(row["distance"])
		result.Relevance = math.Pow(distanceDecay, float64(distance))
		results = append(results, result)
	}
	return results, nil
}

// KeywordSearch implements legalrag.GraphStore.
func (s *Neo4jGraphStore) KeywordSearch(ctx context.Context, keyword string, limit int) ([]legalrag.GraphResult, error) {
	cypher := `MATCH (l:Law)-[:HAS_CHAPTER|HAS_ARTICLE*0..2]->(a:Article)
WHERE a.title CONTAINS $keyword OR a.caption CONTAINS $keyword OR l.title CONTAINS $keyword
RETURN l.id AS law_id, l.title AS law_title, a.article_num AS article_num,
       a.title AS article_title, a.caption AS article_caption, a.chunk_id AS chunk_id
LIMIT $limit`
	rows, err := s.runner.executeRead(ctx, cypher, map[string]any{
		"keyword": keyword,
		"limit":   int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("graph/neo4j keyword_search: %w", err)
	}

	results := make([]legalrag.GraphResult, 0, len(rows))
	for _, row := range rows {
		result := rowToResult(row)
		result.Relevance = keywordRelevance
		results = append(results, result)
	}
	return results, nil
}

func rowToResult(row map[string]any) legalrag.GraphResult {
	return legalrag.GraphResult{
		LawID:          toString(row["law_id"]),
		LawTitle:       toString(row["law_title"]),
		ArticleNum:     toString(row["article_num"]),
		ArticleTitle:   toString(row["article_title"]),
		ArticleCaption: toString(row["article_caption"]),
		ChunkID:        toString(row["chunk_id"]),
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

var _ legalrag.GraphStore = (*Neo4jGraphStore)(nil)
