package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookatitude/beluga-ai/legalrag"
)

type fakeStore struct {
	article      *legalrag.GraphResult
	articleErr   error
	related      []legalrag.GraphResult
	relatedErr   error
	keyword      []legalrag.GraphResult
	keywordErr   error
	lastDepth    int
	lastKeyword  string
}

func (f *fakeStore) FindArticle(ctx context.Context, lawTitleSubstring, articleNum string) (*legalrag.GraphResult, error) {
	return f.article, f.articleErr
}

func (f *fakeStore) FindRelated(ctx context.Context, lawID, articleNum string, depth, limit int) ([]legalrag.GraphResult, error) {
	f.lastDepth = depth
	return f.related, f.relatedErr
}

func (f *fakeStore) KeywordSearch(ctx context.Context, keyword string, limit int) ([]legalrag.GraphResult, error) {
	f.lastKeyword = keyword
	return f.keyword, f.keywordErr
}

func TestRetriever_NilStore_DegradesToEmpty(t *testing.T) {
	r := New(nil)
	assert.False(t, r.Available())
	assert.Nil(t, r.FindArticle(context.Background(), "労働基準法", "32"))
	assert.Nil(t, r.FindRelated(context.Background(), "law1", "32", 1, 5))
	assert.Nil(t, r.KeywordSearch(context.Background(), "労働", 5))
}

func TestRetriever_FindArticle_PassesThrough(t *testing.T) {
	store := &fakeStore{article: &legalrag.GraphResult{LawID: "law1", ArticleNum: "32"}}
	r := New(store)
	assert.True(t, r.Available())
	result := r.FindArticle(context.Background(), "労働基準法", "32")
	require.NotNil(t, result)
	assert.Equal(t, "law1", result.LawID)
}

func TestRetriever_FindArticle_ErrorDegradesToNil(t *testing.T) {
	store := &fakeStore{articleErr: errors.New("connection refused")}
	r := New(store)
	assert.Nil(t, r.FindArticle(context.Background(), "労働基準法", "32"))
}

func TestRetriever_FindRelated_CapsDepth(t *testing.T) {
	store := &fakeStore{related: []legalrag.GraphResult{{ChunkID: "c1"}}}
	r := New(store)
	results := r.FindRelated(context.Background(), "law1", "32", 5, 10)
	require.Len(t, results, 1)
	assert.Equal(t, maxTraversalDepth, store.lastDepth)
}

func TestRetriever_FindRelated_ErrorDegradesToNil(t *testing.T) {
	store := &fakeStore{relatedErr: errors.New("timeout")}
	r := New(store)
	assert.Nil(t, r.FindRelated(context.Background(), "law1", "32", 1, 10))
}

func TestRetriever_KeywordSearch_PassesThrough(t *testing.T) {
	store := &fakeStore{keyword: []legalrag.GraphResult{{ChunkID: "c1", Relevance: keywordRelevance}}}
	r := New(store)
	results := r.KeywordSearch(context.Background(), "労働", 5)
	require.Len(t, results, 1)
	assert.Equal(t, "労働", store.lastKeyword)
	assert.Equal(t, 0.8, results[0].Relevance)
}

func TestRetriever_KeywordSearch_ErrorDegradesToEmpty(t *testing.T) {
	store := &fakeStore{keywordErr: errors.New("boom")}
	r := New(store)
	assert.Nil(t, r.KeywordSearch(context.Background(), "労働", 5))
}
