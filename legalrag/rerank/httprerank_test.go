package rerank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookatitude/beluga-ai/legalrag"
)

func TestHTTPCrossEncoder_InterfaceCompliance(t *testing.T) {
	var _ legalrag.CrossEncoder = (*HTTPCrossEncoder)(nil)
}

func TestHTTPCrossEncoder_Score(t *testing.T) {
	var receivedAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/score", r.URL.Path)
		receivedAuth = r.Header.Get("Authorization")

		var req scoreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "query text", req.Query)
		assert.Len(t, req.Passages, 2)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(scoreResponse{Scores: []float64{0.9, 0.1}})
	}))
	defer srv.Close()

	enc := New(srv.URL, WithHTTPClient(srv.Client()), WithAPIKey("secret"))
	scores, err := enc.Score(context.Background(), "query text", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.9, 0.1}, scores)
	assert.Equal(t, "Bearer secret", receivedAuth)
}

func TestHTTPCrossEncoder_Score_EmptyPassages(t *testing.T) {
	enc := New("http://unused")
	scores, err := enc.Score(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.Nil(t, scores)
}

func TestHTTPCrossEncoder_Score_MismatchedScoreCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(scoreResponse{Scores: []float64{0.9}})
	}))
	defer srv.Close()

	enc := New(srv.URL, WithHTTPClient(srv.Client()))
	_, err := enc.Score(context.Background(), "q", []string{"a", "b"})
	assert.Error(t, err)
}

func TestHTTPCrossEncoder_Score_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	enc := New(srv.URL, WithHTTPClient(srv.Client()))
	_, err := enc.Score(context.Background(), "q", []string{"a"})
	assert.Error(t, err)
}
