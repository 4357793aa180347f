package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/rx3lixir/bodykit/internal/opensearch/client"
	"github.com/rx3lixir/bodykit/pkg/body"
	"github.com/rx3lixir/bodykit/pkg/logger"
	"github.com/rx3lixir/bodykit/pkg/metrics"
)

func newTestSearcher(t *testing.T, handler http.HandlerFunc) (*Searcher, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := client.DefaultConfig()
	cfg.URL = server.URL
	cfg.IndexName = "articles"

	c, err := client.New(cfg, logger.NewNop())
	require.NoError(t, err)

	return NewSearcher(c, logger.NewNop()), server
}

func TestSearcher_SearchSendsBuiltBodyAndParsesResponse(t *testing.T) {
	var receivedPath string
	var receivedBody map[string]any

	searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &receivedBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"took": 3,
			"hits": {
				"total": {"value": 2},
				"max_score": 1.5,
				"hits": [
					{"_index": "articles", "_id": "1", "_score": 1.5, "_source": {"title": "first"}},
					{"_index": "articles", "_id": "2", "_score": 0.7, "_source": {"title": "second"}}
				]
			},
			"aggregations": {
				"channels": {"buckets": [{"key": "news", "doc_count": 2}]}
			}
		}`))
	})

	b := body.New().
		Query("match", "title", "first").
		Filter("term", "published", true).
		Aggregation("terms", "channel", body.WithName("channels")).
		Size(10)

	result, err := searcher.Search(context.Background(), b)
	require.NoError(t, err)

	require.Equal(t, "/articles/_search", receivedPath)

	boolTree := receivedBody["query"].(map[string]any)["bool"].(map[string]any)
	require.Contains(t, boolTree, "filter")
	require.Contains(t, boolTree, "must")
	require.Contains(t, receivedBody, "aggs")
	require.Equal(t, float64(10), receivedBody["size"])

	require.Equal(t, int64(2), result.Total)
	require.Len(t, result.Hits, 2)
	require.Equal(t, "1", result.Hits[0].ID)
	require.NotNil(t, result.MaxScore)
	require.Contains(t, result.Aggregations, "channels")
	require.Greater(t, result.Took, time.Duration(0))
}

func TestSearcher_SearchSurfacesEngineErrors(t *testing.T) {
	searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"type": "parsing_exception"}}`))
	})

	_, err := searcher.Search(context.Background(), body.New().Query("bogus", "f", "v"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "400")
}

func TestSearcher_CountStripsNonQueryKeys(t *testing.T) {
	var receivedBody map[string]any

	searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &receivedBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 42}`))
	})

	b := body.New().
		Filter("term", "published", true).
		Aggregation("terms", "channel").
		Sort("published_at", "desc").
		From(10).
		Size(20)

	built := testutil.ToFloat64(metrics.BodiesBuiltTotal.WithLabelValues("default"))

	count, err := searcher.Count(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, int64(42), count)

	require.Equal(t, built+1, testutil.ToFloat64(metrics.BodiesBuiltTotal.WithLabelValues("default")))

	require.Contains(t, receivedBody, "query")
	require.NotContains(t, receivedBody, "from")
	require.NotContains(t, receivedBody, "size")
	require.NotContains(t, receivedBody, "sort")
	require.NotContains(t, receivedBody, "aggs")
}
