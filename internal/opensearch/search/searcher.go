package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rx3lixir/bodykit/internal/opensearch/client"
	"github.com/rx3lixir/bodykit/pkg/body"
	"github.com/rx3lixir/bodykit/pkg/logger"
	"github.com/rx3lixir/bodykit/pkg/metrics"
)

// Searcher executes built request bodies against one OpenSearch index.
type Searcher struct {
	client *client.Client
	logger logger.Logger
}

func NewSearcher(client *client.Client, log logger.Logger) *Searcher {
	return &Searcher{
		client: client,
		logger: log,
	}
}

// Search reduces the builder with the default dialect and runs it.
func (s *Searcher) Search(ctx context.Context, b *body.Builder) (*Result, error) {
	doc := b.Build()

	queryBody, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search body: %w", err)
	}
	metrics.RecordBodyBuilt("default", len(queryBody))

	s.logger.Debug("Executing OpenSearch query",
		"index", s.client.GetIndexName(),
		"body", string(queryBody),
	)

	native := s.client.GetNativeClient()

	start := time.Now()
	res, err := native.Search(
		native.Search.WithContext(ctx),
		native.Search.WithIndex(s.client.GetIndexName()),
		native.Search.WithBody(bytes.NewReader(queryBody)),
		native.Search.WithTrackTotalHits(true),
	)
	searchTime := time.Since(start)
	metrics.RecordOpenSearchOperation("search", s.client.GetIndexName(), metrics.StatusFromError(err), searchTime)

	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		errBody, _ := io.ReadAll(res.Body)
		s.logger.Error("OpenSearch query failed",
			"status", res.Status(),
			"error_body", string(errBody),
			"body", string(queryBody),
		)
		return nil, fmt.Errorf("search failed with status: %s", res.Status())
	}

	result, err := parseSearchResponse(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	result.Took = searchTime

	s.logger.Info("Search completed",
		"index", s.client.GetIndexName(),
		"total_found", result.Total,
		"returned", len(result.Hits),
		"aggregations", len(result.Aggregations),
		"search_time", searchTime,
	)

	return result, nil
}

// Count runs the builder's query against the count endpoint. Keys the
// count API rejects (pagination, sort, aggregations) are dropped from
// the built body first.
func (s *Searcher) Count(ctx context.Context, b *body.Builder) (int64, error) {
	doc := b.Build()
	for _, key := range []string{"from", "size", "sort", "aggs", "aggregations", "_source"} {
		delete(doc, key)
	}

	queryBody, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal count body: %w", err)
	}
	metrics.RecordBodyBuilt("default", len(queryBody))

	native := s.client.GetNativeClient()

	start := time.Now()
	res, err := native.Count(
		native.Count.WithContext(ctx),
		native.Count.WithIndex(s.client.GetIndexName()),
		native.Count.WithBody(bytes.NewReader(queryBody)),
	)
	metrics.RecordOpenSearchOperation("count", s.client.GetIndexName(), metrics.StatusFromError(err), time.Since(start))

	if err != nil {
		return 0, fmt.Errorf("failed to execute count: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("count failed with status: %s", res.Status())
	}

	var countResponse struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&countResponse); err != nil {
		return 0, fmt.Errorf("failed to decode count response: %w", err)
	}

	return countResponse.Count, nil
}

func parseSearchResponse(r io.Reader) (*Result, error) {
	var response struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			MaxScore *float64 `json:"max_score"`
			Hits     []Hit    `json:"hits"`
		} `json:"hits"`
		Aggregations map[string]json.RawMessage `json:"aggregations"`
	}

	bodyBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(bodyBytes, &response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return &Result{
		Hits:         response.Hits.Hits,
		Total:        response.Hits.Total.Value,
		MaxScore:     response.Hits.MaxScore,
		Aggregations: response.Aggregations,
	}, nil
}
