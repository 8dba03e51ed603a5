package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/papermart/listing-service/internal/metrics"
	"github.com/papermart/listing-service/internal/model"
	"github.com/papermart/listing-service/internal/search/dto"
	"github.com/papermart/listing-service/pkg/logger"
)

// Engine implements search.Indexer and search.Engine over Elasticsearch.
// Stateless per call; the only long-lived state is the pooled client.
type Engine struct {
	es     *elasticsearch.Client
	index  string
	logger logger.ZapLogger
}

func NewEngine(es *elasticsearch.Client, log logger.ZapLogger) *Engine {
	return &Engine{
		es:     es,
		index:  DefaultIndexName,
		logger: log,
	}
}

type esErrorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

type esSearchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID        string               `json:"_id"`
			Score     *float64             `json:"_score"`
			Source    model.SearchDocument `json:"_source"`
			Highlight map[string][]string  `json:"highlight"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations struct {
		Makes     esTermsAgg `json:"makes"`
		Brands    esTermsAgg `json:"brands"`
		Grades    esTermsAgg `json:"grades"`
		Companies esTermsAgg `json:"companies"`
		GSM       esStatsAgg `json:"gsm_stats"`
		Price     esStatsAgg `json:"price_stats"`
	} `json:"aggregations"`
}

type esTermsAgg struct {
	Buckets []struct {
		Key      string `json:"key"`
		DocCount int    `json:"doc_count"`
	} `json:"buckets"`
}

type esStatsAgg struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
}

// Search executes a ranked, highlighted, faceted query. Any engine-level
// failure is returned to the caller; it is never mapped to an empty result.
func (e *Engine) Search(ctx context.Context, input *dto.SearchInput) (*dto.SearchResult, error) {
	start := time.Now()
	defer func() {
		metrics.SearchRequestDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(buildSearchBody(input))
	if err != nil {
		return nil, fmt.Errorf("search: marshal query: %w", err)
	}

	res, err := e.es.Search(
		e.es.Search.WithContext(ctx),
		e.es.Search.WithIndex(e.index),
		e.es.Search.WithBody(bytes.NewReader(body)),
		e.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("search: query request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, decodeError("search", res.StatusCode, res.Body)
	}

	var esResp esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("search: decode response: %w", err)
	}

	return mapSearchResult(&esResp), nil
}

func mapSearchResult(resp *esSearchResponse) *dto.SearchResult {
	result := &dto.SearchResult{
		Hits:  make([]dto.Hit, 0, len(resp.Hits.Hits)),
		Total: resp.Hits.Total.Value,
		Aggregations: dto.Aggregations{
			Makes:     mapBuckets(resp.Aggregations.Makes),
			Brands:    mapBuckets(resp.Aggregations.Brands),
			Grades:    mapBuckets(resp.Aggregations.Grades),
			Companies: mapBuckets(resp.Aggregations.Companies),
			GSM:       mapStats(resp.Aggregations.GSM),
			Price:     mapStats(resp.Aggregations.Price),
		},
	}

	for _, h := range resp.Hits.Hits {
		hit := dto.Hit{
			Document:   h.Source,
			Highlights: h.Highlight,
		}
		// _score is null when an explicit sort overrides relevance.
		if h.Score != nil {
			hit.Score = *h.Score
		}
		result.Hits = append(result.Hits, hit)
	}

	return result
}

func mapBuckets(agg esTermsAgg) []dto.Bucket {
	buckets := make([]dto.Bucket, 0, len(agg.Buckets))
	for _, b := range agg.Buckets {
		buckets = append(buckets, dto.Bucket{Key: b.Key, Count: b.DocCount})
	}
	return buckets
}

func mapStats(agg esStatsAgg) dto.Stats {
	return dto.Stats{Count: agg.Count, Min: agg.Min, Max: agg.Max, Avg: agg.Avg}
}

func decodeError(op string, status int, body io.Reader) error {
	var errResp esErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err == nil && errResp.Error.Type != "" {
		return fmt.Errorf("%s: [%d] %s: %s", op, status, errResp.Error.Type, errResp.Error.Reason)
	}
	return fmt.Errorf("%s: unexpected status %d", op, status)
}
