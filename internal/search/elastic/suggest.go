package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/papermart/listing-service/internal/metrics"
	"github.com/papermart/listing-service/internal/search/dto"
)

const (
	suggesterName   = "listing_suggest"
	suggestionLimit = 10
	// Prefixes shorter than this never reach the index; mirrors the
	// client-enforced minimum before autocomplete requests are issued.
	minSuggestPrefix = 2
)

type esSuggestResponse struct {
	Suggest map[string][]struct {
		Options []struct {
			Text  string  `json:"text"`
			Score float64 `json:"_score"`
			ID    string  `json:"_id"`
		} `json:"options"`
	} `json:"suggest"`
}

// Suggest returns up to ten fuzzy prefix completions, deduplicated. When a
// category is supplied it is a hard filter on the suggestion context, not a
// boost. Short prefixes short-circuit to an empty list without a round trip.
func (e *Engine) Suggest(ctx context.Context, prefix, category string) ([]dto.Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	if utf8.RuneCountInString(prefix) < minSuggestPrefix {
		return []dto.Suggestion{}, nil
	}

	start := time.Now()
	defer func() {
		metrics.SearchRequestDuration.WithLabelValues("suggest").Observe(time.Since(start).Seconds())
	}()

	completion := map[string]interface{}{
		"field":           "suggest",
		"size":            suggestionLimit,
		"skip_duplicates": true,
		"fuzzy": map[string]interface{}{
			"fuzziness": "AUTO",
		},
	}
	if category != "" {
		completion["contexts"] = map[string]interface{}{
			"category": []string{category},
		}
	}

	body, err := json.Marshal(map[string]interface{}{
		"suggest": map[string]interface{}{
			suggesterName: map[string]interface{}{
				"prefix":     prefix,
				"completion": completion,
			},
		},
		"_source": false,
	})
	if err != nil {
		return nil, fmt.Errorf("suggest: marshal query: %w", err)
	}

	res, err := e.es.Search(
		e.es.Search.WithContext(ctx),
		e.es.Search.WithIndex(e.index),
		e.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("suggest: request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, decodeError("suggest", res.StatusCode, res.Body)
	}

	var esResp esSuggestResponse
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("suggest: decode response: %w", err)
	}

	seen := make(map[string]struct{})
	suggestions := make([]dto.Suggestion, 0, suggestionLimit)
	for _, entry := range esResp.Suggest[suggesterName] {
		for _, opt := range entry.Options {
			key := strings.ToLower(opt.Text)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			suggestions = append(suggestions, dto.Suggestion{
				Text:   opt.Text,
				Score:  opt.Score,
				Source: opt.ID,
			})
			if len(suggestions) == suggestionLimit {
				return suggestions, nil
			}
		}
	}

	return suggestions, nil
}
