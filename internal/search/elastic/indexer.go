package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/papermart/listing-service/internal/metrics"
	"github.com/papermart/listing-service/internal/model"
	"github.com/papermart/listing-service/internal/search"
	"go.uber.org/zap"
)

// EnsureIndex creates the listings index with its mapping if it does not
// exist yet. Safe to call on every startup.
func (e *Engine) EnsureIndex(ctx context.Context) error {
	res, err := e.es.Indices.Exists(
		[]string{e.index},
		e.es.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index: exists check: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("index: exists check: unexpected status %d", res.StatusCode)
	}

	createRes, err := e.es.Indices.Create(
		e.index,
		e.es.Indices.Create.WithBody(bytes.NewReader([]byte(indexMapping()))),
		e.es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index: create: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return decodeError("index create", createRes.StatusCode, createRes.Body)
	}

	e.logger.Info("search index created", zap.String("index", e.index))
	return nil
}

// FullSync bulk-upserts every given listing keyed by transaction id. Partial
// failure is not an abort: each failing document is recorded in the report
// and logged, the rest go through. Re-running with unchanged input is
// idempotent, since upserts by id replace documents in place.
func (e *Engine) FullSync(ctx context.Context, listings []model.Listing) (*search.SyncReport, error) {
	report := &search.SyncReport{Total: len(listings)}
	if len(listings) == 0 {
		return report, nil
	}

	var buf bytes.Buffer
	for i := range listings {
		doc := search.BuildDocument(&listings[i])

		action, err := json.Marshal(map[string]interface{}{
			"index": map[string]interface{}{"_id": doc.TransID},
		})
		if err != nil {
			return nil, fmt.Errorf("index: marshal bulk action: %w", err)
		}
		payload, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("index: marshal document %s: %w", doc.TransID, err)
		}

		buf.Write(action)
		buf.WriteByte('\n')
		buf.Write(payload)
		buf.WriteByte('\n')
	}

	res, err := e.es.Bulk(
		bytes.NewReader(buf.Bytes()),
		e.es.Bulk.WithIndex(e.index),
		e.es.Bulk.WithRefresh("true"),
		e.es.Bulk.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("index: bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, decodeError("bulk", res.StatusCode, res.Body)
	}

	var bulkResp bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&bulkResp); err != nil {
		return nil, fmt.Errorf("index: decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		entry, ok := item["index"]
		if !ok {
			continue
		}
		if entry.Error != nil {
			report.Failed++
			report.Failures = append(report.Failures, search.DocumentFailure{
				TransID: entry.ID,
				Reason:  fmt.Sprintf("%s: %s", entry.Error.Type, entry.Error.Reason),
			})
			metrics.IndexDocumentFailures.Inc()
			e.logger.Error("bulk index item failed",
				zap.String("trans_id", entry.ID),
				zap.String("type", entry.Error.Type),
				zap.String("reason", entry.Error.Reason),
			)
			continue
		}
		report.Indexed++
	}

	return report, nil
}

type bulkResponse struct {
	Errors bool                  `json:"errors"`
	Items  []map[string]bulkItem `json:"items"`
}

type bulkItem struct {
	ID     string `json:"_id"`
	Status int    `json:"status"`
	Error  *struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

// IndexListing upserts a single document with a forced refresh, narrowing
// the window in which an overlapping search observes the stale document.
func (e *Engine) IndexListing(ctx context.Context, listing *model.Listing) error {
	doc := search.BuildDocument(listing)

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("index: marshal document %s: %w", doc.TransID, err)
	}

	res, err := e.es.Index(
		e.index,
		bytes.NewReader(payload),
		e.es.Index.WithDocumentID(doc.TransID),
		e.es.Index.WithRefresh("true"),
		e.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index: request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		metrics.IndexDocumentFailures.Inc()
		return decodeError("index", res.StatusCode, res.Body)
	}
	return nil
}

// DeleteListing removes a document by id. Deleting an id that is not in the
// index is not an error.
func (e *Engine) DeleteListing(ctx context.Context, transID string) error {
	res, err := e.es.Delete(
		e.index,
		transID,
		e.es.Delete.WithRefresh("true"),
		e.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index: delete request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		return decodeError("delete", res.StatusCode, res.Body)
	}
	return nil
}
