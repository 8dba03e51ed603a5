package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SearchRequestDuration measures engine round trips, labelled by operation
// (search, suggest).
var SearchRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "search_request_duration_seconds",
		Help:    "Duration of search engine requests in seconds",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
	},
	[]string{"operation"},
)

// IndexDocumentFailures counts documents that failed to index, across both
// bulk sync and incremental upserts.
var IndexDocumentFailures = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "index_document_failures_total",
		Help: "Total number of documents that failed to index",
	},
)
