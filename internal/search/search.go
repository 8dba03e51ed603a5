package search

import (
	"context"

	"github.com/papermart/listing-service/internal/model"
	"github.com/papermart/listing-service/internal/search/dto"
)

// Indexer keeps index documents in lockstep with the listing repository.
// Implementations must derive documents through BuildDocument so the bulk
// and incremental paths produce identical output for the same listing state.
type Indexer interface {
	EnsureIndex(ctx context.Context) error
	FullSync(ctx context.Context, listings []model.Listing) (*SyncReport, error)
	IndexListing(ctx context.Context, listing *model.Listing) error
	DeleteListing(ctx context.Context, transID string) error
}

// Engine serves queries. Errors propagate to the caller: empty-vs-error is
// observably different to the UI, so a failed search is never reported as an
// empty result set.
type Engine interface {
	Search(ctx context.Context, input *dto.SearchInput) (*dto.SearchResult, error)
	Suggest(ctx context.Context, prefix, category string) ([]dto.Suggestion, error)
}

// SyncReport is the outcome of a bulk sync. A partially failed sync is still
// a successful sync for the subset that made it; the caller decides whether
// Failed warrants escalation.
type SyncReport struct {
	Total    int
	Indexed  int
	Failed   int
	Failures []DocumentFailure
}

type DocumentFailure struct {
	TransID string
	Reason  string
}
