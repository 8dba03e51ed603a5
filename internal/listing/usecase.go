package listing

import (
	"context"
	"errors"

	"github.com/papermart/listing-service/internal/listing/dto"
	"github.com/papermart/listing-service/internal/model"
	"github.com/papermart/listing-service/internal/search"
)

var (
	ErrNotFound         = errors.New("listing not found")
	ErrNotOwner         = errors.New("listing belongs to another member")
	ErrInvalidInput     = errors.New("invalid listing input")
	ErrInvalidHierarchy = errors.New("hierarchy ids do not form a connected path")
)

type UseCase interface {
	CreateListing(ctx context.Context, input *dto.CreateListingInput) (*model.Listing, error)
	GetListing(ctx context.Context, transID string) (*model.Listing, error)
	ListListings(ctx context.Context, filters *dto.ListingFilters) ([]model.Listing, int, error)
	UpdateListing(ctx context.Context, input *dto.UpdateListingInput) (*model.Listing, error)
	// MarkSold keeps the listing in the index with its new status; sold
	// stock stays findable behind an explicit status filter.
	MarkSold(ctx context.Context, transID, memberID string) error
	// DeleteListing soft-deactivates the row and removes its document.
	DeleteListing(ctx context.Context, transID, memberID string) error

	// SyncSearchIndex rebuilds every index document from the repository.
	// Idempotent and order-independent.
	SyncSearchIndex(ctx context.Context) (*search.SyncReport, error)
	// ReindexListing refreshes one document from its current row state.
	ReindexListing(ctx context.Context, transID string) error
	RemoveFromIndex(ctx context.Context, transID string) error
}
