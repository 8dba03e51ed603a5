package listing

import (
	"context"

	"github.com/papermart/listing-service/internal/listing/dto"
	"github.com/papermart/listing-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, listing *model.Listing) error
	// FindByID returns the listing with hierarchy and seller names joined,
	// or nil when no row exists.
	FindByID(ctx context.Context, transID string) (*model.Listing, error)
	FindAll(ctx context.Context, filters *dto.ListingFilters) ([]model.Listing, int, error)
	Update(ctx context.Context, listing *model.Listing) error
	UpdateStatus(ctx context.Context, transID, status string) error

	// FindAllForIndex returns every indexable listing (active and sold)
	// joined with seller identity, for a full index rebuild.
	FindAllForIndex(ctx context.Context) ([]model.Listing, error)
}
