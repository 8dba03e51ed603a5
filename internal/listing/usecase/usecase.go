package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/papermart/listing-service/internal/hierarchy"
	"github.com/papermart/listing-service/internal/listing"
	"github.com/papermart/listing-service/internal/listing/dto"
	"github.com/papermart/listing-service/internal/model"
	"github.com/papermart/listing-service/internal/search"
	"github.com/papermart/listing-service/pkg/cache"
	"github.com/papermart/listing-service/pkg/logger"
	"go.uber.org/zap"
)

const listCacheTTL = 5 * time.Minute

type listingUseCase struct {
	repo          listing.Repository
	hierarchyRepo hierarchy.Repository
	cache         *cache.RedisClient
	indexer       search.Indexer
	logger        logger.ZapLogger
}

// NewListingUseCase wires the listing domain. indexer may be nil when the
// search cluster is unreachable at startup; mutations then skip index sync
// and the service runs degraded.
func NewListingUseCase(
	repo listing.Repository,
	hierarchyRepo hierarchy.Repository,
	cache *cache.RedisClient,
	indexer search.Indexer,
	log logger.ZapLogger,
) listing.UseCase {
	return &listingUseCase{
		repo:          repo,
		hierarchyRepo: hierarchyRepo,
		cache:         cache,
		indexer:       indexer,
		logger:        log,
	}
}

func (uc *listingUseCase) CreateListing(ctx context.Context, input *dto.CreateListingInput) (*model.Listing, error) {
	if err := validateAttributes(input.GSM, input.DeckleMM, input.GrainMM); err != nil {
		return nil, err
	}

	ok, err := uc.hierarchyRepo.PathExists(ctx, input.GroupID, input.MakeID, input.GradeID, input.BrandID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, listing.ErrInvalidHierarchy
	}

	now := time.Now()
	l := &model.Listing{
		TransID:     uuid.New().String(),
		GroupID:     input.GroupID,
		MakeID:      input.MakeID,
		GradeID:     input.GradeID,
		BrandID:     input.BrandID,
		MemberID:    input.MemberID,
		OfferUnit:   input.OfferUnit,
		StockStatus: model.StatusActive,
		OfferPrice:  input.OfferPrice,
		Quantity:    input.Quantity,
		GSM:         input.GSM,
		DeckleMM:    input.DeckleMM,
		GrainMM:     input.GrainMM,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.SellerComments != "" {
		l.SellerComments = &input.SellerComments
	}
	if input.StockDescription != "" {
		l.StockDescription = &input.StockDescription
	}

	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToIndex(context.Background(), l.TransID)

	return l, nil
}

func (uc *listingUseCase) GetListing(ctx context.Context, transID string) (*model.Listing, error) {
	return uc.repo.FindByID(ctx, transID)
}

func (uc *listingUseCase) ListListings(ctx context.Context, filters *dto.ListingFilters) ([]model.Listing, int, error) {
	cacheKey, err := uc.listCacheKey(filters)
	if err == nil && uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached struct {
				Listings []model.Listing
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Listings, cached.Count, nil
			}
		}
	}

	listings, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" && uc.cache != nil {
		payload := struct {
			Listings []model.Listing
			Count    int
		}{Listings: listings, Count: count}
		if data, err := json.Marshal(payload); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, listCacheTTL)
		}
	}

	return listings, count, nil
}

func (uc *listingUseCase) UpdateListing(ctx context.Context, input *dto.UpdateListingInput) (*model.Listing, error) {
	if err := validateAttributes(input.GSM, input.DeckleMM, input.GrainMM); err != nil {
		return nil, err
	}

	l, err := uc.repo.FindByID(ctx, input.TransID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, listing.ErrNotFound
	}
	if l.MemberID != input.MemberID {
		return nil, listing.ErrNotOwner
	}

	ok, err := uc.hierarchyRepo.PathExists(ctx, input.GroupID, input.MakeID, input.GradeID, input.BrandID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, listing.ErrInvalidHierarchy
	}

	l.GroupID = input.GroupID
	l.MakeID = input.MakeID
	l.GradeID = input.GradeID
	l.BrandID = input.BrandID
	l.OfferUnit = input.OfferUnit
	l.OfferPrice = input.OfferPrice
	l.Quantity = input.Quantity
	l.GSM = input.GSM
	l.DeckleMM = input.DeckleMM
	l.GrainMM = input.GrainMM
	l.SellerComments = nil
	if input.SellerComments != "" {
		l.SellerComments = &input.SellerComments
	}
	l.StockDescription = nil
	if input.StockDescription != "" {
		l.StockDescription = &input.StockDescription
	}
	l.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, l); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToIndex(context.Background(), l.TransID)

	return l, nil
}

func (uc *listingUseCase) MarkSold(ctx context.Context, transID, memberID string) error {
	if err := uc.changeStatus(ctx, transID, memberID, model.StatusSold); err != nil {
		return err
	}
	// Sold listings stay indexed; the status change makes them invisible to
	// default searches but findable behind an explicit status filter.
	go uc.syncToIndex(context.Background(), transID)
	return nil
}

func (uc *listingUseCase) DeleteListing(ctx context.Context, transID, memberID string) error {
	if err := uc.changeStatus(ctx, transID, memberID, model.StatusInactive); err != nil {
		return err
	}
	go uc.removeFromIndexAsync(context.Background(), transID)
	return nil
}

func (uc *listingUseCase) changeStatus(ctx context.Context, transID, memberID, status string) error {
	l, err := uc.repo.FindByID(ctx, transID)
	if err != nil {
		return err
	}
	if l == nil {
		return listing.ErrNotFound
	}
	if l.MemberID != memberID {
		return listing.ErrNotOwner
	}

	if err := uc.repo.UpdateStatus(ctx, transID, status); err != nil {
		return err
	}

	go uc.invalidateListCache(context.Background())
	return nil
}

// SyncSearchIndex reads every indexable listing and bulk-upserts the derived
// documents. Partial failures are reported, not fatal.
func (uc *listingUseCase) SyncSearchIndex(ctx context.Context) (*search.SyncReport, error) {
	if uc.indexer == nil {
		return nil, fmt.Errorf("search index unavailable")
	}

	listings, err := uc.repo.FindAllForIndex(ctx)
	if err != nil {
		return nil, err
	}

	report, err := uc.indexer.FullSync(ctx, listings)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("search index sync finished",
		zap.Int("total", report.Total),
		zap.Int("indexed", report.Indexed),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (uc *listingUseCase) ReindexListing(ctx context.Context, transID string) error {
	if uc.indexer == nil {
		return nil
	}
	l, err := uc.repo.FindByID(ctx, transID)
	if err != nil {
		return err
	}
	if l == nil || l.StockStatus == model.StatusInactive {
		return uc.indexer.DeleteListing(ctx, transID)
	}
	return uc.indexer.IndexListing(ctx, l)
}

func (uc *listingUseCase) RemoveFromIndex(ctx context.Context, transID string) error {
	if uc.indexer == nil {
		return nil
	}
	return uc.indexer.DeleteListing(ctx, transID)
}

// syncToIndex is the fire-and-forget path behind mutations. Errors are
// logged and swallowed: index maintenance never fails a write, the next
// full sync repairs any gap.
func (uc *listingUseCase) syncToIndex(ctx context.Context, transID string) {
	if err := uc.ReindexListing(ctx, transID); err != nil {
		uc.logger.Error("failed to sync listing to index",
			zap.String("trans_id", transID),
			zap.Error(err),
		)
	}
}

func (uc *listingUseCase) removeFromIndexAsync(ctx context.Context, transID string) {
	if err := uc.RemoveFromIndex(ctx, transID); err != nil {
		uc.logger.Error("failed to remove listing from index",
			zap.String("trans_id", transID),
			zap.Error(err),
		)
	}
}

func (uc *listingUseCase) listCacheKey(filters *dto.ListingFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("listings:list:%x", md5.Sum(data)), nil
}

func (uc *listingUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, "listings:list:*").Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func validateAttributes(gsm *int, deckleMM, grainMM *float64) error {
	if gsm != nil && *gsm < 0 {
		return fmt.Errorf("%w: gsm must be non-negative", listing.ErrInvalidInput)
	}
	if deckleMM != nil && *deckleMM < 0 {
		return fmt.Errorf("%w: deckle must be non-negative", listing.ErrInvalidInput)
	}
	if grainMM != nil && *grainMM < 0 {
		return fmt.Errorf("%w: grain must be non-negative", listing.ErrInvalidInput)
	}
	return nil
}
