package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/papermart/listing-service/internal/hierarchy"
	"github.com/papermart/listing-service/internal/hierarchy/dto"
	"github.com/papermart/listing-service/pkg/cache"
	"github.com/papermart/listing-service/pkg/logger"
	"go.uber.org/zap"
)

const (
	hierarchyCacheKey = "hierarchy:all"
	hierarchyCacheTTL = 10 * time.Minute
)

type hierarchyUseCase struct {
	repo   hierarchy.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewHierarchyUseCase(repo hierarchy.Repository, cache *cache.RedisClient, log logger.ZapLogger) hierarchy.UseCase {
	return &hierarchyUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

// GetHierarchy returns the four active-row collections. Any fetch error
// degrades to an entirely empty hierarchy instead of propagating, so the
// rest of the application keeps working with dependent form fields disabled.
func (uc *hierarchyUseCase) GetHierarchy(ctx context.Context) *dto.HierarchyData {
	if uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, hierarchyCacheKey).Result()
		if err == nil {
			var data dto.HierarchyData
			if err := json.Unmarshal([]byte(val), &data); err == nil {
				return &data
			}
		}
	}

	data := dto.Empty()

	groups, err := uc.repo.FindGroups(ctx)
	if err != nil {
		uc.logger.Warn("hierarchy fetch failed, serving empty", zap.Error(err))
		return dto.Empty()
	}
	makes, err := uc.repo.FindMakes(ctx)
	if err != nil {
		uc.logger.Warn("hierarchy fetch failed, serving empty", zap.Error(err))
		return dto.Empty()
	}
	grades, err := uc.repo.FindGrades(ctx)
	if err != nil {
		uc.logger.Warn("hierarchy fetch failed, serving empty", zap.Error(err))
		return dto.Empty()
	}
	brands, err := uc.repo.FindBrands(ctx)
	if err != nil {
		uc.logger.Warn("hierarchy fetch failed, serving empty", zap.Error(err))
		return dto.Empty()
	}

	if groups != nil {
		data.Groups = groups
	}
	if makes != nil {
		data.Makes = makes
	}
	if grades != nil {
		data.Grades = grades
	}
	if brands != nil {
		data.Brands = brands
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(data); err == nil {
			uc.cache.Client.Set(ctx, hierarchyCacheKey, raw, hierarchyCacheTTL)
		}
	}

	return data
}
