package hierarchy

import (
	"context"

	"github.com/papermart/listing-service/internal/hierarchy/dto"
)

type UseCase interface {
	// GetHierarchy returns all active rows of every level, ordered by name.
	// It never returns an error: on a fetch failure the result is empty and
	// callers treat that as a degraded state.
	GetHierarchy(ctx context.Context) *dto.HierarchyData
}
