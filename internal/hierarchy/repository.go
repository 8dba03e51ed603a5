package hierarchy

import (
	"context"

	"github.com/papermart/listing-service/internal/model"
)

type Repository interface {
	FindGroups(ctx context.Context) ([]model.Group, error)
	FindMakes(ctx context.Context) ([]model.Make, error)
	FindGrades(ctx context.Context) ([]model.Grade, error)
	FindBrands(ctx context.Context) ([]model.Brand, error)

	// PathExists reports whether (groupID, makeID, gradeID, brandID) forms a
	// connected path through the hierarchy tree.
	PathExists(ctx context.Context, groupID, makeID, gradeID, brandID string) (bool, error)
}
