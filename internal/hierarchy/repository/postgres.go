package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/papermart/listing-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindGroups(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	query := `SELECT * FROM groups WHERE is_active = true ORDER BY name ASC`
	err := r.DB.SelectContext(ctx, &groups, query)
	return groups, err
}

func (r *PGRepository) FindMakes(ctx context.Context) ([]model.Make, error) {
	var makes []model.Make
	query := `SELECT * FROM makes WHERE is_active = true ORDER BY name ASC`
	err := r.DB.SelectContext(ctx, &makes, query)
	return makes, err
}

func (r *PGRepository) FindGrades(ctx context.Context) ([]model.Grade, error) {
	var grades []model.Grade
	query := `SELECT * FROM grades WHERE is_active = true ORDER BY name ASC`
	err := r.DB.SelectContext(ctx, &grades, query)
	return grades, err
}

func (r *PGRepository) FindBrands(ctx context.Context) ([]model.Brand, error) {
	var brands []model.Brand
	query := `SELECT * FROM brands WHERE is_active = true ORDER BY name ASC`
	err := r.DB.SelectContext(ctx, &brands, query)
	return brands, err
}

func (r *PGRepository) PathExists(ctx context.Context, groupID, makeID, gradeID, brandID string) (bool, error) {
	var count int
	query := `
        SELECT count(*)
        FROM makes m
        JOIN grades g ON g.make_id = m.id
        JOIN brands b ON b.grade_id = g.id
        WHERE m.group_id = $1 AND m.id = $2 AND g.id = $3 AND b.id = $4
    `
	err := r.DB.GetContext(ctx, &count, query, groupID, makeID, gradeID, brandID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
