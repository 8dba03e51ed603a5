package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/papermart/listing-service/internal/listing/dto"
	"github.com/papermart/listing-service/internal/model"
)

// joinedSelect pulls the deal row plus the display names the search document
// needs: hierarchy leaf names and seller identity.
const joinedSelect = `
    SELECT d.*,
           m.name AS make_name,
           g.name AS grade_name,
           b.name AS brand_name,
           mem.name AS seller_name,
           mem.company_name AS seller_company
    FROM deals d
    JOIN makes m ON m.id = d.make_id
    JOIN grades g ON g.id = d.grade_id
    JOIN brands b ON b.id = d.brand_id
    JOIN members mem ON mem.id = d.member_id
`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, l *model.Listing) error {
	query := `
        INSERT INTO deals (
            trans_id, group_id, make_id, grade_id, brand_id, member_id,
            offer_unit, stock_status, offer_price, quantity, gsm,
            deckle_mm, grain_mm, seller_comments, stock_description,
            created_at, updated_at
        )
        VALUES (
            :trans_id, :group_id, :make_id, :grade_id, :brand_id, :member_id,
            :offer_unit, :stock_status, :offer_price, :quantity, :gsm,
            :deckle_mm, :grain_mm, :seller_comments, :stock_description,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, l)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, transID string) (*model.Listing, error) {
	var listing model.Listing
	query := joinedSelect + ` WHERE d.trans_id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &listing, query, transID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &listing, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ListingFilters) ([]model.Listing, int, error) {
	var listings []model.Listing
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MemberID != "" {
		conditions = append(conditions, "d.member_id = :member_id")
		args["member_id"] = f.MemberID
	}
	if f.GroupID != "" {
		conditions = append(conditions, "d.group_id = :group_id")
		args["group_id"] = f.GroupID
	}
	if f.MakeID != "" {
		conditions = append(conditions, "d.make_id = :make_id")
		args["make_id"] = f.MakeID
	}
	if f.Status != "" {
		conditions = append(conditions, "d.stock_status = :stock_status")
		args["stock_status"] = f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM deals d" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	orderBy := "d.created_at DESC"
	if f.SortBy != "" {
		// Whitelisted to prevent SQL injection through the sort field.
		switch f.SortBy {
		case "price":
			orderBy = "d.offer_price"
		case "quantity":
			orderBy = "d.quantity"
		case "created_at":
			orderBy = "d.created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("%s%s ORDER BY %s", joinedSelect, whereClause, orderBy)

	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &listings, args)
	if err != nil {
		return nil, 0, err
	}

	return listings, count, nil
}

func (r *PGRepository) Update(ctx context.Context, l *model.Listing) error {
	query := `
        UPDATE deals
        SET group_id = :group_id,
            make_id = :make_id,
            grade_id = :grade_id,
            brand_id = :brand_id,
            offer_unit = :offer_unit,
            offer_price = :offer_price,
            quantity = :quantity,
            gsm = :gsm,
            deckle_mm = :deckle_mm,
            grain_mm = :grain_mm,
            seller_comments = :seller_comments,
            stock_description = :stock_description,
            updated_at = :updated_at
        WHERE trans_id = :trans_id AND member_id = :member_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, l)
	return err
}

func (r *PGRepository) UpdateStatus(ctx context.Context, transID, status string) error {
	query := `UPDATE deals SET stock_status = $1, updated_at = $2 WHERE trans_id = $3`
	_, err := r.DB.ExecContext(ctx, query, status, time.Now(), transID)
	return err
}

func (r *PGRepository) FindAllForIndex(ctx context.Context) ([]model.Listing, error) {
	var listings []model.Listing
	query := joinedSelect + ` WHERE d.stock_status IN ($1, $2)`
	err := r.DB.SelectContext(ctx, &listings, query, model.StatusActive, model.StatusSold)
	return listings, err
}
