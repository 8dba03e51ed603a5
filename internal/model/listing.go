package model

import "time"

// Stock status values for a listing. A "sold" or "inactive" listing is
// excluded from default search results; "inactive" is also removed from
// the search index (soft delete).
const (
	StatusActive   = "active"
	StatusSold     = "sold"
	StatusInactive = "inactive"
)

// Listing is a tradable stock item (a "deal" in marketplace terms).
// GSM and the two physical dimensions are nullable: not every paper
// product carries them.
type Listing struct {
	TransID          string     `db:"trans_id" json:"trans_id"`
	GroupID          string     `db:"group_id" json:"group_id"`
	MakeID           string     `db:"make_id" json:"make_id"`
	GradeID          string     `db:"grade_id" json:"grade_id"`
	BrandID          string     `db:"brand_id" json:"brand_id"`
	MemberID         string     `db:"member_id" json:"member_id"`
	OfferUnit        string     `db:"offer_unit" json:"offer_unit"`
	StockStatus      string     `db:"stock_status" json:"stock_status"`
	OfferPrice       float64    `db:"offer_price" json:"offer_price"`
	Quantity         float64    `db:"quantity" json:"quantity"`
	GSM              *int       `db:"gsm" json:"gsm"`
	DeckleMM         *float64   `db:"deckle_mm" json:"deckle_mm"`
	GrainMM          *float64   `db:"grain_mm" json:"grain_mm"`
	SellerComments   *string    `db:"seller_comments" json:"seller_comments"`
	StockDescription *string    `db:"stock_description" json:"stock_description"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`

	// Joined display fields, populated by repository queries that join
	// the hierarchy and member tables. Not columns on the deals table.
	MakeName      string `db:"make_name" json:"make_name"`
	GradeName     string `db:"grade_name" json:"grade_name"`
	BrandName     string `db:"brand_name" json:"brand_name"`
	SellerName    string `db:"seller_name" json:"seller_name"`
	SellerCompany string `db:"seller_company" json:"seller_company"`
}
