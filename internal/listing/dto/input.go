package dto

type CreateListingInput struct {
	MemberID         string   `json:"-"`
	GroupID          string   `json:"group_id"`
	MakeID           string   `json:"make_id"`
	GradeID          string   `json:"grade_id"`
	BrandID          string   `json:"brand_id"`
	OfferUnit        string   `json:"offer_unit"`
	OfferPrice       float64  `json:"offer_price"`
	Quantity         float64  `json:"quantity"`
	GSM              *int     `json:"gsm"`
	DeckleMM         *float64 `json:"deckle_mm"`
	GrainMM          *float64 `json:"grain_mm"`
	SellerComments   string   `json:"seller_comments"`
	StockDescription string   `json:"stock_description"`
}

type UpdateListingInput struct {
	TransID          string   `json:"-"`
	MemberID         string   `json:"-"`
	GroupID          string   `json:"group_id"`
	MakeID           string   `json:"make_id"`
	GradeID          string   `json:"grade_id"`
	BrandID          string   `json:"brand_id"`
	OfferUnit        string   `json:"offer_unit"`
	OfferPrice       float64  `json:"offer_price"`
	Quantity         float64  `json:"quantity"`
	GSM              *int     `json:"gsm"`
	DeckleMM         *float64 `json:"deckle_mm"`
	GrainMM          *float64 `json:"grain_mm"`
	SellerComments   string   `json:"seller_comments"`
	StockDescription string   `json:"stock_description"`
}
