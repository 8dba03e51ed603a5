package model

import "time"

// SearchDocument is the denormalized projection of a Listing stored in the
// search index. JSON field names are the index field names; changing them
// breaks compatibility with existing indices.
type SearchDocument struct {
	TransID          string       `json:"TransID"`
	Make             string       `json:"Make"`
	Grade            string       `json:"Grade"`
	Brand            string       `json:"Brand"`
	GSM              int          `json:"GSM"`
	DeckleMM         float64      `json:"Deckle_mm"`
	GrainMM          float64      `json:"grain_mm"`
	GroupID          string       `json:"groupID"`
	MemberID         string       `json:"memberID"`
	StockStatus      string       `json:"StockStatus"`
	OfferUnit        string       `json:"OfferUnit"`
	SellerComments   string       `json:"Seller_comments"`
	StockDescription string       `json:"stock_description"`
	OfferPrice       float64      `json:"OfferPrice"`
	Quantity         float64      `json:"quantity"`
	CreatedByName    string       `json:"created_by_name"`
	CreatedByCompany string       `json:"created_by_company"`
	DealCreatedAt    time.Time    `json:"deal_created_at"`
	DealUpdatedAt    time.Time    `json:"deal_updated_at"`
	Dimensions       string       `json:"dimensions"`
	FullDescription  string       `json:"full_description"`
	Suggest          SuggestField `json:"suggest"`
}

// SuggestField feeds the completion suggester. Inputs are the candidate
// completion strings; the category context scopes suggestions to a product
// group.
type SuggestField struct {
	Input    []string            `json:"input"`
	Contexts map[string][]string `json:"contexts,omitempty"`
}
