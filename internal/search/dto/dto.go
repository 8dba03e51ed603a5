package dto

import (
	"errors"
	"fmt"

	"github.com/papermart/listing-service/internal/model"
)

var ErrInvalidInput = errors.New("invalid search input")

// Filters is a closed record: one field per filter kind rather than a generic
// key/value bag, so the conjunctive dimension rule is visible in the type
// system. Filter composition is order-independent by construction: two
// Filters with the same field values build the same query.
type Filters struct {
	Makes     []string `json:"makes,omitempty"`
	Brands    []string `json:"brands,omitempty"`
	Grades    []string `json:"grades,omitempty"`
	Companies []string `json:"companies,omitempty"`

	// Statuses overrides the default active-only restriction when set.
	Statuses []string `json:"statuses,omitempty"`

	GSMMin   *float64 `json:"gsmMin,omitempty"`
	GSMMax   *float64 `json:"gsmMax,omitempty"`
	PriceMin *float64 `json:"priceMin,omitempty"`
	PriceMax *float64 `json:"priceMax,omitempty"`

	DimensionsMin *DimensionBound `json:"dimensionsMin,omitempty"`
	DimensionsMax *DimensionBound `json:"dimensionsMax,omitempty"`
}

// DimensionBound is a joint bounding box corner: a "min" bound requires BOTH
// deckle and grain to clear their threshold, a "max" bound likewise. The two
// halves are never applied independently; supply both or neither.
type DimensionBound struct {
	Deckle float64 `json:"deckle"`
	Grain  float64 `json:"grain"`
}

func (f *Filters) Validate() error {
	if err := validateBound("dimensionsMin", f.DimensionsMin); err != nil {
		return err
	}
	if err := validateBound("dimensionsMax", f.DimensionsMax); err != nil {
		return err
	}
	return nil
}

func validateBound(name string, b *DimensionBound) error {
	if b == nil {
		return nil
	}
	if b.Deckle <= 0 || b.Grain <= 0 {
		return fmt.Errorf("%w: %s requires both deckle and grain", ErrInvalidInput, name)
	}
	return nil
}

// Sortable index fields. A sort instruction outside this set is rejected.
var sortFields = map[string]struct{}{
	"OfferPrice":      {},
	"GSM":             {},
	"quantity":        {},
	"deal_created_at": {},
	"deal_updated_at": {},
}

// SortOption overrides relevance ordering entirely when present.
type SortOption struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

func (s *SortOption) Validate() error {
	if _, ok := sortFields[s.Field]; !ok {
		return fmt.Errorf("%w: unsortable field %q", ErrInvalidInput, s.Field)
	}
	if s.Order != "asc" && s.Order != "desc" {
		return fmt.Errorf("%w: sort order must be asc or desc", ErrInvalidInput)
	}
	return nil
}

type SearchInput struct {
	Query    string      `json:"query"`
	Filters  Filters     `json:"filters"`
	Sort     *SortOption `json:"sort,omitempty"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

func (in *SearchInput) Validate() error {
	if err := in.Filters.Validate(); err != nil {
		return err
	}
	if in.Sort != nil {
		if err := in.Sort.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type Hit struct {
	Document   model.SearchDocument `json:"document"`
	Score      float64              `json:"score"`
	Highlights map[string][]string  `json:"highlights,omitempty"`
}

type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type Stats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
}

// Aggregations reflect the full filtered set, not just the current page.
type Aggregations struct {
	Makes     []Bucket `json:"makes"`
	Brands    []Bucket `json:"brands"`
	Grades    []Bucket `json:"grades"`
	Companies []Bucket `json:"companies"`
	GSM       Stats    `json:"gsm"`
	Price     Stats    `json:"price"`
}

type SearchResult struct {
	Hits         []Hit        `json:"hits"`
	Total        int          `json:"total"`
	Aggregations Aggregations `json:"aggregations"`
}

type Suggestion struct {
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
	Source string  `json:"source"`
}
