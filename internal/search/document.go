package search

import (
	"fmt"
	"strings"

	"github.com/papermart/listing-service/internal/model"
)

// Number of leading description words fed to the completion suggester.
const suggestDescriptionWords = 3

// BuildDocument derives the search document for a listing. This is the single
// derivation path for both FullSync and IndexListing: a full resync and an
// incremental update must produce identical documents for the same listing.
func BuildDocument(l *model.Listing) model.SearchDocument {
	doc := model.SearchDocument{
		TransID:          l.TransID,
		Make:             l.MakeName,
		Grade:            l.GradeName,
		Brand:            l.BrandName,
		GroupID:          l.GroupID,
		MemberID:         l.MemberID,
		StockStatus:      l.StockStatus,
		OfferUnit:        l.OfferUnit,
		OfferPrice:       l.OfferPrice,
		Quantity:         l.Quantity,
		CreatedByName:    l.SellerName,
		CreatedByCompany: l.SellerCompany,
		DealCreatedAt:    l.CreatedAt,
		DealUpdatedAt:    l.UpdatedAt,
	}

	if l.GSM != nil {
		doc.GSM = *l.GSM
	}
	if l.DeckleMM != nil {
		doc.DeckleMM = *l.DeckleMM
	}
	if l.GrainMM != nil {
		doc.GrainMM = *l.GrainMM
	}
	if l.SellerComments != nil {
		doc.SellerComments = *l.SellerComments
	}
	if l.StockDescription != nil {
		doc.StockDescription = *l.StockDescription
	}

	doc.Dimensions = dimensionString(l.DeckleMM, l.GrainMM)
	doc.FullDescription = fullDescription(&doc)
	doc.Suggest = suggestField(&doc)

	return doc
}

// dimensionString renders deckle x grain in centimeters. Empty when either
// dimension is missing: a one-sided size is not displayable.
func dimensionString(deckleMM, grainMM *float64) string {
	if deckleMM == nil || grainMM == nil {
		return ""
	}
	return fmt.Sprintf("%.1f cm x %.1f cm", *deckleMM/10, *grainMM/10)
}

// fullDescription is the default full-text search target: make, brand, grade,
// grammage, dimensions, stock description and seller comments joined into one
// string, skipping absent parts.
func fullDescription(doc *model.SearchDocument) string {
	parts := make([]string, 0, 7)
	for _, p := range []string{doc.Make, doc.Brand, doc.Grade} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if doc.GSM > 0 {
		parts = append(parts, fmt.Sprintf("%d GSM", doc.GSM))
	}
	if doc.Dimensions != "" {
		parts = append(parts, doc.Dimensions)
	}
	if doc.StockDescription != "" {
		parts = append(parts, doc.StockDescription)
	}
	if doc.SellerComments != "" {
		parts = append(parts, doc.SellerComments)
	}
	return strings.Join(parts, " ")
}

// suggestField collects completion inputs: make, brand, grade and the leading
// words of the stock description, deduplicated, tagged with the listing's
// group as category context.
func suggestField(doc *model.SearchDocument) model.SuggestField {
	seen := make(map[string]struct{})
	inputs := make([]string, 0, 4)

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		inputs = append(inputs, s)
	}

	add(doc.Make)
	add(doc.Brand)
	add(doc.Grade)

	if words := strings.Fields(doc.StockDescription); len(words) > 0 {
		n := suggestDescriptionWords
		if len(words) < n {
			n = len(words)
		}
		add(strings.Join(words[:n], " "))
	}

	field := model.SuggestField{Input: inputs}
	if doc.GroupID != "" {
		field.Contexts = map[string][]string{"category": {doc.GroupID}}
	}
	return field
}
