package elastic

import (
	"github.com/papermart/listing-service/internal/model"
	"github.com/papermart/listing-service/internal/search/dto"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Incremental-match fields: the search_as_you_type subfields (and their
// shingle companions) of the four autocomplete-enabled fields.
var autocompleteFields = []string{
	"Make.autocomplete", "Make.autocomplete._2gram", "Make.autocomplete._3gram",
	"Brand.autocomplete", "Brand.autocomplete._2gram", "Brand.autocomplete._3gram",
	"Grade.autocomplete", "Grade.autocomplete._2gram", "Grade.autocomplete._3gram",
	"stock_description.autocomplete", "stock_description.autocomplete._2gram",
	"stock_description.autocomplete._3gram", "stock_description.autocomplete._4gram",
}

// buildSearchBody translates a SearchInput into the Elasticsearch request
// body. Free text is deliberately permissive: should clauses with
// minimum_should_match=1 (OR semantics), never a mandatory match. Structured
// filters live in the filter context so they gate results without touching
// relevance scores. Aggregations are always attached so facet counts track
// the full filtered set.
func buildSearchBody(in *dto.SearchInput) map[string]interface{} {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	boolQuery := map[string]interface{}{
		"filter": buildFilterClauses(&in.Filters),
	}

	if should := buildShouldClauses(in.Query); len(should) > 0 {
		boolQuery["should"] = should
		boolQuery["minimum_should_match"] = 1
	} else {
		// Browse-all: no text means every (filtered) listing matches.
		boolQuery["must"] = []map[string]interface{}{
			{"match_all": map[string]interface{}{}},
		}
	}

	body := map[string]interface{}{
		"query":     map[string]interface{}{"bool": boolQuery},
		"from":      (page - 1) * size,
		"size":      size,
		"aggs":      buildAggregations(),
		"highlight": buildHighlight(),
	}

	if in.Sort != nil {
		body["sort"] = []map[string]interface{}{
			{in.Sort.Field: map[string]interface{}{"order": in.Sort.Order}},
		}
	}

	return body
}

func buildShouldClauses(text string) []map[string]interface{} {
	if text == "" {
		return nil
	}

	return []map[string]interface{}{
		// Exact phrase on the default full-text target, boosted highest.
		{"match_phrase": map[string]interface{}{
			"full_description": map[string]interface{}{"query": text, "boost": 3},
		}},
		{"match": map[string]interface{}{
			"Make": map[string]interface{}{"query": text, "fuzziness": "AUTO", "boost": 2.5},
		}},
		{"match": map[string]interface{}{
			"Brand": map[string]interface{}{"query": text, "fuzziness": "AUTO", "boost": 2.5},
		}},
		{"match": map[string]interface{}{
			"Grade": map[string]interface{}{"query": text, "fuzziness": "AUTO", "boost": 2.5},
		}},
		{"match": map[string]interface{}{
			"stock_description": map[string]interface{}{"query": text, "fuzziness": "AUTO", "boost": 2},
		}},
		// Catch-all fuzzy match, unboosted.
		{"match": map[string]interface{}{
			"full_description": map[string]interface{}{"query": text, "fuzziness": "AUTO", "boost": 1},
		}},
		// Matches while the user is still typing.
		{"multi_match": map[string]interface{}{
			"query":  text,
			"type":   "bool_prefix",
			"fields": autocompleteFields,
		}},
	}
}

func buildFilterClauses(f *dto.Filters) []map[string]interface{} {
	clauses := []map[string]interface{}{}

	// Sold and inactive stock is excluded unless the caller asks for it.
	if len(f.Statuses) > 0 {
		clauses = append(clauses, termsClause("StockStatus", f.Statuses))
	} else {
		clauses = append(clauses, map[string]interface{}{
			"term": map[string]interface{}{"StockStatus": model.StatusActive},
		})
	}

	if len(f.Makes) > 0 {
		clauses = append(clauses, termsClause("Make.keyword", f.Makes))
	}
	if len(f.Brands) > 0 {
		clauses = append(clauses, termsClause("Brand.keyword", f.Brands))
	}
	if len(f.Grades) > 0 {
		clauses = append(clauses, termsClause("Grade.keyword", f.Grades))
	}
	if len(f.Companies) > 0 {
		clauses = append(clauses, termsClause("created_by_company.keyword", f.Companies))
	}

	if c := rangeClause("GSM", f.GSMMin, f.GSMMax); c != nil {
		clauses = append(clauses, c)
	}
	if c := rangeClause("OfferPrice", f.PriceMin, f.PriceMax); c != nil {
		clauses = append(clauses, c)
	}

	// Dimension bounds are a joint bounding box: both halves of a bound are
	// applied together inside the same AND context.
	if f.DimensionsMin != nil {
		clauses = append(clauses,
			rangeBound("Deckle_mm", "gte", f.DimensionsMin.Deckle),
			rangeBound("grain_mm", "gte", f.DimensionsMin.Grain),
		)
	}
	if f.DimensionsMax != nil {
		clauses = append(clauses,
			rangeBound("Deckle_mm", "lte", f.DimensionsMax.Deckle),
			rangeBound("grain_mm", "lte", f.DimensionsMax.Grain),
		)
	}

	return clauses
}

func termsClause(field string, values []string) map[string]interface{} {
	return map[string]interface{}{
		"terms": map[string]interface{}{field: values},
	}
}

func rangeClause(field string, min, max *float64) map[string]interface{} {
	if min == nil && max == nil {
		return nil
	}
	bounds := map[string]interface{}{}
	if min != nil {
		bounds["gte"] = *min
	}
	if max != nil {
		bounds["lte"] = *max
	}
	return map[string]interface{}{
		"range": map[string]interface{}{field: bounds},
	}
}

func rangeBound(field, op string, value float64) map[string]interface{} {
	return map[string]interface{}{
		"range": map[string]interface{}{
			field: map[string]interface{}{op: value},
		},
	}
}

func buildAggregations() map[string]interface{} {
	return map[string]interface{}{
		"makes":     termsAggregation("Make.keyword", 50),
		"brands":    termsAggregation("Brand.keyword", 50),
		"grades":    termsAggregation("Grade.keyword", 50),
		"companies": termsAggregation("created_by_company.keyword", 30),
		"gsm_stats": map[string]interface{}{
			"stats": map[string]interface{}{"field": "GSM"},
		},
		"price_stats": map[string]interface{}{
			"stats": map[string]interface{}{"field": "OfferPrice"},
		},
	}
}

func termsAggregation(field string, size int) map[string]interface{} {
	return map[string]interface{}{
		"terms": map[string]interface{}{"field": field, "size": size},
	}
}

func buildHighlight() map[string]interface{} {
	return map[string]interface{}{
		"pre_tags":  []string{"<em>"},
		"post_tags": []string{"</em>"},
		"fields": map[string]interface{}{
			"full_description":  map[string]interface{}{},
			"stock_description": map[string]interface{}{},
			"Make":              map[string]interface{}{},
			"Brand":             map[string]interface{}{},
			"Grade":             map[string]interface{}{},
		},
	}
}
