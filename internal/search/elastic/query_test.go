package elastic

import (
	"encoding/json"
	"testing"

	"github.com/papermart/listing-service/internal/search/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolQuery(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	q, ok := body["query"].(map[string]interface{})
	require.True(t, ok)
	b, ok := q["bool"].(map[string]interface{})
	require.True(t, ok)
	return b
}

func TestBuildSearchBodyBrowseAll(t *testing.T) {
	body := buildSearchBody(&dto.SearchInput{})
	bq := boolQuery(t, body)

	assert.NotContains(t, bq, "should")
	must, ok := bq["must"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, must, 1)
	assert.Contains(t, must[0], "match_all")

	assert.Equal(t, 0, body["from"])
	assert.Equal(t, defaultPageSize, body["size"])
	assert.Contains(t, body, "aggs")
	assert.Contains(t, body, "highlight")
	assert.NotContains(t, body, "sort")
}

func TestBuildSearchBodyFreeText(t *testing.T) {
	body := buildSearchBody(&dto.SearchInput{Query: "agro wove"})
	bq := boolQuery(t, body)

	assert.NotContains(t, bq, "must")
	assert.Equal(t, 1, bq["minimum_should_match"])

	should, ok := bq["should"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, should, 7)

	// Phrase match on the composite field carries the highest boost.
	phrase := should[0]["match_phrase"].(map[string]interface{})["full_description"].(map[string]interface{})
	assert.Equal(t, 3, phrase["boost"])

	prefix := should[6]["multi_match"].(map[string]interface{})
	assert.Equal(t, "bool_prefix", prefix["type"])
	assert.Equal(t, autocompleteFields, prefix["fields"])
}

func TestBuildFilterClausesDefaultStatus(t *testing.T) {
	clauses := buildFilterClauses(&dto.Filters{})

	require.Len(t, clauses, 1)
	assert.Equal(t, map[string]interface{}{
		"term": map[string]interface{}{"StockStatus": "active"},
	}, clauses[0])
}

func TestBuildFilterClausesExplicitStatuses(t *testing.T) {
	clauses := buildFilterClauses(&dto.Filters{Statuses: []string{"active", "sold"}})

	require.Len(t, clauses, 1)
	assert.Equal(t, map[string]interface{}{
		"terms": map[string]interface{}{"StockStatus": []string{"active", "sold"}},
	}, clauses[0])
}

// Each dimension bound expands to range clauses on both axes in the same
// filter array, so a listing must satisfy deckle AND grain together.
func TestBuildFilterClausesDimensionBoundingBox(t *testing.T) {
	clauses := buildFilterClauses(&dto.Filters{
		DimensionsMin: &dto.DimensionBound{Deckle: 500, Grain: 600},
		DimensionsMax: &dto.DimensionBound{Deckle: 900, Grain: 1000},
	})

	assert.Contains(t, clauses, rangeBound("Deckle_mm", "gte", 500.0))
	assert.Contains(t, clauses, rangeBound("grain_mm", "gte", 600.0))
	assert.Contains(t, clauses, rangeBound("Deckle_mm", "lte", 900.0))
	assert.Contains(t, clauses, rangeBound("grain_mm", "lte", 1000.0))
}

func TestBuildFilterClausesRanges(t *testing.T) {
	min, max := 70.0, 120.0
	clauses := buildFilterClauses(&dto.Filters{
		Makes:  []string{"AgroWove"},
		GSMMin: &min,
		GSMMax: &max,
	})

	assert.Contains(t, clauses, termsClause("Make.keyword", []string{"AgroWove"}))
	assert.Contains(t, clauses, map[string]interface{}{
		"range": map[string]interface{}{"GSM": map[string]interface{}{"gte": 70.0, "lte": 120.0}},
	})
}

// Two payloads naming the same filters in different JSON order must build
// byte-identical query bodies.
func TestBuildSearchBodyFilterOrderIrrelevant(t *testing.T) {
	var a, b dto.SearchInput
	require.NoError(t, json.Unmarshal([]byte(
		`{"query":"kraft","filters":{"makes":["AgroWove"],"grades":["Writing"],"gsmMin":70,"statuses":["active"]}}`,
	), &a))
	require.NoError(t, json.Unmarshal([]byte(
		`{"filters":{"statuses":["active"],"gsmMin":70,"grades":["Writing"],"makes":["AgroWove"]},"query":"kraft"}`,
	), &b))

	bodyA, err := json.Marshal(buildSearchBody(&a))
	require.NoError(t, err)
	bodyB, err := json.Marshal(buildSearchBody(&b))
	require.NoError(t, err)
	assert.JSONEq(t, string(bodyA), string(bodyB))
}

func TestBuildSearchBodyPagination(t *testing.T) {
	body := buildSearchBody(&dto.SearchInput{Page: 3, PageSize: 25})
	assert.Equal(t, 50, body["from"])
	assert.Equal(t, 25, body["size"])

	body = buildSearchBody(&dto.SearchInput{Page: -2, PageSize: 5000})
	assert.Equal(t, 0, body["from"])
	assert.Equal(t, maxPageSize, body["size"])
}

func TestBuildSearchBodySortOverride(t *testing.T) {
	body := buildSearchBody(&dto.SearchInput{
		Sort: &dto.SortOption{Field: "OfferPrice", Order: "asc"},
	})

	assert.Equal(t, []map[string]interface{}{
		{"OfferPrice": map[string]interface{}{"order": "asc"}},
	}, body["sort"])
}

func TestBuildAggregationsCoverAllFacets(t *testing.T) {
	aggs := buildAggregations()
	for _, name := range []string{"makes", "brands", "grades", "companies", "gsm_stats", "price_stats"} {
		assert.Contains(t, aggs, name)
	}
}
