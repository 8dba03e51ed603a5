package elastic

import (
	"context"
	"net/http"
	"testing"

	"github.com/papermart/listing-service/internal/search/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Prefixes below the minimum never produce index traffic.
func TestSuggestShortPrefixShortCircuits(t *testing.T) {
	engine, transport := newStubEngine(t)

	for _, prefix := range []string{"", "a", "  k  ", "\t"} {
		suggestions, err := engine.Suggest(context.Background(), prefix, "")
		require.NoError(t, err)
		assert.NotNil(t, suggestions)
		assert.Empty(t, suggestions)
	}
	assert.Zero(t, transport.calls)
}

func TestSuggestParsesAndDeduplicates(t *testing.T) {
	engine, transport := newStubEngine(t, esResponse(http.StatusOK, `{
		"suggest": {
			"listing_suggest": [
				{
					"options": [
						{"text": "AgroWove", "_score": 5.0, "_id": "trans-1"},
						{"text": "agrowove", "_score": 4.0, "_id": "trans-2"},
						{"text": "Agro based writing", "_score": 3.0, "_id": "trans-3"}
					]
				}
			]
		}
	}`))

	suggestions, err := engine.Suggest(context.Background(), "agro", "")
	require.NoError(t, err)
	assert.Equal(t, 1, transport.calls)

	require.Len(t, suggestions, 2)
	assert.Equal(t, dto.Suggestion{Text: "AgroWove", Score: 5.0, Source: "trans-1"}, suggestions[0])
	assert.Equal(t, dto.Suggestion{Text: "Agro based writing", Score: 3.0, Source: "trans-3"}, suggestions[1])
}

func TestSuggestCategoryContext(t *testing.T) {
	engine, transport := newStubEngine(t,
		esResponse(http.StatusOK, `{"suggest": {"listing_suggest": []}}`),
		esResponse(http.StatusOK, `{"suggest": {"listing_suggest": []}}`),
	)

	_, err := engine.Suggest(context.Background(), "agro", "grp-paper")
	require.NoError(t, err)
	_, err = engine.Suggest(context.Background(), "agro", "")
	require.NoError(t, err)

	require.Len(t, transport.bodies, 2)
	assert.Contains(t, transport.bodies[0], `"contexts":{"category":["grp-paper"]}`)
	assert.NotContains(t, transport.bodies[1], "contexts")
	assert.Contains(t, transport.bodies[0], `"skip_duplicates":true`)
	assert.Contains(t, transport.bodies[0], `"fuzziness":"AUTO"`)
}

func TestSuggestErrorPropagates(t *testing.T) {
	engine, _ := newStubEngine(t, esResponse(http.StatusServiceUnavailable,
		`{"error": {"type": "search_phase_execution_exception", "reason": "shard failure"}}`,
	))

	_, err := engine.Suggest(context.Background(), "agro", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search_phase_execution_exception")
}
