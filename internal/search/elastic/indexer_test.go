package elastic

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/papermart/listing-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexableListing(transID string) model.Listing {
	gsm := 80
	return model.Listing{
		TransID:     transID,
		GroupID:     "grp-paper",
		MemberID:    "mem-1",
		StockStatus: model.StatusActive,
		OfferUnit:   "MT",
		OfferPrice:  50,
		Quantity:    10,
		GSM:         &gsm,
		MakeName:    "AgroWove",
		GradeName:   "Writing",
		BrandName:   "RiverMill",
	}
}

func TestEnsureIndexAlreadyExists(t *testing.T) {
	engine, transport := newStubEngine(t, esResponse(http.StatusOK, ""))

	require.NoError(t, engine.EnsureIndex(context.Background()))
	assert.Equal(t, 1, transport.calls)
}

func TestEnsureIndexCreatesWithMapping(t *testing.T) {
	engine, transport := newStubEngine(t,
		esResponse(http.StatusNotFound, ""),
		esResponse(http.StatusOK, `{"acknowledged": true}`),
	)

	require.NoError(t, engine.EnsureIndex(context.Background()))
	require.Equal(t, 2, transport.calls)
	require.Len(t, transport.bodies, 1)

	mapping := transport.bodies[0]
	assert.Contains(t, mapping, "edge_ngram")
	assert.Contains(t, mapping, "search_as_you_type")
	assert.Contains(t, mapping, `"completion"`)
}

func TestFullSyncEmptyInputSkipsRequest(t *testing.T) {
	engine, transport := newStubEngine(t)

	report, err := engine.FullSync(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, report.Total)
	assert.Zero(t, transport.calls)
}

func TestFullSyncReportsPartialFailures(t *testing.T) {
	engine, transport := newStubEngine(t, esResponse(http.StatusOK, `{
		"errors": true,
		"items": [
			{"index": {"_id": "trans-1", "status": 201}},
			{"index": {"_id": "trans-2", "status": 400, "error": {"type": "mapper_parsing_exception", "reason": "bad field"}}},
			{"index": {"_id": "trans-3", "status": 200}}
		]
	}`))

	listings := []model.Listing{
		indexableListing("trans-1"),
		indexableListing("trans-2"),
		indexableListing("trans-3"),
	}

	report, err := engine.FullSync(context.Background(), listings)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Indexed)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "trans-2", report.Failures[0].TransID)
	assert.Contains(t, report.Failures[0].Reason, "mapper_parsing_exception")

	// One bulk request, NDJSON: an action line and a source line per listing.
	require.Len(t, transport.bodies, 1)
	lines := strings.Split(strings.TrimRight(transport.bodies[0], "\n"), "\n")
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[0], `"_id":"trans-1"`)
}

func TestDeleteListingMissingDocumentIsNotAnError(t *testing.T) {
	engine, _ := newStubEngine(t, esResponse(http.StatusNotFound,
		`{"result": "not_found"}`,
	))

	assert.NoError(t, engine.DeleteListing(context.Background(), "gone"))
}

func TestIndexListingPropagatesFailure(t *testing.T) {
	engine, _ := newStubEngine(t, esResponse(http.StatusBadRequest,
		`{"error": {"type": "mapper_parsing_exception", "reason": "bad field"}}`,
	))

	l := indexableListing("trans-1")
	err := engine.IndexListing(context.Background(), &l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapper_parsing_exception")
}
