package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	listdto "github.com/papermart/listing-service/internal/listing/dto"
	"github.com/papermart/listing-service/internal/model"
	"github.com/papermart/listing-service/internal/search"
	"github.com/papermart/listing-service/internal/search/dto"
	"github.com/papermart/listing-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	result      *dto.SearchResult
	searchErr   error
	suggestions []dto.Suggestion
	suggestErr  error
}

func (f *fakeEngine) Search(_ context.Context, _ *dto.SearchInput) (*dto.SearchResult, error) {
	return f.result, f.searchErr
}

func (f *fakeEngine) Suggest(_ context.Context, _, _ string) ([]dto.Suggestion, error) {
	return f.suggestions, f.suggestErr
}

type fakeListingUC struct {
	report  *search.SyncReport
	syncErr error
}

func (f *fakeListingUC) CreateListing(_ context.Context, _ *listdto.CreateListingInput) (*model.Listing, error) {
	return nil, nil
}

func (f *fakeListingUC) GetListing(_ context.Context, _ string) (*model.Listing, error) {
	return nil, nil
}

func (f *fakeListingUC) ListListings(_ context.Context, _ *listdto.ListingFilters) ([]model.Listing, int, error) {
	return nil, 0, nil
}

func (f *fakeListingUC) UpdateListing(_ context.Context, _ *listdto.UpdateListingInput) (*model.Listing, error) {
	return nil, nil
}

func (f *fakeListingUC) MarkSold(_ context.Context, _, _ string) error      { return nil }
func (f *fakeListingUC) DeleteListing(_ context.Context, _, _ string) error { return nil }

func (f *fakeListingUC) SyncSearchIndex(_ context.Context) (*search.SyncReport, error) {
	return f.report, f.syncErr
}

func (f *fakeListingUC) ReindexListing(_ context.Context, _ string) error  { return nil }
func (f *fakeListingUC) RemoveFromIndex(_ context.Context, _ string) error { return nil }

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSearchReturnsResult(t *testing.T) {
	engine := &fakeEngine{result: &dto.SearchResult{
		Hits:  []dto.Hit{{Score: 2.1}},
		Total: 1,
	}}
	h := NewSearchHandler(engine, &fakeListingUC{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/search/search", strings.NewReader(`{"query":"agro"}`))
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["total"])
}

// An engine failure must surface as an error status, never as an empty
// result set.
func TestSearchEngineFailureIsAnError(t *testing.T) {
	engine := &fakeEngine{searchErr: errors.New("cluster unreachable")}
	h := NewSearchHandler(engine, &fakeListingUC{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/search/search", strings.NewReader(`{"query":"agro"}`))
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "hits")
}

func TestSearchInvalidInput(t *testing.T) {
	engine := &fakeEngine{searchErr: dto.ErrInvalidInput}
	h := NewSearchHandler(engine, &fakeListingUC{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/search/search", strings.NewReader(`{"query":"agro"}`))
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchMalformedPayload(t *testing.T) {
	h := NewSearchHandler(&fakeEngine{}, &fakeListingUC{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/search/search", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchUnavailableWithoutEngine(t *testing.T) {
	h := NewSearchHandler(nil, &fakeListingUC{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/search/search", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

// Autocomplete fails open: an engine error yields an empty suggestion list
// with a 200, not an error page mid-keystroke.
func TestSuggestionsFailOpen(t *testing.T) {
	engine := &fakeEngine{suggestErr: errors.New("cluster unreachable")}
	h := NewSearchHandler(engine, &fakeListingUC{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/search/suggestions?q=agro", nil)
	rec := httptest.NewRecorder()
	h.Suggestions(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []interface{}{}, body["suggestions"])
}

func TestSuggestionsReturnsMatches(t *testing.T) {
	engine := &fakeEngine{suggestions: []dto.Suggestion{
		{Text: "AgroWove", Score: 5, Source: "trans-1"},
	}}
	h := NewSearchHandler(engine, &fakeListingUC{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/search/suggestions?q=agro&category=grp-paper", nil)
	rec := httptest.NewRecorder()
	h.Suggestions(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	suggestions, ok := body["suggestions"].([]interface{})
	require.True(t, ok)
	require.Len(t, suggestions, 1)
}

func TestSyncReportsOutcome(t *testing.T) {
	uc := &fakeListingUC{report: &search.SyncReport{Total: 5, Indexed: 4, Failed: 1}}
	h := NewSearchHandler(&fakeEngine{}, uc, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/search/sync", nil)
	rec := httptest.NewRecorder()
	h.Sync(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(5), body["total"])
	assert.Equal(t, float64(4), body["indexed"])
	assert.Equal(t, float64(1), body["failed"])
}

func TestSyncFailure(t *testing.T) {
	uc := &fakeListingUC{syncErr: errors.New("search index unavailable")}
	h := NewSearchHandler(&fakeEngine{}, uc, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/search/sync", nil)
	rec := httptest.NewRecorder()
	h.Sync(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
