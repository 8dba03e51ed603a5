package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/papermart/listing-service/internal/listing"
	"github.com/papermart/listing-service/internal/search"
	"github.com/papermart/listing-service/internal/search/dto"
	"github.com/papermart/listing-service/pkg/logger"
	"go.uber.org/zap"
)

type SearchHandler struct {
	engine    search.Engine
	listingUC listing.UseCase
	logger    logger.ZapLogger
}

func NewSearchHandler(engine search.Engine, listingUC listing.UseCase, log logger.ZapLogger) *SearchHandler {
	return &SearchHandler{
		engine:    engine,
		listingUC: listingUC,
		logger:    log,
	}
}

// Search handles POST /api/search/search.
//
// An engine failure is a 500, never an empty result set: the UI renders an
// error banner for failures and an empty-state message for zero hits, and
// the two must stay distinguishable.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		writeError(w, http.StatusServiceUnavailable, "search is unavailable")
		return
	}

	var input dto.SearchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	result, err := h.engine.Search(r.Context(), &input)
	if err != nil {
		if errors.Is(err, dto.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "search engine error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"hits":         result.Hits,
		"total":        result.Total,
		"aggregations": result.Aggregations,
	})
}

// Suggestions handles GET /api/search/suggestions?q=<prefix>&category=<groupID>.
//
// Autocomplete is best-effort UX: an engine failure degrades to an empty
// suggestion list instead of an error.
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":     true,
			"suggestions": []dto.Suggestion{},
		})
		return
	}

	q := r.URL.Query()
	suggestions, err := h.engine.Suggest(r.Context(), q.Get("q"), q.Get("category"))
	if err != nil {
		h.logger.Error("suggest failed", zap.String("prefix", q.Get("q")), zap.Error(err))
		suggestions = []dto.Suggestion{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"suggestions": suggestions,
	})
}

// Sync handles POST /api/search/sync.
//
// Manually triggers a full index rebuild from the listing repository.
func (h *SearchHandler) Sync(w http.ResponseWriter, r *http.Request) {
	report, err := h.listingUC.SyncSearchIndex(r.Context())
	if err != nil {
		h.logger.Error("manual index sync failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "index sync failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"total":   report.Total,
		"indexed": report.Indexed,
		"failed":  report.Failed,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}
