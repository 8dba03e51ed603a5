package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/papermart/listing-service/internal/auth"
	"github.com/papermart/listing-service/internal/listing"
	"github.com/papermart/listing-service/internal/listing/dto"
	"github.com/papermart/listing-service/pkg/logger"
	"go.uber.org/zap"
)

type ListingHandler struct {
	uc     listing.UseCase
	logger logger.ZapLogger
}

func NewListingHandler(uc listing.UseCase, log logger.ZapLogger) *ListingHandler {
	return &ListingHandler{uc: uc, logger: log}
}

// CreateListing handles POST /api/listings.
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	memberID := auth.MemberID(r)
	if memberID == "" {
		writeError(w, http.StatusUnauthorized, "missing member identity")
		return
	}

	var input dto.CreateListingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	input.MemberID = memberID

	l, err := h.uc.CreateListing(r.Context(), &input)
	if err != nil {
		h.writeUseCaseError(w, err, "create listing failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    l,
	})
}

// GetListing handles GET /api/listings/{id}.
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	transID := mux.Vars(r)["id"]

	l, err := h.uc.GetListing(r.Context(), transID)
	if err != nil {
		h.writeUseCaseError(w, err, "get listing failed")
		return
	}
	if l == nil {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    l,
	})
}

// ListListings handles GET /api/listings.
func (h *ListingHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := &dto.ListingFilters{
		MemberID:  q.Get("memberId"),
		GroupID:   q.Get("groupId"),
		MakeID:    q.Get("makeId"),
		Status:    q.Get("status"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Page:      queryInt(q.Get("page"), 1),
		PageSize:  queryInt(q.Get("pageSize"), 20),
	}

	listings, count, err := h.uc.ListListings(r.Context(), filters)
	if err != nil {
		h.writeUseCaseError(w, err, "list listings failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    listings,
		"total":   count,
	})
}

// UpdateListing handles PUT /api/listings/{id}.
func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	memberID := auth.MemberID(r)
	if memberID == "" {
		writeError(w, http.StatusUnauthorized, "missing member identity")
		return
	}

	var input dto.UpdateListingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	input.TransID = mux.Vars(r)["id"]
	input.MemberID = memberID

	l, err := h.uc.UpdateListing(r.Context(), &input)
	if err != nil {
		h.writeUseCaseError(w, err, "update listing failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    l,
	})
}

// MarkSold handles POST /api/listings/{id}/sold.
func (h *ListingHandler) MarkSold(w http.ResponseWriter, r *http.Request) {
	memberID := auth.MemberID(r)
	if memberID == "" {
		writeError(w, http.StatusUnauthorized, "missing member identity")
		return
	}

	if err := h.uc.MarkSold(r.Context(), mux.Vars(r)["id"], memberID); err != nil {
		h.writeUseCaseError(w, err, "mark sold failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// DeleteListing handles DELETE /api/listings/{id}.
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	memberID := auth.MemberID(r)
	if memberID == "" {
		writeError(w, http.StatusUnauthorized, "missing member identity")
		return
	}

	if err := h.uc.DeleteListing(r.Context(), mux.Vars(r)["id"], memberID); err != nil {
		h.writeUseCaseError(w, err, "delete listing failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *ListingHandler) writeUseCaseError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, listing.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, listing.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, listing.ErrInvalidInput), errors.Is(err, listing.ErrInvalidHierarchy):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(msg, zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
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

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	if v, err := strconv.Atoi(raw); err == nil && v > 0 {
		return v
	}
	return fallback
}
