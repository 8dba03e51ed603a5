package handler

import (
	"encoding/json"
	"net/http"

	"github.com/papermart/listing-service/internal/hierarchy"
	"github.com/papermart/listing-service/pkg/logger"
)

type HierarchyHandler struct {
	uc     hierarchy.UseCase
	logger logger.ZapLogger
}

func NewHierarchyHandler(uc hierarchy.UseCase, log logger.ZapLogger) *HierarchyHandler {
	return &HierarchyHandler{uc: uc, logger: log}
}

// GetHierarchy handles GET /api/hierarchy.
//
// Always 200: a failed fetch serves empty collections and the client
// disables dependent form fields.
func (h *HierarchyHandler) GetHierarchy(w http.ResponseWriter, r *http.Request) {
	data := h.uc.GetHierarchy(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
	})
}
