package rest

import (
	"context"
	"net/http"
)

type moderationService interface {
	BackfillStatus(ctx context.Context, limit int) (int, error)
}

// AdminHandler serves moderation maintenance endpoints. The service layer
// enforces the admin claim; this handler only shapes the request.
type AdminHandler struct {
	moderation moderationService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(moderation moderationService) *AdminHandler {
	return &AdminHandler{moderation: moderation}
}

type backfillResponse struct {
	Updated int `json:"updated"`
}

// BackfillPostStatus recomputes the visibility of posts whose report
// counters crossed the hide threshold before auto-hiding existed.
func (h *AdminHandler) BackfillPostStatus(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 0)

	updated, err := h.moderation.BackfillStatus(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, backfillResponse{Updated: updated})
}
