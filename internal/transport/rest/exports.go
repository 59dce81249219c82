package rest

import (
	"context"
	"net/http"

	"github.com/resilientme/backend/internal/domain"
)

type exportService interface {
	Create(ctx context.Context) (string, error)
	Download(ctx context.Context, token string) ([]byte, error)
}

// ExportHandler serves data export endpoints.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

type createExportResponse struct {
	URL string `json:"url"`
}

// Create builds a fresh export bundle and returns a time-limited signed URL.
func (h *ExportHandler) Create(w http.ResponseWriter, r *http.Request) {
	url, err := h.exports.Create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createExportResponse{URL: url})
}

// Download streams a bundle. The signed token in the query string is the
// only credential; this route is mounted outside the session middleware.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	data, err := h.exports.Download(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="export.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}
