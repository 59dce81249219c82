package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
	"github.com/resilientme/backend/internal/service/entry"
)

type entryService interface {
	Create(ctx context.Context, input entry.CreateInput) (*domain.Event, bool, error)
	List(ctx context.Context, limit int) ([]domain.Event, error)
}

// EntryHandler serves the rejection ledger endpoints.
type EntryHandler struct {
	entries entryService
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(entries entryService) *EntryHandler {
	return &EntryHandler{entries: entries}
}

type createEntryRequest struct {
	ID         uuid.UUID `json:"id"`
	Category   string    `json:"category"`
	Impact     int       `json:"impact"`
	Note       *string   `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type entryResponse struct {
	ID         uuid.UUID `json:"id"`
	Category   string    `json:"category"`
	Impact     int       `json:"impact"`
	Note       *string   `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func toEntryResponse(ev *domain.Event) entryResponse {
	return entryResponse{
		ID:         ev.ID,
		Category:   ev.Category.String(),
		Impact:     ev.Impact,
		Note:       ev.Note,
		OccurredAt: ev.OccurredAt,
		CreatedAt:  ev.CreatedAt,
	}
}

// Create accepts one event. A fresh accept returns 201; a replay of an
// already-accepted ID returns 200 with the same body, so outbox retries
// are safe to repeat.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ev, accepted, err := h.entries.Create(r.Context(), entry.CreateInput{
		ID:         req.ID,
		Category:   req.Category,
		Impact:     req.Impact,
		Note:       req.Note,
		OccurredAt: req.OccurredAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if accepted {
		status = http.StatusCreated
	}
	writeJSON(w, status, toEntryResponse(ev))
}

// List returns the caller's events, newest first.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 0)

	events, err := h.entries.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]entryResponse, len(events))
	for i := range events {
		out[i] = toEntryResponse(&events[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func parseQueryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
