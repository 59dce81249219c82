package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/resilientme/backend/internal/domain"
)

type statsService interface {
	GetScore(ctx context.Context) (*domain.DerivedScore, error)
	GetInsights(ctx context.Context) (*domain.InsightSet, error)
}

// StatsHandler serves the derived score and insight endpoints.
type StatsHandler struct {
	stats statsService
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(stats statsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

type scoreResponse struct {
	Score     int       `json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Score returns the caller's resilience score.
func (h *StatsHandler) Score(w http.ResponseWriter, r *http.Request) {
	score, err := h.stats.GetScore(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{Score: score.Score, UpdatedAt: score.UpdatedAt})
}

type insightsResponse struct {
	Insights  []domain.Insight `json:"insights"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Insights returns the caller's current insight set. A user with no
// detected patterns gets an empty list, not a 404.
func (h *StatsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	set, err := h.stats.GetInsights(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	insights := set.Insights
	if insights == nil {
		insights = []domain.Insight{}
	}
	writeJSON(w, http.StatusOK, insightsResponse{Insights: insights, UpdatedAt: set.UpdatedAt})
}
