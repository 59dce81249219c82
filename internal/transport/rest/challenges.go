package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/resilientme/backend/internal/domain"
)

type challengeService interface {
	Today(ctx context.Context) (*domain.Challenge, error)
}

// ChallengeHandler serves daily challenge endpoints.
type ChallengeHandler struct {
	challenges challengeService
}

// NewChallengeHandler creates a ChallengeHandler.
func NewChallengeHandler(challenges challengeService) *ChallengeHandler {
	return &ChallengeHandler{challenges: challenges}
}

type challengeResponse struct {
	Day          string `json:"day"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Difficulty   string `json:"difficulty"`
	Points       int    `json:"points"`
	TimeEstimate string `json:"time_estimate"`
}

// Today returns the caller's challenge for the current day, generating it
// on demand if the nightly run has not reached them yet.
func (h *ChallengeHandler) Today(w http.ResponseWriter, r *http.Request) {
	ch, err := h.challenges.Today(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, challengeResponse{
		Day:          ch.Day.Format(time.DateOnly),
		Title:        ch.Title,
		Description:  ch.Description,
		Category:     ch.Category.String(),
		Difficulty:   ch.Difficulty,
		Points:       ch.Points,
		TimeEstimate: ch.TimeEstimate,
	})
}
