// Package challenge generates the daily self-care content item per owner.
package challenge

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
)

type challengeRepo interface {
	Upsert(ctx context.Context, ch *domain.Challenge) error
	GetForDay(ctx context.Context, ownerID uuid.UUID, day time.Time) (*domain.Challenge, error)
}

type userRepo interface {
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

// Service implements daily challenge generation.
type Service struct {
	challenges challengeRepo
	users      userRepo
	now        func() time.Time
	log        *slog.Logger
}

// NewService creates a new challenge service.
func NewService(
	log *slog.Logger,
	challenges challengeRepo,
	users userRepo,
) *Service {
	return &Service{
		challenges: challenges,
		users:      users,
		now:        time.Now,
		log:        log.With("service", "challenge"),
	}
}
