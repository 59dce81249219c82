// Package export builds a full data bundle for an owner and serves it
// through short-lived signed URLs.
package export

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/adapter/objectstore"
	"github.com/resilientme/backend/internal/domain"
)

type eventRepo interface {
	ListSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]domain.Event, error)
}

type challengeRepo interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Challenge, error)
}

type insightRepo interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*domain.InsightSet, error)
}

type urlSigner interface {
	Sign(name string, now time.Time) (string, error)
	Verify(tokenString string) (string, error)
}

type limiter interface {
	Allow(ctx context.Context, ownerID uuid.UUID, actionKey string) error
}

// Service implements data export.
type Service struct {
	events     eventRepo
	challenges challengeRepo
	insights   insightRepo
	store      objectstore.Store
	signer     urlSigner
	limiter    limiter
	now        func() time.Time
	log        *slog.Logger
}

// NewService creates a new export service.
func NewService(
	log *slog.Logger,
	events eventRepo,
	challenges challengeRepo,
	insights insightRepo,
	store objectstore.Store,
	signer urlSigner,
	limiter limiter,
) *Service {
	return &Service{
		events:     events,
		challenges: challenges,
		insights:   insights,
		store:      store,
		signer:     signer,
		limiter:    limiter,
		now:        time.Now,
		log:        log.With("service", "export"),
	}
}
