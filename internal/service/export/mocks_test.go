package export

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
)

var _ eventRepo = &eventRepoMock{}

type eventRepoMock struct {
	ListSinceFunc func(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]domain.Event, error)
}

func (mock *eventRepoMock) ListSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]domain.Event, error) {
	if mock.ListSinceFunc == nil {
		panic("eventRepoMock.ListSinceFunc: method is nil but eventRepo.ListSince was just called")
	}
	return mock.ListSinceFunc(ctx, ownerID, since)
}

var _ challengeRepo = &challengeRepoMock{}

type challengeRepoMock struct {
	ListByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) ([]domain.Challenge, error)
}

func (mock *challengeRepoMock) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Challenge, error) {
	if mock.ListByOwnerFunc == nil {
		panic("challengeRepoMock.ListByOwnerFunc: method is nil but challengeRepo.ListByOwner was just called")
	}
	return mock.ListByOwnerFunc(ctx, ownerID)
}

var _ insightRepo = &insightRepoMock{}

type insightRepoMock struct {
	GetFunc func(ctx context.Context, ownerID uuid.UUID) (*domain.InsightSet, error)
}

func (mock *insightRepoMock) Get(ctx context.Context, ownerID uuid.UUID) (*domain.InsightSet, error) {
	if mock.GetFunc == nil {
		panic("insightRepoMock.GetFunc: method is nil but insightRepo.Get was just called")
	}
	return mock.GetFunc(ctx, ownerID)
}

var _ limiter = &limiterMock{}

type limiterMock struct {
	AllowFunc func(ctx context.Context, ownerID uuid.UUID, actionKey string) error
}

func (mock *limiterMock) Allow(ctx context.Context, ownerID uuid.UUID, actionKey string) error {
	if mock.AllowFunc == nil {
		panic("limiterMock.AllowFunc: method is nil but limiter.Allow was just called")
	}
	return mock.AllowFunc(ctx, ownerID, actionKey)
}
