// Package aggregate owns the event ledger fold: accepting events exactly
// once, maintaining per-day counters, and refreshing the derived score and
// insight set.
package aggregate

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
)

// insightWindowDays is the trailing window the pattern detector reads.
const insightWindowDays = 30

type eventRepo interface {
	Upsert(ctx context.Context, ev *domain.Event) (bool, error)
	ListSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]domain.Event, error)
	WindowStats(ctx context.Context, ownerID uuid.UUID, since time.Time) (float64, int, error)
}

type bucketRepo interface {
	Fold(ctx context.Context, ownerID uuid.UUID, day time.Time, impact int) error
	GetScore(ctx context.Context, ownerID uuid.UUID) (*domain.DerivedScore, error)
	UpsertScore(ctx context.Context, score *domain.DerivedScore) error
}

type insightRepo interface {
	Replace(ctx context.Context, set *domain.InsightSet) error
	Get(ctx context.Context, ownerID uuid.UUID) (*domain.InsightSet, error)
}

type followUpProducer interface {
	EnqueueRecoveryFollowUp(ctx context.Context, ownerID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the aggregation pipeline.
type Service struct {
	events    eventRepo
	buckets   bucketRepo
	insights  insightRepo
	followUps followUpProducer
	tx        txManager
	now       func() time.Time
	log       *slog.Logger
}

// NewService creates a new aggregate service.
func NewService(
	log *slog.Logger,
	events eventRepo,
	buckets bucketRepo,
	insights insightRepo,
	followUps followUpProducer,
	tx txManager,
) *Service {
	return &Service{
		events:    events,
		buckets:   buckets,
		insights:  insights,
		followUps: followUps,
		tx:        tx,
		now:       time.Now,
		log:       log.With("service", "aggregate"),
	}
}
