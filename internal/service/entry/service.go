// Package entry is the write-side front of the event pipeline: it
// validates, sanitizes, and rate-limits incoming events before handing them
// to the aggregator.
package entry

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
)

// DefaultListLimit caps an unbounded list request.
const DefaultListLimit = 200

type eventRepo interface {
	ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]domain.Event, error)
}

type userRepo interface {
	EnsureExists(ctx context.Context, id uuid.UUID) error
}

type applier interface {
	Apply(ctx context.Context, ev *domain.Event) (bool, error)
}

type limiter interface {
	Allow(ctx context.Context, ownerID uuid.UUID, actionKey string) error
}

// Service implements event intake.
type Service struct {
	events  eventRepo
	users   userRepo
	applier applier
	limiter limiter
	now     func() time.Time
	log     *slog.Logger
}

// NewService creates a new entry service.
func NewService(
	log *slog.Logger,
	events eventRepo,
	users userRepo,
	applier applier,
	limiter limiter,
) *Service {
	return &Service{
		events:  events,
		users:   users,
		applier: applier,
		limiter: limiter,
		now:     time.Now,
		log:     log.With("service", "entry"),
	}
}
