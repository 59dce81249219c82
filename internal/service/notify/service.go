// Package notify owns the deferred push queue: enqueueing follow-up tasks
// and dispatching due ones to device tokens.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/adapter/push"
	"github.com/resilientme/backend/internal/domain"
)

type taskRepo interface {
	Create(ctx context.Context, task *domain.NotificationTask) error
	ClaimDue(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]domain.NotificationTask, error)
	Finish(ctx context.Context, id uuid.UUID, status domain.TaskStatus, errMsg *string) error
}

type tokenRepo interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.DeviceToken, error)
}

// Config tunes the dispatcher.
type Config struct {
	TickInterval  time.Duration
	BatchSize     int
	FollowUpDelay time.Duration
	ClaimLease    time.Duration
	Concurrency   int
}

// Service implements the notification queue.
type Service struct {
	tasks  taskRepo
	tokens tokenRepo
	sender push.Sender
	cfg    Config
	now    func() time.Time
	log    *slog.Logger
}

// NewService creates a new notify service.
func NewService(
	log *slog.Logger,
	tasks taskRepo,
	tokens tokenRepo,
	sender push.Sender,
	cfg Config,
) *Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	return &Service{
		tasks:  tasks,
		tokens: tokens,
		sender: sender,
		cfg:    cfg,
		now:    time.Now,
		log:    log.With("service", "notify"),
	}
}
