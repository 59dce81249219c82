// Package account implements full account deletion: every row and stored
// object belonging to the owner goes away.
package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type eventRepo interface {
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}

type aggregateRepo interface {
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

type insightRepo interface {
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

type taskRepo interface {
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

type rateLimitRepo interface {
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

type postRepo interface {
	DeleteMarkersByOwner(ctx context.Context, ownerID uuid.UUID) error
}

type challengeRepo interface {
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

type tokenRepo interface {
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

type userRepo interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

type exportDeleter interface {
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements account deletion.
type Service struct {
	events     eventRepo
	aggregates aggregateRepo
	insights   insightRepo
	tasks      taskRepo
	rateLimits rateLimitRepo
	posts      postRepo
	challenges challengeRepo
	tokens     tokenRepo
	users      userRepo
	exports    exportDeleter
	tx         txManager
	now        func() time.Time
	log        *slog.Logger
}

// NewService creates a new account service.
func NewService(
	log *slog.Logger,
	events eventRepo,
	aggregates aggregateRepo,
	insights insightRepo,
	tasks taskRepo,
	rateLimits rateLimitRepo,
	posts postRepo,
	challenges challengeRepo,
	tokens tokenRepo,
	users userRepo,
	exports exportDeleter,
	tx txManager,
) *Service {
	return &Service{
		events:     events,
		aggregates: aggregates,
		insights:   insights,
		tasks:      tasks,
		rateLimits: rateLimits,
		posts:      posts,
		challenges: challenges,
		tokens:     tokens,
		users:      users,
		exports:    exports,
		tx:         tx,
		now:        time.Now,
		log:        log.With("service", "account"),
	}
}
