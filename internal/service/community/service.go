// Package community implements the anonymous support wall: posts, the
// fixed reaction set, and report-driven moderation.
package community

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
)

const (
	// DefaultListLimit caps an unbounded feed request.
	DefaultListLimit = 50

	// DefaultBackfillLimit caps one admin backfill pass.
	DefaultBackfillLimit = 1000
)

type postRepo interface {
	Create(ctx context.Context, p *domain.Post) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListVisible(ctx context.Context, limit, offset int) ([]domain.Post, error)
	InsertMarker(ctx context.Context, m *domain.ReactionMarker) (bool, error)
	IncrementReaction(ctx context.Context, postID uuid.UUID, reaction string) error
	IncrementReport(ctx context.Context, postID uuid.UUID, hideThreshold int) (int, bool, error)
	InsertReport(ctx context.Context, rep *domain.PostReport) error
	BackfillStatus(ctx context.Context, limit int) (int, error)
}

type userRepo interface {
	EnsureExists(ctx context.Context, id uuid.UUID) error
}

type limiter interface {
	Allow(ctx context.Context, ownerID uuid.UUID, actionKey string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the community operations.
type Service struct {
	posts   postRepo
	users   userRepo
	limiter limiter
	tx      txManager
	now     func() time.Time
	log     *slog.Logger
}

// NewService creates a new community service.
func NewService(
	log *slog.Logger,
	posts postRepo,
	users userRepo,
	limiter limiter,
	tx txManager,
) *Service {
	return &Service{
		posts:   posts,
		users:   users,
		limiter: limiter,
		tx:      tx,
		now:     time.Now,
		log:     log.With("service", "community"),
	}
}
