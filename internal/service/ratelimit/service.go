// Package ratelimit enforces per-owner fixed-window action limits backed by
// durable counters, so limits survive restarts and hold across instances.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
)

// Policy is one fixed-window limit: at most Limit accepted actions per
// Window.
type Policy struct {
	Limit  int
	Window time.Duration
}

// PolicyFunc resolves the policy for an action key.
type PolicyFunc func(actionKey string) Policy

type bucketRepo interface {
	Get(ctx context.Context, ownerID uuid.UUID, actionKey string) (*domain.RateLimitBucket, error)
	Put(ctx context.Context, b *domain.RateLimitBucket) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the fixed-window rate limiter.
type Service struct {
	buckets bucketRepo
	tx      txManager
	policy  PolicyFunc
	now     func() time.Time
	log     *slog.Logger
}

// NewService creates a new rate limit service.
func NewService(
	log *slog.Logger,
	buckets bucketRepo,
	tx txManager,
	policy PolicyFunc,
) *Service {
	return &Service{
		buckets: buckets,
		tx:      tx,
		policy:  policy,
		now:     time.Now,
		log:     log.With("service", "ratelimit"),
	}
}

// Allow consumes one slot of the owner's window for the action. Returns
// ErrRateLimited when the window is full; the failed attempt itself does
// not consume a slot.
func (s *Service) Allow(ctx context.Context, ownerID uuid.UUID, actionKey string) error {
	p := s.policy(actionKey)
	now := s.now().UTC()

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		bucket, err := s.buckets.Get(ctx, ownerID, actionKey)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			bucket = nil
		case err != nil:
			return fmt.Errorf("get bucket: %w", err)
		}

		// A window is stale only once strictly more than Window has
		// elapsed; an attempt exactly at the boundary still counts
		// against the old window.
		if bucket == nil || now.Sub(bucket.WindowStart) > p.Window {
			return s.buckets.Put(ctx, &domain.RateLimitBucket{
				OwnerID:     ownerID,
				ActionKey:   actionKey,
				Count:       1,
				WindowStart: now,
			})
		}

		if bucket.Count >= p.Limit {
			return fmt.Errorf("action %s: %w", actionKey, domain.ErrRateLimited)
		}

		bucket.Count++
		return s.buckets.Put(ctx, bucket)
	})

	if errors.Is(err, domain.ErrRateLimited) {
		s.log.InfoContext(ctx, "rate limit hit",
			slog.String("owner_id", ownerID.String()),
			slog.String("action", actionKey),
		)
	}
	return err
}
