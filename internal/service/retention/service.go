// Package retention sweeps operational tables that grow without bound:
// expired rate-limit buckets, old reaction markers, and finished
// notification tasks.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type rateLimitRepo interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type postRepo interface {
	DeleteMarkersBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type taskRepo interface {
	DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// Config sets the sweep horizons.
type Config struct {
	MaxAge     time.Duration
	TaskMaxAge time.Duration
}

// Result reports how many rows one sweep removed.
type Result struct {
	RateLimitBuckets int
	ReactionMarkers  int
	Tasks            int
}

// Service implements the retention sweep.
type Service struct {
	rateLimits rateLimitRepo
	posts      postRepo
	tasks      taskRepo
	cfg        Config
	now        func() time.Time
	log        *slog.Logger
}

// NewService creates a new retention service.
func NewService(
	log *slog.Logger,
	rateLimits rateLimitRepo,
	posts postRepo,
	tasks taskRepo,
	cfg Config,
) *Service {
	return &Service{
		rateLimits: rateLimits,
		posts:      posts,
		tasks:      tasks,
		cfg:        cfg,
		now:        time.Now,
		log:        log.With("service", "retention"),
	}
}

// Sweep removes expired rows. Events, aggregates, scores, insights, and
// posts are user data and are never swept; they leave only through account
// deletion.
func (s *Service) Sweep(ctx context.Context) (Result, error) {
	now := s.now().UTC()
	var res Result

	n, err := s.rateLimits.DeleteBefore(ctx, now.Add(-s.cfg.MaxAge))
	if err != nil {
		return res, fmt.Errorf("sweep rate limit buckets: %w", err)
	}
	res.RateLimitBuckets = n

	n, err = s.posts.DeleteMarkersBefore(ctx, now.Add(-s.cfg.MaxAge))
	if err != nil {
		return res, fmt.Errorf("sweep reaction markers: %w", err)
	}
	res.ReactionMarkers = n

	n, err = s.tasks.DeleteTerminalBefore(ctx, now.Add(-s.cfg.TaskMaxAge))
	if err != nil {
		return res, fmt.Errorf("sweep tasks: %w", err)
	}
	res.Tasks = n

	s.log.InfoContext(ctx, "retention sweep done",
		slog.Int("rate_limit_buckets", res.RateLimitBuckets),
		slog.Int("reaction_markers", res.ReactionMarkers),
		slog.Int("tasks", res.Tasks),
	)
	return res, nil
}
