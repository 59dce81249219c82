package aggregate

import (
	"context"
	"errors"
	"fmt"

	"github.com/resilientme/backend/internal/domain"
	"github.com/resilientme/backend/pkg/ctxutil"
)

// GetScore returns the caller's current resilience score. An owner with no
// stored score yet gets one computed live from the trailing window, which
// for a fresh account is the maximum.
func (s *Service) GetScore(ctx context.Context) (*domain.DerivedScore, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	score, err := s.buckets.GetScore(ctx, ownerID)
	if err == nil {
		return score, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get score: %w", err)
	}

	now := s.now().UTC()
	avg, count, err := s.events.WindowStats(ctx, ownerID, now.AddDate(0, 0, -domain.ScoreWindowDays))
	if err != nil {
		return nil, fmt.Errorf("window stats: %w", err)
	}

	return &domain.DerivedScore{
		OwnerID:   ownerID,
		Score:     domain.ComputeScore(avg, count),
		UpdatedAt: now,
	}, nil
}

// GetInsights returns the caller's stored insight set. Owners with no
// detector run yet get an empty set, not an error.
func (s *Service) GetInsights(ctx context.Context) (*domain.InsightSet, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	set, err := s.insights.Get(ctx, ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.InsightSet{OwnerID: ownerID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get insights: %w", err)
	}
	return set, nil
}
