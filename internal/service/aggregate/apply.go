package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
	"github.com/resilientme/backend/internal/service/insight"
)

// Apply folds one event into the ledger. The write and the day-bucket
// increment commit in one transaction; a replayed event ID leaves both
// untouched, so outbox retries are safe.
//
// The derived score, insight set, and follow-up task are refreshed after
// commit. They are advisory: a failure there is logged and does not reject
// the already-accepted event.
func (s *Service) Apply(ctx context.Context, ev *domain.Event) (bool, error) {
	var inserted bool

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		inserted, err = s.events.Upsert(ctx, ev)
		if err != nil {
			return fmt.Errorf("upsert event: %w", err)
		}
		if !inserted {
			return nil
		}

		// Bucket by the event's local calendar day; the client's UTC
		// offset rides in the timestamp.
		day := ev.Day(ev.OccurredAt.Location())
		if err := s.buckets.Fold(ctx, ev.OwnerID, day, ev.Impact); err != nil {
			return fmt.Errorf("fold bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if !inserted {
		s.log.DebugContext(ctx, "event replayed, fold skipped",
			slog.String("event_id", ev.ID.String()),
		)
		return false, nil
	}

	s.refreshDerived(ctx, ev)

	return true, nil
}

// refreshDerived recomputes the advisory artifacts after a committed fold.
func (s *Service) refreshDerived(ctx context.Context, ev *domain.Event) {
	now := s.now().UTC()

	if err := s.recomputeScore(ctx, ev.OwnerID, now); err != nil {
		s.log.WarnContext(ctx, "score recompute failed",
			slog.String("owner_id", ev.OwnerID.String()),
			slog.String("error", err.Error()),
		)
	}

	if err := s.refreshInsights(ctx, ev.OwnerID, now); err != nil {
		s.log.WarnContext(ctx, "insight refresh failed",
			slog.String("owner_id", ev.OwnerID.String()),
			slog.String("error", err.Error()),
		)
	}

	if ev.Impact >= domain.HighImpactThreshold {
		if err := s.followUps.EnqueueRecoveryFollowUp(ctx, ev.OwnerID); err != nil {
			s.log.WarnContext(ctx, "follow-up enqueue failed",
				slog.String("owner_id", ev.OwnerID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}

// recomputeScore rebuilds the score wholesale from the trailing window.
// Last writer wins; concurrent writers converge on the next write.
func (s *Service) recomputeScore(ctx context.Context, ownerID uuid.UUID, now time.Time) error {
	since := now.AddDate(0, 0, -domain.ScoreWindowDays)

	avg, count, err := s.events.WindowStats(ctx, ownerID, since)
	if err != nil {
		return fmt.Errorf("window stats: %w", err)
	}

	return s.buckets.UpsertScore(ctx, &domain.DerivedScore{
		OwnerID:   ownerID,
		Score:     domain.ComputeScore(avg, count),
		UpdatedAt: now,
	})
}

// refreshInsights reruns the pattern detector over the insight window and
// replaces the stored set.
func (s *Service) refreshInsights(ctx context.Context, ownerID uuid.UUID, now time.Time) error {
	since := now.AddDate(0, 0, -insightWindowDays)

	events, err := s.events.ListSince(ctx, ownerID, since)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	return s.insights.Replace(ctx, &domain.InsightSet{
		OwnerID:   ownerID,
		Insights:  insight.Detect(events),
		UpdatedAt: now,
	})
}
