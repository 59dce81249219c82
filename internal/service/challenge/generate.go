package challenge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
	"github.com/resilientme/backend/pkg/ctxutil"
)

// GenerateDaily writes today's challenge for every known user. The upsert
// is keyed by (owner, day), so overlapping runs converge on the same row.
func (s *Service) GenerateDaily(ctx context.Context, day time.Time) (int, error) {
	day = midnight(day)

	ids, err := s.users.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	var generated int
	for _, id := range ids {
		if err := s.challenges.Upsert(ctx, build(id, day)); err != nil {
			s.log.WarnContext(ctx, "challenge generation failed",
				slog.String("owner_id", id.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		generated++
	}

	s.log.InfoContext(ctx, "daily challenges generated",
		slog.Time("day", day),
		slog.Int("users", len(ids)),
		slog.Int("generated", generated),
	)
	return generated, nil
}

// Today returns the caller's challenge for the current day, generating it
// on the spot if the batch run has not reached them yet.
func (s *Service) Today(ctx context.Context) (*domain.Challenge, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	day := midnight(s.now().UTC())

	ch, err := s.challenges.GetForDay(ctx, ownerID, day)
	if err == nil {
		return ch, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get challenge: %w", err)
	}

	ch = build(ownerID, day)
	if err := s.challenges.Upsert(ctx, ch); err != nil {
		return nil, fmt.Errorf("upsert challenge: %w", err)
	}
	return ch, nil
}

// Run generates challenges once per day at the configured hour until the
// context is cancelled.
func (s *Service) Run(ctx context.Context, hour int) error {
	for {
		next := nextRunAt(s.now().UTC(), hour)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			if _, err := s.GenerateDaily(ctx, s.now().UTC()); err != nil {
				s.log.ErrorContext(ctx, "daily generation failed", slog.String("error", err.Error()))
			}
		}
	}
}

func build(ownerID uuid.UUID, day time.Time) *domain.Challenge {
	item := pick(ownerID, day)
	return &domain.Challenge{
		OwnerID:      ownerID,
		Day:          day,
		Title:        item.Title,
		Description:  item.Description,
		Category:     item.Category,
		Difficulty:   item.Difficulty,
		Points:       item.Points,
		TimeEstimate: item.TimeEstimate,
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func nextRunAt(now time.Time, hour int) time.Time {
	run := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !run.After(now) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}
