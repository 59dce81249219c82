package entry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resilientme/backend/internal/domain"
	"github.com/resilientme/backend/pkg/ctxutil"
)

// Create accepts one event for the caller. Accepted means durably written
// and folded; a replay of an already-accepted ID reports accepted=false and
// no error, so outbox clients can treat both as success.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Event, bool, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, false, domain.ErrUnauthorized
	}

	if err := s.limiter.Allow(ctx, ownerID, domain.ActionCreateEntry); err != nil {
		return nil, false, err
	}

	ev := &domain.Event{
		ID:         input.ID,
		OwnerID:    ownerID,
		Category:   domain.Category(input.Category),
		Impact:     input.Impact,
		Note:       domain.SanitizeOptionalText(input.Note),
		OccurredAt: input.OccurredAt,
		CreatedAt:  s.now().UTC(),
	}
	if err := ev.Validate(); err != nil {
		return nil, false, err
	}

	if err := s.users.EnsureExists(ctx, ownerID); err != nil {
		return nil, false, fmt.Errorf("ensure user: %w", err)
	}

	accepted, err := s.applier.Apply(ctx, ev)
	if err != nil {
		return nil, false, fmt.Errorf("apply event: %w", err)
	}

	s.log.InfoContext(ctx, "event ingested",
		slog.String("owner_id", ownerID.String()),
		slog.String("event_id", ev.ID.String()),
		slog.String("category", ev.Category.String()),
		slog.Int("impact", ev.Impact),
		slog.Bool("accepted", accepted),
	)

	return ev, accepted, nil
}
