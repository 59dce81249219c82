package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resilientme/backend/internal/domain"
	"github.com/resilientme/backend/pkg/ctxutil"
)

// Delete removes everything the caller owns. The database cascade commits
// in one transaction with the identity row last; stored export bundles are
// cleaned up after commit, and a failure there is logged but does not
// resurrect the account.
//
// Community posts stay: they are anonymous and the author link dies with
// the user row.
func (s *Service) Delete(ctx context.Context) error {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	var removedEvents int
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.tasks.DeleteByOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("delete notification tasks: %w", err)
		}
		if err := s.rateLimits.DeleteByOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("delete rate limit buckets: %w", err)
		}
		if err := s.posts.DeleteMarkersByOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("delete reaction markers: %w", err)
		}
		if err := s.insights.DeleteByOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("delete insights: %w", err)
		}
		if err := s.aggregates.DeleteByOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("delete aggregates: %w", err)
		}
		if err := s.challenges.DeleteByOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("delete challenges: %w", err)
		}
		if err := s.tokens.DeleteByOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("delete device tokens: %w", err)
		}

		n, err := s.events.DeleteByOwner(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("delete events: %w", err)
		}
		removedEvents = n

		if err := s.users.Delete(ctx, ownerID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.exports.DeleteByOwner(ctx, ownerID); err != nil {
		s.log.WarnContext(ctx, "export cleanup failed",
			slog.String("owner_id", ownerID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.log.InfoContext(ctx, "account deleted",
		slog.String("owner_id", ownerID.String()),
		slog.Int("events_removed", removedEvents),
	)
	return nil
}
