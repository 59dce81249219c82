package community

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
	"github.com/resilientme/backend/pkg/ctxutil"
)

// React adds the caller's reaction to a post. One reaction per
// (caller, post): a second attempt is a silent no-op, not an error, so the
// client can replay freely.
func (s *Service) React(ctx context.Context, postID uuid.UUID, reaction string) error {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if !domain.IsAllowedReaction(reaction) {
		return domain.NewValidationError("reaction", "reaction not in the allowed set")
	}

	if err := s.limiter.Allow(ctx, ownerID, domain.ActionReact); err != nil {
		return err
	}

	var first bool
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.posts.Get(ctx, postID); err != nil {
			return fmt.Errorf("get post: %w", err)
		}

		var err error
		first, err = s.posts.InsertMarker(ctx, &domain.ReactionMarker{
			OwnerID:  ownerID,
			PostID:   postID,
			Reaction: reaction,
		})
		if err != nil {
			return fmt.Errorf("insert marker: %w", err)
		}
		if !first {
			return nil
		}

		if err := s.posts.IncrementReaction(ctx, postID, reaction); err != nil {
			return fmt.Errorf("increment reaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if !first {
		s.log.DebugContext(ctx, "duplicate reaction ignored",
			slog.String("post_id", postID.String()),
		)
	}
	return nil
}
