package community

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
	"github.com/resilientme/backend/pkg/ctxutil"
)

// Report files a report against a post. The post is hidden from the feed
// the moment its report count reaches the threshold, in the same
// transaction as the counter bump.
func (s *Service) Report(ctx context.Context, postID uuid.UUID) error {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.limiter.Allow(ctx, ownerID, domain.ActionReport); err != nil {
		return err
	}

	var (
		reports int
		hidden  bool
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.posts.Get(ctx, postID); err != nil {
			return fmt.Errorf("get post: %w", err)
		}

		if err := s.posts.InsertReport(ctx, &domain.PostReport{
			ID:      uuid.New(),
			OwnerID: ownerID,
			PostID:  postID,
		}); err != nil {
			return fmt.Errorf("insert report: %w", err)
		}

		var err error
		reports, hidden, err = s.posts.IncrementReport(ctx, postID, domain.HideReportThreshold)
		if err != nil {
			return fmt.Errorf("increment report: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if hidden {
		s.log.InfoContext(ctx, "post hidden by reports",
			slog.String("post_id", postID.String()),
			slog.Int("reports", reports),
		)
	}
	return nil
}

// BackfillStatus normalizes the status column on legacy rows. Admin only.
func (s *Service) BackfillStatus(ctx context.Context, limit int) (int, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return 0, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdmin(ctx) {
		return 0, domain.ErrForbidden
	}

	if limit <= 0 || limit > DefaultBackfillLimit {
		limit = DefaultBackfillLimit
	}

	n, err := s.posts.BackfillStatus(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("backfill status: %w", err)
	}

	s.log.InfoContext(ctx, "post status backfilled", slog.Int("updated", n))
	return n, nil
}
