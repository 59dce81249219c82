package entry

import (
	"context"
	"fmt"

	"github.com/resilientme/backend/internal/domain"
	"github.com/resilientme/backend/pkg/ctxutil"
)

// List returns the caller's events, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]domain.Event, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	events, err := s.events.ListRecent(ctx, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
