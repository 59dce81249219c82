package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
)

// EnqueueRecoveryFollowUp schedules a "how are you doing" push one delay
// after acceptance. The delay counts from acceptance, not from the event's
// own timestamp: a backdated entry must not produce an already-due push.
func (s *Service) EnqueueRecoveryFollowUp(ctx context.Context, ownerID uuid.UUID) error {
	task := &domain.NotificationTask{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Kind:    domain.TaskKindRecoveryFollowUp,
		Status:  domain.TaskStatusPending,
		RunAt:   s.now().Add(s.cfg.FollowUpDelay),
		Payload: domain.RecoveryFollowUpPayload(),
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return fmt.Errorf("create follow-up task: %w", err)
	}

	s.log.InfoContext(ctx, "follow-up enqueued",
		slog.String("owner_id", ownerID.String()),
		slog.String("task_id", task.ID.String()),
		slog.Time("run_at", task.RunAt),
	)
	return nil
}
