package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/resilientme/backend/internal/domain"
)

// Run dispatches due tasks on a fixed tick until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	s.log.InfoContext(ctx, "dispatcher started",
		slog.Duration("tick", s.cfg.TickInterval),
		slog.Int("batch", s.cfg.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			s.log.InfoContext(ctx, "dispatcher stopped")
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.DispatchDue(ctx); err != nil {
				s.log.ErrorContext(ctx, "dispatch tick failed", slog.String("error", err.Error()))
			}
		}
	}
}

// DispatchDue claims one batch of due tasks and drives each to a terminal
// state. Returns how many tasks were processed.
//
// A claim flips the task to PROCESSING inside the claim query, so
// concurrent dispatchers never pick up the same task; a dispatcher that
// dies mid-batch releases its claims via the lease.
func (s *Service) DispatchDue(ctx context.Context) (int, error) {
	tasks, err := s.tasks.ClaimDue(ctx, s.now().UTC(), s.cfg.BatchSize, s.cfg.ClaimLease)
	if err != nil {
		return 0, fmt.Errorf("claim due tasks: %w", err)
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	for _, task := range tasks {
		g.Go(func() error {
			s.dispatchOne(ctx, task)
			return nil
		})
	}
	_ = g.Wait()

	return len(tasks), nil
}

// dispatchOne resolves tokens and sends, then records exactly one terminal
// state. Failures are terminal: a task is never retried after its claim.
func (s *Service) dispatchOne(ctx context.Context, task domain.NotificationTask) {
	tokens, err := s.tokens.ListByOwner(ctx, task.OwnerID)
	if err != nil {
		s.finish(ctx, task, domain.TaskStatusError, err)
		return
	}

	if len(tokens) == 0 {
		s.finish(ctx, task, domain.TaskStatusNoTokens, nil)
		return
	}

	var sendErr error
	for _, tok := range tokens {
		if err := s.sender.Send(ctx, tok.Token, task.Payload); err != nil {
			sendErr = err
		}
	}
	if sendErr != nil {
		s.finish(ctx, task, domain.TaskStatusError, sendErr)
		return
	}

	s.finish(ctx, task, domain.TaskStatusSent, nil)
}

func (s *Service) finish(ctx context.Context, task domain.NotificationTask, status domain.TaskStatus, cause error) {
	var errMsg *string
	if cause != nil {
		msg := cause.Error()
		errMsg = &msg
	}

	if err := s.tasks.Finish(ctx, task.ID, status, errMsg); err != nil {
		s.log.ErrorContext(ctx, "finish task failed",
			slog.String("task_id", task.ID.String()),
			slog.String("status", status.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	s.log.InfoContext(ctx, "task finished",
		slog.String("task_id", task.ID.String()),
		slog.String("owner_id", task.OwnerID.String()),
		slog.String("kind", task.Kind.String()),
		slog.String("status", status.String()),
	)
}
