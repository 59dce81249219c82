// Package notification implements the deferred-task repository.
// ClaimDue is the synchronization point between overlapping dispatch ticks:
// FOR UPDATE SKIP LOCKED plus the PENDING→PROCESSING flip guarantees a due
// task is handed to exactly one tick at a time.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/adapter/postgres"
	"github.com/resilientme/backend/internal/domain"
)

// Repo provides notification task persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new notification task repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

const createSQL = `
INSERT INTO notification_tasks (id, owner_id, kind, status, run_at, payload, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())`

// claimDueSQL picks due pending tasks plus processing tasks whose claim
// lease expired (a crashed tick), flips them to PROCESSING, and returns
// them. SKIP LOCKED keeps overlapping ticks from claiming the same rows.
const claimDueSQL = `
WITH due AS (
    SELECT id FROM notification_tasks
    WHERE (status = 'PENDING' AND run_at <= $1)
       OR (status = 'PROCESSING' AND claimed_at <= $2)
    ORDER BY run_at
    LIMIT $3
    FOR UPDATE SKIP LOCKED
)
UPDATE notification_tasks t
SET status = 'PROCESSING', claimed_at = $1
FROM due
WHERE t.id = due.id
RETURNING t.id, t.owner_id, t.kind, t.run_at, t.payload, t.created_at`

// finishSQL writes a terminal state. The status guard means a task that
// already reached a terminal state is never transitioned again.
const finishSQL = `
UPDATE notification_tasks
SET status = $2, error = $3, processed_at = now(), claimed_at = NULL
WHERE id = $1 AND status = 'PROCESSING'`

const deleteByOwnerSQL = `DELETE FROM notification_tasks WHERE owner_id = $1`

const deleteTerminalBeforeSQL = `
DELETE FROM notification_tasks
WHERE status IN ('SENT', 'NO_TOKENS', 'ERROR') AND processed_at < $1`

// Create enqueues a new pending task.
func (r *Repo) Create(ctx context.Context, task *domain.NotificationTask) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	raw, err := json.Marshal(task.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = q.Exec(ctx, createSQL,
		task.ID, task.OwnerID, task.Kind.String(), task.Status.String(), task.RunAt, raw)
	if err != nil {
		return postgres.MapError(err, "notification task", task.ID)
	}
	return nil
}

// ClaimDue atomically claims up to limit due tasks at now, including stale
// PROCESSING tasks claimed before now-lease.
func (r *Repo) ClaimDue(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]domain.NotificationTask, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, claimDueSQL, now, now.Add(-lease), limit)
	if err != nil {
		return nil, postgres.MapError(err, "notification tasks", "claim")
	}
	defer rows.Close()

	var tasks []domain.NotificationTask
	for rows.Next() {
		var (
			t    domain.NotificationTask
			kind string
			raw  []byte
		)
		if err := rows.Scan(&t.ID, &t.OwnerID, &kind, &t.RunAt, &raw, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification task: %w", err)
		}
		if err := json.Unmarshal(raw, &t.Payload); err != nil {
			return nil, fmt.Errorf("notification task %s: unmarshal payload: %w", t.ID, err)
		}
		t.Kind = domain.TaskKind(kind)
		t.Status = domain.TaskStatusProcessing
		claimed := now
		t.ClaimedAt = &claimed
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification tasks: %w", err)
	}

	return tasks, nil
}

// Finish transitions a claimed task to a terminal state. errMsg is stored
// for ERROR outcomes and nil otherwise. Returns domain.ErrConflict if the
// task was not in PROCESSING (already finished elsewhere).
func (r *Repo) Finish(ctx context.Context, id uuid.UUID, status domain.TaskStatus, errMsg *string) error {
	if !status.IsTerminal() {
		return fmt.Errorf("finish with non-terminal status %s: %w", status, domain.ErrValidation)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, finishSQL, id, status.String(), errMsg)
	if err != nil {
		return postgres.MapError(err, "notification task", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification task %s not in processing: %w", id, domain.ErrConflict)
	}
	return nil
}

// DeleteByOwner removes all tasks of an owner.
func (r *Repo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, deleteByOwnerSQL, ownerID); err != nil {
		return postgres.MapError(err, "notification tasks", ownerID)
	}
	return nil
}

// DeleteTerminalBefore removes finished tasks processed before cutoff.
// Returns the number deleted.
func (r *Repo) DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, deleteTerminalBeforeSQL, cutoff)
	if err != nil {
		return 0, postgres.MapError(err, "notification tasks", "retention")
	}
	return int(tag.RowsAffected()), nil
}
