// Package ratelimit persists fixed-window counters. The service reads and
// writes a bucket inside one transaction, so two near-simultaneous calls
// cannot both observe count = limit-1 and both pass.
package ratelimit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/adapter/postgres"
	"github.com/resilientme/backend/internal/domain"
)

// Repo provides rate-limit bucket persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new rate-limit repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// getSQL locks the bucket row for the rest of the transaction so the
// read-increment pair is atomic under the default isolation level.
const getSQL = `
SELECT owner_id, action_key, count, window_start
FROM rate_limit_buckets
WHERE owner_id = $1 AND action_key = $2
FOR UPDATE`

const putSQL = `
INSERT INTO rate_limit_buckets (owner_id, action_key, count, window_start)
VALUES ($1, $2, $3, $4)
ON CONFLICT (owner_id, action_key) DO UPDATE SET
    count        = EXCLUDED.count,
    window_start = EXCLUDED.window_start`

const deleteBeforeSQL = `DELETE FROM rate_limit_buckets WHERE window_start < $1`

const deleteByOwnerSQL = `DELETE FROM rate_limit_buckets WHERE owner_id = $1`

// Get returns the bucket for (owner, action), locking it for update.
// Returns domain.ErrNotFound when the owner has not hit this action yet.
func (r *Repo) Get(ctx context.Context, ownerID uuid.UUID, actionKey string) (*domain.RateLimitBucket, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var b domain.RateLimitBucket
	err := q.QueryRow(ctx, getSQL, ownerID, actionKey).
		Scan(&b.OwnerID, &b.ActionKey, &b.Count, &b.WindowStart)
	if err != nil {
		return nil, postgres.MapError(err, "rate limit bucket", actionKey)
	}

	return &b, nil
}

// Put upserts the bucket.
func (r *Repo) Put(ctx context.Context, b *domain.RateLimitBucket) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, putSQL, b.OwnerID, b.ActionKey, b.Count, b.WindowStart); err != nil {
		return postgres.MapError(err, "rate limit bucket", b.ActionKey)
	}
	return nil
}

// DeleteBefore removes buckets whose window started before cutoff.
// Returns the number deleted.
func (r *Repo) DeleteBefore(ctx context.Context, cutoff time.Time) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, deleteBeforeSQL, cutoff)
	if err != nil {
		return 0, postgres.MapError(err, "rate limit buckets", "retention")
	}
	return int(tag.RowsAffected()), nil
}

// DeleteByOwner removes all buckets of an owner.
func (r *Repo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, deleteByOwnerSQL, ownerID); err != nil {
		return postgres.MapError(err, "rate limit buckets", ownerID)
	}
	return nil
}
