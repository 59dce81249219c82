// Package aggregate implements per-day bucket and derived-score persistence.
// Bucket folds are single upsert statements, so concurrent aggregator runs
// for the same (owner, day) serialize inside PostgreSQL without explicit
// read-modify-write.
package aggregate

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/adapter/postgres"
	"github.com/resilientme/backend/internal/domain"
)

// Repo provides aggregate persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new aggregate repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

const foldSQL = `
INSERT INTO aggregate_buckets (owner_id, day, total_count, sum_impact, updated_at)
VALUES ($1, $2, 1, $3, now())
ON CONFLICT (owner_id, day) DO UPDATE SET
    total_count = aggregate_buckets.total_count + 1,
    sum_impact  = aggregate_buckets.sum_impact + EXCLUDED.sum_impact,
    updated_at  = now()`

const upsertScoreSQL = `
INSERT INTO derived_scores (owner_id, score, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (owner_id) DO UPDATE SET
    score      = EXCLUDED.score,
    updated_at = EXCLUDED.updated_at`

const getScoreSQL = `SELECT owner_id, score, updated_at FROM derived_scores WHERE owner_id = $1`

const deleteBucketsByOwnerSQL = `DELETE FROM aggregate_buckets WHERE owner_id = $1`
const deleteScoreByOwnerSQL = `DELETE FROM derived_scores WHERE owner_id = $1`

// Fold adds one event's impact into the (owner, day) bucket.
func (r *Repo) Fold(ctx context.Context, ownerID uuid.UUID, day time.Time, impact int) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, foldSQL, ownerID, day, impact); err != nil {
		return postgres.MapError(err, "aggregate bucket", ownerID)
	}
	return nil
}

// UpsertScore overwrites the owner's derived score. Last writer wins.
func (r *Repo) UpsertScore(ctx context.Context, score *domain.DerivedScore) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, upsertScoreSQL, score.OwnerID, score.Score, score.UpdatedAt); err != nil {
		return postgres.MapError(err, "derived score", score.OwnerID)
	}
	return nil
}

// GetScore returns the owner's derived score.
func (r *Repo) GetScore(ctx context.Context, ownerID uuid.UUID) (*domain.DerivedScore, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var s domain.DerivedScore
	err := q.QueryRow(ctx, getScoreSQL, ownerID).Scan(&s.OwnerID, &s.Score, &s.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "derived score", ownerID)
	}

	return &s, nil
}

// DeleteByOwner removes the owner's buckets and score.
func (r *Repo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, deleteBucketsByOwnerSQL, ownerID); err != nil {
		return postgres.MapError(err, "aggregate buckets", ownerID)
	}
	if _, err := q.Exec(ctx, deleteScoreByOwnerSQL, ownerID); err != nil {
		return postgres.MapError(err, "derived score", ownerID)
	}
	return nil
}
