// Package challenge persists the daily generated content item, keyed by
// (owner, day) so re-running the generator is an idempotent merge.
package challenge

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/adapter/postgres"
	"github.com/resilientme/backend/internal/domain"
)

// Repo provides challenge persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new challenge repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

const upsertSQL = `
INSERT INTO challenges (owner_id, day, title, description, category, difficulty, points, time_estimate, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
ON CONFLICT (owner_id, day) DO UPDATE SET
    title         = EXCLUDED.title,
    description   = EXCLUDED.description,
    category      = EXCLUDED.category,
    difficulty    = EXCLUDED.difficulty,
    points        = EXCLUDED.points,
    time_estimate = EXCLUDED.time_estimate`

const getForDaySQL = `
SELECT owner_id, day, title, description, category, difficulty, points, time_estimate, created_at
FROM challenges
WHERE owner_id = $1 AND day = $2`

const listByOwnerSQL = `
SELECT owner_id, day, title, description, category, difficulty, points, time_estimate, created_at
FROM challenges
WHERE owner_id = $1
ORDER BY day DESC`

const deleteByOwnerSQL = `DELETE FROM challenges WHERE owner_id = $1`

// Upsert writes the owner's challenge for a day, replacing a prior one.
func (r *Repo) Upsert(ctx context.Context, ch *domain.Challenge) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	_, err := q.Exec(ctx, upsertSQL,
		ch.OwnerID, ch.Day, ch.Title, ch.Description, ch.Category.String(),
		ch.Difficulty, ch.Points, ch.TimeEstimate)
	if err != nil {
		return postgres.MapError(err, "challenge", ch.OwnerID)
	}
	return nil
}

// GetForDay returns the owner's challenge for a calendar day.
func (r *Repo) GetForDay(ctx context.Context, ownerID uuid.UUID, day time.Time) (*domain.Challenge, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	return scanChallenge(q.QueryRow(ctx, getForDaySQL, ownerID, day), ownerID)
}

// ListByOwner returns the owner's challenges, newest day first.
func (r *Repo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Challenge, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, listByOwnerSQL, ownerID)
	if err != nil {
		return nil, postgres.MapError(err, "challenges", ownerID)
	}
	defer rows.Close()

	var out []domain.Challenge
	for rows.Next() {
		ch, err := scanChallenge(rows, ownerID)
		if err != nil {
			return nil, err
		}
		out = append(out, *ch)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "challenges", ownerID)
	}

	return out, nil
}

// DeleteByOwner removes all challenges of an owner.
func (r *Repo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, deleteByOwnerSQL, ownerID); err != nil {
		return postgres.MapError(err, "challenges", ownerID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChallenge(row rowScanner, key any) (*domain.Challenge, error) {
	var (
		ch       domain.Challenge
		category string
	)
	err := row.Scan(&ch.OwnerID, &ch.Day, &ch.Title, &ch.Description, &category,
		&ch.Difficulty, &ch.Points, &ch.TimeEstimate, &ch.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "challenge", key)
	}
	ch.Category = domain.Category(category)
	return &ch, nil
}
