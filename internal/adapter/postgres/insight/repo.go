// Package insight stores the owner's current pattern snapshot as a single
// jsonb row; every detector run replaces it wholesale.
package insight

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/adapter/postgres"
	"github.com/resilientme/backend/internal/domain"
)

// Repo provides insight persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new insight repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

const replaceSQL = `
INSERT INTO insight_sets (owner_id, insights, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (owner_id) DO UPDATE SET
    insights   = EXCLUDED.insights,
    updated_at = EXCLUDED.updated_at`

const getSQL = `SELECT insights, updated_at FROM insight_sets WHERE owner_id = $1`

const deleteByOwnerSQL = `DELETE FROM insight_sets WHERE owner_id = $1`

// Replace overwrites the owner's insight set.
func (r *Repo) Replace(ctx context.Context, set *domain.InsightSet) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	raw, err := json.Marshal(set.Insights)
	if err != nil {
		return fmt.Errorf("marshal insights: %w", err)
	}

	if _, err := q.Exec(ctx, replaceSQL, set.OwnerID, raw, set.UpdatedAt); err != nil {
		return postgres.MapError(err, "insight set", set.OwnerID)
	}
	return nil
}

// Get returns the owner's current insight set.
func (r *Repo) Get(ctx context.Context, ownerID uuid.UUID) (*domain.InsightSet, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	set := domain.InsightSet{OwnerID: ownerID}
	var raw []byte
	if err := q.QueryRow(ctx, getSQL, ownerID).Scan(&raw, &set.UpdatedAt); err != nil {
		return nil, postgres.MapError(err, "insight set", ownerID)
	}

	if err := json.Unmarshal(raw, &set.Insights); err != nil {
		return nil, fmt.Errorf("insight set %s: unmarshal: %w", ownerID, err)
	}

	return &set, nil
}

// DeleteByOwner removes the owner's insight set.
func (r *Repo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, deleteByOwnerSQL, ownerID); err != nil {
		return postgres.MapError(err, "insight set", ownerID)
	}
	return nil
}
