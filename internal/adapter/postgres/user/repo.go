// Package user persists the identity record that anchors ownership and the
// deletion cascade.
package user

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/adapter/postgres"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new user repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

const ensureSQL = `
INSERT INTO users (id, created_at) VALUES ($1, now())
ON CONFLICT (id) DO NOTHING`

const listIDsSQL = `SELECT id FROM users ORDER BY created_at`

const deleteSQL = `DELETE FROM users WHERE id = $1`

// EnsureExists creates the identity row if it is not there yet. Called on
// the first authenticated write of a new user.
func (r *Repo) EnsureExists(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, ensureSQL, id); err != nil {
		return postgres.MapError(err, "user", id)
	}
	return nil
}

// ListIDs returns every user id, oldest first. Used by the daily content
// generator.
func (r *Repo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &ids, listIDsSQL)
	if err != nil {
		return nil, postgres.MapError(err, "users", "list")
	}
	return ids, nil
}

// Delete removes the identity row. The schema cascades owner-scoped rows,
// but the account service deletes them explicitly first so storage objects
// can be cleaned alongside.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, deleteSQL, id); err != nil {
		return postgres.MapError(err, "user", id)
	}
	return nil
}
