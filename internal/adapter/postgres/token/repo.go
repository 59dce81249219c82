// Package token reads the owner's registered device tokens. Registration
// happens in the mobile client; this pipeline only resolves delivery
// targets and clears them on account deletion.
package token

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/adapter/postgres"
	"github.com/resilientme/backend/internal/domain"
)

// Repo provides device token reads backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new device token repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

const listByOwnerSQL = `
SELECT owner_id, token, platform, created_at
FROM device_tokens
WHERE owner_id = $1
ORDER BY created_at`

const deleteByOwnerSQL = `DELETE FROM device_tokens WHERE owner_id = $1`

type tokenRow struct {
	OwnerID   uuid.UUID `db:"owner_id"`
	Token     string    `db:"token"`
	Platform  string    `db:"platform"`
	CreatedAt time.Time `db:"created_at"`
}

// ListByOwner returns the owner's delivery target set, possibly empty.
func (r *Repo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.DeviceToken, error) {
	var rows []tokenRow
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, listByOwnerSQL, ownerID)
	if err != nil {
		return nil, postgres.MapError(err, "device tokens", ownerID)
	}

	tokens := make([]domain.DeviceToken, len(rows))
	for i, row := range rows {
		tokens[i] = domain.DeviceToken{
			OwnerID:   row.OwnerID,
			Token:     row.Token,
			Platform:  row.Platform,
			CreatedAt: row.CreatedAt,
		}
	}
	return tokens, nil
}

// DeleteByOwner removes all device tokens of an owner.
func (r *Repo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, deleteByOwnerSQL, ownerID); err != nil {
		return postgres.MapError(err, "device tokens", ownerID)
	}
	return nil
}
