// Package event implements the event ledger repository using PostgreSQL.
// The write path is an idempotent upsert keyed by the client-generated id:
// replaying the same event from the outbox has no further effect.
package event

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/adapter/postgres"
	"github.com/resilientme/backend/internal/domain"
)

// Repo provides event persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new event repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// upsertSQL keeps the stored row untouched on conflict (events are
// immutable); xmax = 0 distinguishes a fresh insert from a replay.
const upsertSQL = `
INSERT INTO events (id, owner_id, category, impact, note, occurred_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
ON CONFLICT (id) DO UPDATE SET id = events.id
RETURNING (xmax = 0) AS inserted`

const windowStatsSQL = `
SELECT coalesce(avg(impact), 0) AS avg_impact, count(*) AS total
FROM events
WHERE owner_id = $1 AND occurred_at >= $2`

const deleteByOwnerSQL = `DELETE FROM events WHERE owner_id = $1`

// eventRow mirrors the events table for scany.
type eventRow struct {
	ID         uuid.UUID `db:"id"`
	OwnerID    uuid.UUID `db:"owner_id"`
	Category   string    `db:"category"`
	Impact     int       `db:"impact"`
	Note       *string   `db:"note"`
	OccurredAt time.Time `db:"occurred_at"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r eventRow) toDomain() domain.Event {
	return domain.Event{
		ID:         r.ID,
		OwnerID:    r.OwnerID,
		Category:   domain.Category(r.Category),
		Impact:     r.Impact,
		Note:       r.Note,
		OccurredAt: r.OccurredAt,
		CreatedAt:  r.CreatedAt,
	}
}

// Upsert writes the event if its id is new and reports whether a row was
// actually inserted. A replayed id leaves the ledger unchanged.
func (r *Repo) Upsert(ctx context.Context, ev *domain.Event) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var inserted bool
	err := q.QueryRow(ctx, upsertSQL,
		ev.ID, ev.OwnerID, ev.Category.String(), ev.Impact, ev.Note, ev.OccurredAt,
	).Scan(&inserted)
	if err != nil {
		return false, postgres.MapError(err, "event", ev.ID)
	}

	return inserted, nil
}

// ListRecent returns the owner's most recent events, newest first.
func (r *Repo) ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 200
	}

	query, args, err := sq.Select("id", "owner_id", "category", "impact", "note", "occurred_at", "created_at").
		From("events").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("occurred_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build events query: %w", err)
	}

	var rows []eventRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "events", ownerID)
	}

	events := make([]domain.Event, len(rows))
	for i, row := range rows {
		events[i] = row.toDomain()
	}
	return events, nil
}

// ListSince returns the owner's events with occurred_at >= since, oldest
// first, the shape the trend heuristic wants.
func (r *Repo) ListSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]domain.Event, error) {
	query, args, err := sq.Select("id", "owner_id", "category", "impact", "note", "occurred_at", "created_at").
		From("events").
		Where(sq.And{sq.Eq{"owner_id": ownerID}, sq.GtOrEq{"occurred_at": since}}).
		OrderBy("occurred_at ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build events query: %w", err)
	}

	var rows []eventRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "events", ownerID)
	}

	events := make([]domain.Event, len(rows))
	for i, row := range rows {
		events[i] = row.toDomain()
	}
	return events, nil
}

// WindowStats returns the mean impact and event count in the trailing window.
func (r *Repo) WindowStats(ctx context.Context, ownerID uuid.UUID, since time.Time) (float64, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var avg float64
	var total int
	if err := q.QueryRow(ctx, windowStatsSQL, ownerID, since).Scan(&avg, &total); err != nil {
		return 0, 0, postgres.MapError(err, "event stats", ownerID)
	}

	return avg, total, nil
}

// DeleteByOwner removes all events of an owner. Returns the number deleted.
func (r *Repo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, deleteByOwnerSQL, ownerID)
	if err != nil {
		return 0, postgres.MapError(err, "events", ownerID)
	}

	return int(tag.RowsAffected()), nil
}
