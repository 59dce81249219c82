// Package post implements community post, reaction-marker, and report
// persistence. Counter updates are single statements so they stay atomic
// under concurrent callers; the report counter drives auto-hiding in the
// same statement that increments it.
package post

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/adapter/postgres"
	"github.com/resilientme/backend/internal/domain"
)

// Repo provides community content persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new post repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

const createSQL = `
INSERT INTO posts (id, author_id, category, content, status, reactions, reports, created_at)
VALUES ($1, $2, $3, $4, $5, '{}'::jsonb, 0, now())`

const getSQL = `
SELECT id, author_id, category, content, status, reactions, reports, created_at
FROM posts
WHERE id = $1`

// incrementReactionSQL bumps one emoji counter inside the reactions jsonb.
const incrementReactionSQL = `
UPDATE posts
SET reactions = jsonb_set(
        reactions,
        ARRAY[$2],
        (coalesce(reactions->>$2, '0')::int + 1)::text::jsonb)
WHERE id = $1`

// incrementReportSQL bumps the counter and hides the post in the same
// statement once the threshold is reached.
const incrementReportSQL = `
UPDATE posts
SET reports = reports + 1,
    status  = CASE WHEN reports + 1 >= $2 THEN 'HIDDEN' ELSE status END
WHERE id = $1
RETURNING reports, status`

const insertMarkerSQL = `
INSERT INTO reaction_markers (owner_id, post_id, reaction, created_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (owner_id, post_id) DO NOTHING`

const insertReportSQL = `
INSERT INTO post_reports (id, owner_id, post_id, created_at)
VALUES ($1, $2, $3, now())`

const backfillStatusSQL = `
UPDATE posts SET status = 'VISIBLE'
WHERE id IN (
    SELECT id FROM posts
    WHERE status IS NULL OR status = ''
    ORDER BY created_at DESC
    LIMIT $1
)`

const deleteMarkersBeforeSQL = `DELETE FROM reaction_markers WHERE created_at < $1`

const deleteMarkersByOwnerSQL = `DELETE FROM reaction_markers WHERE owner_id = $1`

// Create writes a new visible post.
func (r *Repo) Create(ctx context.Context, p *domain.Post) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	_, err := q.Exec(ctx, createSQL,
		p.ID, p.AuthorID, p.Category.String(), p.Content, p.Status.String())
	if err != nil {
		return postgres.MapError(err, "post", p.ID)
	}
	return nil
}

// Get returns one post by id.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	return scanPost(q.QueryRow(ctx, getSQL, id), id)
}

// ListVisible returns visible posts, newest first.
func (r *Repo) ListVisible(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	if limit <= 0 {
		limit = 50
	}

	query, args, err := sq.Select("id", "author_id", "category", "content", "status", "reactions", "reports", "created_at").
		From("posts").
		Where(sq.Eq{"status": domain.PostStatusVisible.String()}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build posts query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "posts", "feed")
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, nil
}

// InsertMarker records a reaction marker and reports whether it was new.
// A false return means the owner already reacted to this post.
func (r *Repo) InsertMarker(ctx context.Context, m *domain.ReactionMarker) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, insertMarkerSQL, m.OwnerID, m.PostID, m.Reaction)
	if err != nil {
		return false, postgres.MapError(err, "reaction marker", m.PostID)
	}
	return tag.RowsAffected() > 0, nil
}

// IncrementReaction bumps the emoji counter on a post.
func (r *Repo) IncrementReaction(ctx context.Context, postID uuid.UUID, reaction string) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, incrementReactionSQL, postID, reaction)
	if err != nil {
		return postgres.MapError(err, "post", postID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("post %s: %w", postID, domain.ErrNotFound)
	}
	return nil
}

// IncrementReport bumps the report counter, hiding the post at the
// threshold. Returns the new count and whether the post is now hidden.
func (r *Repo) IncrementReport(ctx context.Context, postID uuid.UUID, hideThreshold int) (int, bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var reports int
	var status string
	err := q.QueryRow(ctx, incrementReportSQL, postID, hideThreshold).Scan(&reports, &status)
	if err != nil {
		return 0, false, postgres.MapError(err, "post", postID)
	}

	return reports, domain.PostStatus(status) == domain.PostStatusHidden, nil
}

// InsertReport records who reported what.
func (r *Repo) InsertReport(ctx context.Context, rep *domain.PostReport) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, insertReportSQL, rep.ID, rep.OwnerID, rep.PostID); err != nil {
		return postgres.MapError(err, "post report", rep.PostID)
	}
	return nil
}

// BackfillStatus marks recent posts without a status as visible.
// Returns the number updated.
func (r *Repo) BackfillStatus(ctx context.Context, limit int) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, backfillStatusSQL, limit)
	if err != nil {
		return 0, postgres.MapError(err, "posts", "backfill")
	}
	return int(tag.RowsAffected()), nil
}

// DeleteMarkersBefore removes reaction markers older than cutoff.
// Returns the number deleted.
func (r *Repo) DeleteMarkersBefore(ctx context.Context, cutoff time.Time) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, deleteMarkersBeforeSQL, cutoff)
	if err != nil {
		return 0, postgres.MapError(err, "reaction markers", "retention")
	}
	return int(tag.RowsAffected()), nil
}

// DeleteMarkersByOwner removes all reaction markers of an owner.
func (r *Repo) DeleteMarkersByOwner(ctx context.Context, ownerID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, deleteMarkersByOwnerSQL, ownerID); err != nil {
		return postgres.MapError(err, "reaction markers", ownerID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner, key any) (*domain.Post, error) {
	p, err := scanPostRow(row)
	if err != nil {
		return nil, postgres.MapError(err, "post", key)
	}
	return p, nil
}

func scanPostRow(row rowScanner) (*domain.Post, error) {
	var (
		p        domain.Post
		category string
		status   string
		raw      []byte
	)
	if err := row.Scan(&p.ID, &p.AuthorID, &category, &p.Content, &status, &raw, &p.Reports, &p.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &p.Reactions); err != nil {
		return nil, fmt.Errorf("post %s: unmarshal reactions: %w", p.ID, err)
	}
	p.Category = domain.Category(category)
	p.Status = domain.PostStatus(status)
	return &p, nil
}
