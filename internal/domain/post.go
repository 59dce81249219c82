package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MinPostContentLen is the minimum content length after sanitization.
	MinPostContentLen = 3

	// HideReportThreshold is the report count at which a post is hidden.
	HideReportThreshold = 3
)

// Post is a community post. Reactions map emoji to counts; Reports is the
// cumulative report counter that drives auto-hiding.
type Post struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Category  Category
	Content   string
	Status    PostStatus
	Reactions map[string]int
	Reports   int
	CreatedAt time.Time
}

// ReactionMarker dedupes reactions per (owner, post). Its existence means
// the owner already reacted; a second reaction is a silent no-op.
type ReactionMarker struct {
	OwnerID   uuid.UUID
	PostID    uuid.UUID
	Reaction  string
	CreatedAt time.Time
}

// PostReport records who reported what, kept alongside the counter for
// moderation audits.
type PostReport struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	PostID    uuid.UUID
	CreatedAt time.Time
}
