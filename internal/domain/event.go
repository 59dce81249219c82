package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MinImpact and MaxImpact bound the emotional impact scale.
	MinImpact = 0
	MaxImpact = 10

	// MaxNoteLen caps a sanitized note, in runes.
	MaxNoteLen = 2000
)

// Event is one logged rejection. Events are immutable once accepted: the
// client generates the ID before the first send attempt, so outbox retries
// re-send the same ID and the ledger write stays an idempotent upsert.
type Event struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Category   Category
	Impact     int
	Note       *string
	OccurredAt time.Time
	CreatedAt  time.Time
}

// Validate checks the event's own fields. The note is expected to be
// sanitized already.
func (e *Event) Validate() error {
	var errs []FieldError

	if e.ID == uuid.Nil {
		errs = append(errs, FieldError{Field: "id", Message: "id is required"})
	}
	if e.OwnerID == uuid.Nil {
		errs = append(errs, FieldError{Field: "owner_id", Message: "owner is required"})
	}
	if !e.Category.IsValid() {
		errs = append(errs, FieldError{Field: "category", Message: "unknown category"})
	}
	if e.Impact < MinImpact || e.Impact > MaxImpact {
		errs = append(errs, FieldError{Field: "impact", Message: "impact must be between 0 and 10"})
	}
	if e.Note != nil && len([]rune(*e.Note)) > MaxNoteLen {
		errs = append(errs, FieldError{Field: "note", Message: "note too long"})
	}
	if e.OccurredAt.IsZero() {
		errs = append(errs, FieldError{Field: "occurred_at", Message: "timestamp is required"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Day returns the calendar day of the event in loc, used as the aggregate
// bucket key. The event's local day, not the ingestion day.
func (e *Event) Day(loc *time.Location) time.Time {
	t := e.OccurredAt.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
