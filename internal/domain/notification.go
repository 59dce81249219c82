package domain

import (
	"time"

	"github.com/google/uuid"
)

// PushPayload is the message body delivered to every device of an owner.
type PushPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// NotificationTask is one deferred push. It is created once, claimed by a
// single dispatch tick, and ends in exactly one terminal state.
type NotificationTask struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Kind        TaskKind
	Status      TaskStatus
	RunAt       time.Time
	Payload     PushPayload
	Error       *string
	ClaimedAt   *time.Time
	ProcessedAt *time.Time
	CreatedAt   time.Time
}

// RecoveryFollowUpPayload is the payload enqueued for high-impact events.
// The copy matches what the mobile client expects for deep-linking.
func RecoveryFollowUpPayload() PushPayload {
	return PushPayload{
		Title: "How are you doing?",
		Body:  "Yesterday was tough. You're stronger than you know.",
		Data:  map[string]string{"type": "recovery-followup"},
	}
}

// HighImpactThreshold is the minimum impact that triggers a follow-up task.
const HighImpactThreshold = 7
