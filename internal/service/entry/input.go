package entry

import (
	"time"

	"github.com/google/uuid"
)

// CreateInput is one client-submitted event. The client mints the ID before
// its first send attempt so retries replay the same identity.
type CreateInput struct {
	ID         uuid.UUID
	Category   string
	Impact     int
	Note       *string
	OccurredAt time.Time
}
