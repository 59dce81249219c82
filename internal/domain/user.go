package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record. Authentication happens upstream; this row
// anchors ownership and the deletion cascade.
type User struct {
	ID        uuid.UUID
	CreatedAt time.Time
}

// DeviceToken is one push-capable endpoint of an owner. Registration
// mechanics live in the client; this pipeline only reads the set.
type DeviceToken struct {
	OwnerID   uuid.UUID
	Token     string
	Platform  string
	CreatedAt time.Time
}

// Challenge is the once-per-day generated content item for an owner.
type Challenge struct {
	OwnerID      uuid.UUID
	Day          time.Time // calendar day, midnight UTC
	Title        string
	Description  string
	Category     Category
	Difficulty   string
	Points       int
	TimeEstimate string
	CreatedAt    time.Time
}
