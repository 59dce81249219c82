package domain

import (
	"time"

	"github.com/google/uuid"
)

// RateLimitBucket is a fixed-window counter for one (owner, action) pair.
// The window resets when now - WindowStart exceeds the action's window.
type RateLimitBucket struct {
	OwnerID     uuid.UUID
	ActionKey   string
	Count       int
	WindowStart time.Time
}

// Action keys guarded by the rate limiter.
const (
	ActionCreateEntry = "create-entry"
	ActionCreatePost  = "create-post"
	ActionReact       = "react"
	ActionReport      = "report"
	ActionExport      = "export"
)
