package domain

import (
	"time"

	"github.com/google/uuid"
)

// Insight is one qualitative pattern observation.
type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Insight     string `json:"insight"`
	Actionable  string `json:"actionable"`
}

// InsightSet is the owner's full current set of insights. Each detector run
// replaces the whole set; there is no append log.
type InsightSet struct {
	OwnerID   uuid.UUID
	Insights  []Insight
	UpdatedAt time.Time
}
