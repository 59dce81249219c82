package export

import (
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
)

// Bundle is the exported document. Field names are part of the download
// format the mobile client parses.
type Bundle struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Events      []EventRecord     `json:"events"`
	Insights    []domain.Insight  `json:"insights"`
	Challenges  []ChallengeRecord `json:"challenges"`
}

// EventRecord is one exported event.
type EventRecord struct {
	ID         uuid.UUID `json:"id"`
	Category   string    `json:"category"`
	Impact     int       `json:"impact"`
	Note       *string   `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ChallengeRecord is one exported daily challenge.
type ChallengeRecord struct {
	Day          time.Time `json:"day"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Difficulty   string    `json:"difficulty"`
	Points       int       `json:"points"`
	TimeEstimate string    `json:"time_estimate"`
}

func toEventRecords(events []domain.Event) []EventRecord {
	out := make([]EventRecord, len(events))
	for i, ev := range events {
		out[i] = EventRecord{
			ID:         ev.ID,
			Category:   ev.Category.String(),
			Impact:     ev.Impact,
			Note:       ev.Note,
			OccurredAt: ev.OccurredAt,
		}
	}
	return out
}

func toChallengeRecords(challenges []domain.Challenge) []ChallengeRecord {
	out := make([]ChallengeRecord, len(challenges))
	for i, ch := range challenges {
		out[i] = ChallengeRecord{
			Day:          ch.Day,
			Title:        ch.Title,
			Description:  ch.Description,
			Category:     ch.Category.String(),
			Difficulty:   ch.Difficulty,
			Points:       ch.Points,
			TimeEstimate: ch.TimeEstimate,
		}
	}
	return out
}
