package domain

import (
	"time"

	"github.com/google/uuid"
)

// Per-day counters live in the aggregate_buckets table and are mutated only
// through the fold upsert; the write path never reads them back, so they
// have no struct here.

// DerivedScore is the advisory resilience score, recomputed wholesale from
// the trailing event window on every write. Last writer wins.
type DerivedScore struct {
	OwnerID   uuid.UUID
	Score     int
	UpdatedAt time.Time
}

const (
	// MinScore and MaxScore bound the derived resilience score.
	MinScore = 5
	MaxScore = 100

	// ScoreWindowDays is the trailing window the score is computed over.
	ScoreWindowDays = 7

	// scoreSlope is how many score points one unit of average impact costs.
	scoreSlope = 7
)

// ComputeScore maps the average impact over the trailing window to a score:
// max(5, 100 - avg*7). An empty window yields the maximum score.
func ComputeScore(avgImpact float64, sampleCount int) int {
	if sampleCount == 0 {
		return MaxScore
	}
	score := MaxScore - int(avgImpact*scoreSlope+0.5)
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
