// Package insight derives qualitative pattern observations from an owner's
// recent events. Detection is pure: same events in, same insights out.
package insight

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/resilientme/backend/internal/domain"
)

const (
	// ghostingMinMentions is the minimum number of dating notes mentioning
	// ghosting before the pattern is called out.
	ghostingMinMentions = 3

	// clusterMinCount floors the weekday clustering threshold.
	clusterMinCount = 3

	// trendMinEvents is the minimum sample before a trend is reported.
	trendMinEvents = 4

	// trendMinDrop is how much the mean impact must fall between window
	// halves to count as improvement.
	trendMinDrop = 1.0
)

// Detect runs every detector over the events and returns the found
// insights, in stable order. Events may arrive in any order.
func Detect(events []domain.Event) []domain.Insight {
	if len(events) == 0 {
		return nil
	}

	sorted := make([]domain.Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt.Before(sorted[j].OccurredAt)
	})

	var out []domain.Insight
	if ins := detectGhosting(sorted); ins != nil {
		out = append(out, *ins)
	}
	if ins := detectWeekdayCluster(sorted); ins != nil {
		out = append(out, *ins)
	}
	if ins := detectImprovingTrend(sorted); ins != nil {
		out = append(out, *ins)
	}
	return out
}

// detectGhosting fires when ghosting dominates the owner's dating events:
// at least three dating notes mention it and they make up more than half
// of all dating events.
func detectGhosting(events []domain.Event) *domain.Insight {
	var dating, mentions int
	for _, ev := range events {
		if ev.Category != domain.CategoryDating {
			continue
		}
		dating++
		if ev.Note != nil && strings.Contains(strings.ToLower(*ev.Note), "ghost") {
			mentions++
		}
	}

	if mentions < ghostingMinMentions || mentions*2 <= dating {
		return nil
	}

	return &domain.Insight{
		Title:       "Ghosting Pattern",
		Description: fmt.Sprintf("%d of your recent dating experiences mention being ghosted.", mentions),
		Insight:     "Ghosting says everything about the other person's communication skills and nothing about your worth.",
		Actionable:  "Consider setting earlier expectations around communication, and give yourself permission to move on quickly.",
	}
}

// detectWeekdayCluster fires when one weekday holds an outsized share of
// events: at least max(3, total/3) on a single weekday.
func detectWeekdayCluster(events []domain.Event) *domain.Insight {
	var counts [7]int
	for _, ev := range events {
		counts[ev.OccurredAt.Weekday()]++
	}

	best := time.Sunday
	for d := time.Monday; d <= time.Saturday; d++ {
		if counts[d] > counts[best] {
			best = d
		}
	}

	threshold := len(events) / 3
	if threshold < clusterMinCount {
		threshold = clusterMinCount
	}
	if counts[best] < threshold {
		return nil
	}

	return &domain.Insight{
		Title:       "Difficult " + best.String() + "s",
		Description: fmt.Sprintf("%d of your %d recent setbacks happened on a %s.", counts[best], len(events), best),
		Insight:     "Clusters like this often trace back to a recurring situation rather than bad luck.",
		Actionable:  fmt.Sprintf("Plan something kind for yourself on %ss, and look at what that day usually involves.", best),
	}
}

// detectImprovingTrend fires when the mean impact of the newer half of the
// window sits at least a full point below the older half.
func detectImprovingTrend(events []domain.Event) *domain.Insight {
	if len(events) < trendMinEvents {
		return nil
	}

	mid := len(events) / 2
	older := meanImpact(events[:mid])
	newer := meanImpact(events[mid:])

	if older-newer < trendMinDrop {
		return nil
	}

	return &domain.Insight{
		Title:       "You're Bouncing Back Faster",
		Description: fmt.Sprintf("Recent setbacks hit %.1f points lighter than earlier ones.", older-newer),
		Insight:     "Lower impact over time is resilience building, even when individual days still feel hard.",
		Actionable:  "Notice what you did differently after the recent ones and keep doing it.",
	}
}

func meanImpact(events []domain.Event) float64 {
	if len(events) == 0 {
		return 0
	}
	var sum int
	for _, ev := range events {
		sum += ev.Impact
	}
	return float64(sum) / float64(len(events))
}
