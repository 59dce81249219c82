package challenge

import (
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
)

// catalogItem is one template the daily generator picks from.
type catalogItem struct {
	Title        string
	Description  string
	Category     domain.Category
	Difficulty   string
	Points       int
	TimeEstimate string
}

// catalog is the built-in rotation. Picks are deterministic per
// (owner, day), so re-running the generator lands on the same item.
var catalog = []catalogItem{
	{
		Title:        "Self-Care Check",
		Description:  "Do one small thing purely for yourself today and write down how it felt.",
		Category:     domain.CategoryOther,
		Difficulty:   "easy",
		Points:       10,
		TimeEstimate: "15 minutes",
	},
	{
		Title:        "Reach Out First",
		Description:  "Message one person you have been meaning to talk to, without waiting for an occasion.",
		Category:     domain.CategorySocial,
		Difficulty:   "medium",
		Points:       15,
		TimeEstimate: "10 minutes",
	},
	{
		Title:        "Rejection Reframe",
		Description:  "Pick one recent setback and write three things it did not change about you.",
		Category:     domain.CategoryOther,
		Difficulty:   "medium",
		Points:       15,
		TimeEstimate: "20 minutes",
	},
	{
		Title:        "One More Application",
		Description:  "Send one application or pitch you have been putting off. Done beats perfect.",
		Category:     domain.CategoryJob,
		Difficulty:   "hard",
		Points:       20,
		TimeEstimate: "30 minutes",
	},
	{
		Title:        "Say Yes To Plans",
		Description:  "Accept or propose one social plan for this week, however small.",
		Category:     domain.CategorySocial,
		Difficulty:   "easy",
		Points:       10,
		TimeEstimate: "5 minutes",
	},
	{
		Title:        "Screen-Free Evening",
		Description:  "Put the apps away after dinner and do something with your hands instead.",
		Category:     domain.CategoryOther,
		Difficulty:   "medium",
		Points:       15,
		TimeEstimate: "2 hours",
	},
}

// pick selects the catalog item for an owner and day.
func pick(ownerID uuid.UUID, day time.Time) catalogItem {
	h := fnv.New32a()
	h.Write(ownerID[:])
	h.Write([]byte(day.Format(time.DateOnly)))
	return catalog[int(h.Sum32())%len(catalog)]
}
