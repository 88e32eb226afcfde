package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/ArseniiKunilovskii/reminder/internal/models"
)

// Criteria selects and bounds the events shown in a list view. A zero
// StartDate or EndDate means the bound is not set.
type Criteria struct {
	Search    string    `json:"search"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	ShowPast  bool      `json:"show_past"`
}

// Apply filters a store snapshot against the criteria and returns a fresh
// list sorted ascending by timestamp. The sort is stable, so events with
// equal timestamps keep their insertion order. The snapshot is never
// mutated.
func Apply(events []models.Event, c Criteria, now time.Time) []models.Event {
	search := strings.ToLower(c.Search)

	out := make([]models.Event, 0, len(events))
	for _, event := range events {
		if search != "" &&
			!strings.Contains(strings.ToLower(event.Title), search) &&
			!strings.Contains(strings.ToLower(event.Description), search) {
			continue
		}

		// Bounds are inclusive and compare dates only; the event's
		// time of day is ignored here.
		day := dateOnly(event.StartTime)
		if !c.StartDate.IsZero() && day.Before(dateOnly(c.StartDate)) {
			continue
		}
		if !c.EndDate.IsZero() && day.After(dateOnly(c.EndDate)) {
			continue
		}

		if !c.ShowPast && event.StartTime.Before(now) {
			continue
		}

		out = append(out, event)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
