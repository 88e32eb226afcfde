package filter

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ArseniiKunilovskii/reminder/internal/models"
)

func event(title, description string, start time.Time) models.Event {
	return models.Event{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		StartTime:   start,
		Priority:    5,
	}
}

func day(d int, hour, minute int) time.Time {
	return time.Date(2025, 6, d, hour, minute, 0, 0, time.Local)
}

func TestApplySortsAscendingAndStable(t *testing.T) {
	events := []models.Event{
		event("nine", "", day(1, 9, 0)),
		event("eight-first", "", day(1, 8, 0)),
		event("eight-second", "", day(1, 8, 0)),
	}
	now := day(1, 0, 0)

	got := Apply(events, Criteria{ShowPast: true}, now)
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	order := []string{"eight-first", "eight-second", "nine"}
	for i, want := range order {
		if got[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, got[i].Title)
		}
	}
}

func TestApplyIsIdempotentAndPure(t *testing.T) {
	events := []models.Event{
		event("b", "", day(2, 10, 0)),
		event("a", "", day(1, 10, 0)),
	}
	c := Criteria{ShowPast: true}
	now := day(1, 0, 0)

	first := Apply(events, c, now)
	second := Apply(events, c, now)

	if len(first) != len(second) {
		t.Fatalf("expected identical lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("position %d differs between applications", i)
		}
	}
	// The input order must be untouched.
	if events[0].Title != "b" || events[1].Title != "a" {
		t.Error("Apply must not mutate its input")
	}
}

func TestApplySearchText(t *testing.T) {
	events := []models.Event{
		event("Team Meeting", "", day(1, 9, 0)),
		event("Lunch", "meeting with Sam", day(1, 12, 0)),
		event("Gym", "", day(1, 18, 0)),
	}
	now := day(1, 0, 0)

	tests := []struct {
		search string
		want   int
	}{
		{"", 3},
		{"MEETING", 2}, // title of the first, description of the second
		{"gym", 1},
		{"nothing", 0},
	}
	for _, tt := range tests {
		got := Apply(events, Criteria{Search: tt.search, ShowPast: true}, now)
		if len(got) != tt.want {
			t.Errorf("search %q: expected %d events, got %d", tt.search, tt.want, len(got))
		}
	}
}

func TestApplyDateBoundsInclusiveDateOnly(t *testing.T) {
	events := []models.Event{
		event("before", "", day(1, 23, 59)),
		event("on-start", "", day(2, 0, 30)),
		event("inside", "", day(3, 12, 0)),
		event("on-end", "", day(4, 23, 45)),
		event("after", "", day(5, 0, 1)),
	}
	now := day(1, 0, 0)

	got := Apply(events, Criteria{
		StartDate: day(2, 15, 0), // time of day on the bound is ignored
		EndDate:   day(4, 1, 0),
		ShowPast:  true,
	}, now)

	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	for i, want := range []string{"on-start", "inside", "on-end"} {
		if got[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, got[i].Title)
		}
	}
}

func TestApplyShowPastEvents(t *testing.T) {
	now := day(3, 12, 0)
	events := []models.Event{
		event("past", "", day(3, 11, 59)),
		event("future", "", day(3, 12, 1)),
	}

	withPast := Apply(events, Criteria{ShowPast: true}, now)
	if len(withPast) != 2 {
		t.Errorf("ShowPast=true: expected 2 events, got %d", len(withPast))
	}

	withoutPast := Apply(events, Criteria{ShowPast: false}, now)
	if len(withoutPast) != 1 || withoutPast[0].Title != "future" {
		t.Errorf("ShowPast=false: expected only the future event, got %+v", withoutPast)
	}
}
