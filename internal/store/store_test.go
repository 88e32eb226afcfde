package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ArseniiKunilovskii/reminder/internal/models"
)

func newTestStore() *EventStore {
	return New(zerolog.Nop())
}

func request(title string, start time.Time) *models.EventRequest {
	return &models.EventRequest{
		Title:     title,
		StartTime: start,
		Priority:  5,
	}
}

func TestAddAndGet(t *testing.T) {
	s := newTestStore()
	start := time.Date(2025, 6, 1, 14, 0, 0, 0, time.Local)

	req := request("Dentist", start)
	req.Description = "Bring insurance card"
	req.Location = "Main St 4"
	req.Category = "Health"

	id, err := s.Add(req)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	event, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if event.Title != "Dentist" || event.Description != "Bring insurance card" ||
		event.Location != "Main St 4" || event.Category != "Health" ||
		event.Priority != 5 || !event.StartTime.Equal(start) {
		t.Errorf("fields not preserved: %+v", event)
	}
	if event.Notified {
		t.Error("new event must start unnotified")
	}

	all := s.Snapshot()
	if len(all) != 1 || all[0].ID != id {
		t.Errorf("expected snapshot with exactly the added event, got %+v", all)
	}
}

func TestAddRejectsEmptyTitle(t *testing.T) {
	s := newTestStore()

	_, err := s.Add(request("   ", time.Now()))
	if !errors.Is(err, models.ErrInvalidEvent) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if s.Len() != 0 {
		t.Error("invalid event must not be stored")
	}
}

func TestUpdatePreservesIdentityAndNotified(t *testing.T) {
	s := newTestStore()
	start := time.Date(2025, 6, 1, 14, 0, 0, 0, time.Local)

	id, err := s.Add(request("Dentist", start))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, _, err := s.MarkNotified(id); err != nil {
		t.Fatalf("MarkNotified failed: %v", err)
	}

	// Same timestamp: flag survives the edit.
	if err := s.Update(id, request("Dentist (moved room)", start)); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	event, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if event.Title != "Dentist (moved room)" {
		t.Errorf("expected updated title, got %q", event.Title)
	}
	if !event.Notified {
		t.Error("notified flag must survive an edit that keeps the timestamp")
	}

	// New timestamp: the reminder is re-armed.
	if err := s.Update(id, request("Dentist (moved room)", start.Add(time.Hour))); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	event, _ = s.Get(id)
	if event.Notified {
		t.Error("editing the timestamp must reset the notified flag")
	}
	if event.ID != id {
		t.Error("identity must survive updates")
	}
}

func TestUpdateAndDeleteNotFound(t *testing.T) {
	s := newTestStore()

	if err := s.Update(uuid.New(), request("x", time.Now())); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("Update: expected ErrEventNotFound, got %v", err)
	}
	if err := s.Delete(uuid.New()); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("Delete: expected ErrEventNotFound, got %v", err)
	}
	if _, err := s.Get(uuid.New()); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("Get: expected ErrEventNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore()

	id1, _ := s.Add(request("a", time.Now()))
	id2, _ := s.Add(request("b", time.Now()))

	if err := s.Delete(id1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 event, got %d", s.Len())
	}
	if _, err := s.Get(id2); err != nil {
		t.Errorf("remaining event must still be readable: %v", err)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := newTestStore()
	id, _ := s.Add(request("a", time.Now()))

	snapshot := s.Snapshot()
	snapshot[0].Title = "mutated"

	event, _ := s.Get(id)
	if event.Title != "a" {
		t.Error("mutating a snapshot must not affect the store")
	}
}

func TestMarkNotifiedFlipsOnce(t *testing.T) {
	s := newTestStore()
	id, _ := s.Add(request("a", time.Now()))

	_, changed, err := s.MarkNotified(id)
	if err != nil || !changed {
		t.Fatalf("first mark: changed=%v err=%v", changed, err)
	}
	_, changed, err = s.MarkNotified(id)
	if err != nil || changed {
		t.Fatalf("second mark: changed=%v err=%v", changed, err)
	}
}

func TestDisplayMonthNormalized(t *testing.T) {
	s := newTestStore()

	s.SetDisplayMonth(time.Date(2025, 6, 17, 13, 45, 0, 0, time.Local))
	got := s.DisplayMonth()
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestConcurrentAddsWithScannerTicks(t *testing.T) {
	s := newTestStore()
	const n = 200

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Add(request("event", time.Now().Add(time.Hour))); err != nil {
				t.Errorf("Add failed: %v", err)
			}
		}()
	}
	// Interleave scanner-style reads and flag flips.
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, event := range s.Snapshot() {
				s.MarkNotified(event.ID)
			}
		}()
	}
	wg.Wait()

	if s.Len() != n {
		t.Fatalf("expected %d events, got %d", n, s.Len())
	}
	seen := make(map[uuid.UUID]bool, n)
	for _, event := range s.Snapshot() {
		if seen[event.ID] {
			t.Fatalf("duplicate identity %s", event.ID)
		}
		seen[event.ID] = true
	}
}
