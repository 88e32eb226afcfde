package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ArseniiKunilovskii/reminder/internal/models"
)

// EventStore owns the authoritative ordered event list. The order is
// insertion order, not time order. A single mutex serializes the
// foreground CRUD path and the two background schedulers; everything
// handed out is a value copy, never an alias into the live slice.
type EventStore struct {
	mu           sync.RWMutex
	events       []models.Event
	displayMonth time.Time
	log          zerolog.Logger
}

// New creates an empty store with the display month set to the current one.
func New(log zerolog.Logger) *EventStore {
	return &EventStore{
		displayMonth: monthStart(time.Now()),
		log:          log,
	}
}

// Add validates the request, assigns a fresh identity and appends the
// event. Returns the new ID.
func (s *EventStore) Add(req *models.EventRequest) (uuid.UUID, error) {
	if err := req.Validate(); err != nil {
		return uuid.Nil, err
	}
	event := models.NewEvent(req)

	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()

	s.log.Debug().Str("event_id", event.ID.String()).Str("title", event.Title).Msg("Event added")
	return event.ID, nil
}

// Get returns a copy of the event with the given ID.
func (s *EventStore) Get(id uuid.UUID) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Event{}, ErrEventNotFound
	}
	return s.events[idx], nil
}

// Update replaces the event's fields in place, keeping its identity and
// position. Editing the timestamp re-arms the reminder: the notified
// flag is reset so the event can fire again at its new time. Any other
// edit preserves the flag.
func (s *EventStore) Update(id uuid.UUID, req *models.EventRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrEventNotFound
	}

	prev := s.events[idx]
	next := models.Event{
		ID:          prev.ID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		Location:    req.Location,
		Category:    req.Category,
		Priority:    req.Priority,
		Notified:    prev.Notified,
	}
	if !next.StartTime.Equal(prev.StartTime) {
		next.Notified = false
	}
	s.events[idx] = next

	s.log.Debug().Str("event_id", id.String()).Msg("Event updated")
	return nil
}

// Delete removes the event with the given ID.
func (s *EventStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrEventNotFound
	}
	s.events = append(s.events[:idx], s.events[idx+1:]...)

	s.log.Debug().Str("event_id", id.String()).Msg("Event deleted")
	return nil
}

// Snapshot returns a copy of the ordered event list that is safe to
// iterate while the store keeps mutating.
func (s *EventStore) Snapshot() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]models.Event, len(s.events))
	copy(snapshot, s.events)
	return snapshot
}

// Len returns the number of stored events.
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// ReplaceAll swaps the full event list, used when loading a persisted
// snapshot. The slice is copied; the caller keeps ownership of its own.
func (s *EventStore) ReplaceAll(events []models.Event) {
	replacement := make([]models.Event, len(events))
	copy(replacement, events)

	s.mu.Lock()
	s.events = replacement
	s.mu.Unlock()
}

// MarkNotified flips the notified flag to true. The returned bool is
// false when the flag was already set, so a racing second scan cannot
// deliver the same reminder twice. Returns the event as marked.
func (s *EventStore) MarkNotified(id uuid.UUID) (models.Event, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Event{}, false, ErrEventNotFound
	}
	if s.events[idx].Notified {
		return s.events[idx], false, nil
	}
	s.events[idx].Notified = true
	return s.events[idx], true, nil
}

// SetDisplayMonth moves the display cursor, normalized to the first day
// of the month.
func (s *EventStore) SetDisplayMonth(t time.Time) {
	s.mu.Lock()
	s.displayMonth = monthStart(t)
	s.mu.Unlock()
}

// DisplayMonth returns the current display cursor.
func (s *EventStore) DisplayMonth() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.displayMonth
}

// indexOf must be called with the mutex held.
func (s *EventStore) indexOf(id uuid.UUID) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
