// Package service exposes the agenda core to its collaborators: CRUD by
// identity, filtered views, persistence and CSV interchange. Display
// code consumes only this surface.
package service

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ArseniiKunilovskii/reminder/internal/csvio"
	"github.com/ArseniiKunilovskii/reminder/internal/filter"
	"github.com/ArseniiKunilovskii/reminder/internal/models"
	"github.com/ArseniiKunilovskii/reminder/internal/persistence"
	"github.com/ArseniiKunilovskii/reminder/internal/store"
)

// Agenda ties the event store to its persistence adapter and CSV codec.
type Agenda struct {
	store   *store.EventStore
	persist *persistence.BoltStore
	codec   *csvio.Codec
	log     zerolog.Logger
}

// New creates the agenda facade.
func New(st *store.EventStore, persist *persistence.BoltStore, log zerolog.Logger) *Agenda {
	return &Agenda{
		store:   st,
		persist: persist,
		codec:   csvio.New(log),
		log:     log,
	}
}

// AddEvent validates and stores a new event, returning its identity.
func (a *Agenda) AddEvent(req *models.EventRequest) (uuid.UUID, error) {
	return a.store.Add(req)
}

// UpdateEvent replaces an event's fields, preserving its identity.
func (a *Agenda) UpdateEvent(id uuid.UUID, req *models.EventRequest) error {
	return a.store.Update(id, req)
}

// DeleteEvent removes an event.
func (a *Agenda) DeleteEvent(id uuid.UUID) error {
	return a.store.Delete(id)
}

// GetEvent reads an event by identity.
func (a *Agenda) GetEvent(id uuid.UUID) (models.Event, error) {
	return a.store.Get(id)
}

// ListAll returns the full event list in insertion order.
func (a *Agenda) ListAll() []models.Event {
	return a.store.Snapshot()
}

// ListFiltered returns the events matching the criteria, sorted by time.
func (a *Agenda) ListFiltered(c filter.Criteria) []models.Event {
	return filter.Apply(a.store.Snapshot(), c, time.Now())
}

// SetDisplayMonth moves the calendar cursor.
func (a *Agenda) SetDisplayMonth(t time.Time) {
	a.store.SetDisplayMonth(t)
}

// DisplayMonth returns the calendar cursor.
func (a *Agenda) DisplayMonth() time.Time {
	return a.store.DisplayMonth()
}

// Save persists the current store contents.
func (a *Agenda) Save() error {
	snap := persistence.Snapshot{
		Events:       a.store.Snapshot(),
		DisplayMonth: a.store.DisplayMonth(),
	}
	if err := a.persist.Save(snap); err != nil {
		a.log.Error().Err(err).Msg("Failed to save events")
		return err
	}
	a.log.Debug().Int("count", len(snap.Events)).Msg("Events saved")
	return nil
}

// Load replaces the store contents with the persisted snapshot. A
// missing or empty file loads an empty list. When the stored snapshot
// cannot be decoded the in-memory events are left untouched and the
// error is returned.
func (a *Agenda) Load() error {
	snap, err := a.persist.Load()
	if err != nil {
		a.log.Error().Err(err).Msg("Failed to load events, keeping current state")
		return err
	}

	a.store.ReplaceAll(snap.Events)
	if !snap.DisplayMonth.IsZero() {
		a.store.SetDisplayMonth(snap.DisplayMonth)
	}
	a.log.Info().Int("count", len(snap.Events)).Msg("Events loaded")
	return nil
}

// ExportCSV writes every stored event to the file at path.
func (a *Agenda) ExportCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		a.log.Error().Err(err).Str("path", path).Msg("Failed to create CSV file")
		return err
	}
	defer f.Close()

	if err := a.codec.Export(f, a.store.Snapshot()); err != nil {
		a.log.Error().Err(err).Str("path", path).Msg("Failed to export CSV")
		return err
	}
	a.log.Info().Str("path", path).Msg("Events exported to CSV")
	return nil
}

// ImportCSV appends the events parsed from the file at path and returns
// how many were imported. Only a file-level failure is an error;
// individual bad lines are logged and skipped by the codec.
func (a *Agenda) ImportCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		a.log.Error().Err(err).Str("path", path).Msg("Failed to open CSV file")
		return 0, err
	}
	defer f.Close()

	requests, skipped, err := a.codec.Import(f)
	if err != nil {
		a.log.Error().Err(err).Str("path", path).Msg("Failed to read CSV file")
		return 0, err
	}

	imported := 0
	for i := range requests {
		if _, err := a.store.Add(&requests[i]); err != nil {
			a.log.Warn().Err(err).Str("title", requests[i].Title).Msg("Skipping invalid imported event")
			skipped++
			continue
		}
		imported++
	}

	a.log.Info().Str("path", path).Int("imported", imported).Int("skipped", skipped).
		Msg("CSV import finished")
	return imported, nil
}
