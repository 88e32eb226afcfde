// Package persistence stores the full agenda snapshot in a bbolt file.
// The snapshot is gob-encoded, so the ordered event list round-trips
// including identities and notified flags.
package persistence

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"go.etcd.io/bbolt"

	"github.com/ArseniiKunilovskii/reminder/internal/models"
)

const (
	bucketName      = "agenda"
	eventsKey       = "events"
	displayMonthKey = "display_month"
)

// Snapshot is the unit of persistence: the ordered event list plus the
// display-month cursor, which must survive reloads.
type Snapshot struct {
	Events       []models.Event
	DisplayMonth time.Time
}

// BoltStore persists snapshots at a fixed path. A missing file is not an
// error; opening it creates an empty database.
type BoltStore struct {
	db  *bbolt.DB
	log zerolog.Logger
}

// New opens or creates the database file and ensures the bucket exists.
func New(path string, log zerolog.Logger) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open agenda db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create agenda bucket: %w", err)
	}

	log.Debug().Str("path", path).Msg("Agenda database opened")
	return &BoltStore{db: db, log: log}, nil
}

// Close closes the database handle.
func (b *BoltStore) Close() error {
	return b.db.Close()
}

// Save overwrites the stored snapshot.
func (b *BoltStore) Save(snap Snapshot) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))

		eventBytes, err := encode(snap.Events)
		if err != nil {
			return fmt.Errorf("failed to encode events: %w", err)
		}
		if err := bucket.Put([]byte(eventsKey), eventBytes); err != nil {
			return err
		}

		monthBytes, err := encode(snap.DisplayMonth)
		if err != nil {
			return fmt.Errorf("failed to encode display month: %w", err)
		}
		return bucket.Put([]byte(displayMonthKey), monthBytes)
	})
}

// Load reads the stored snapshot. An empty database yields an empty
// snapshot and no error. A decode failure is returned to the caller,
// which should keep whatever it already holds in memory instead of
// resetting to empty.
func (b *BoltStore) Load() (Snapshot, error) {
	var snap Snapshot
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))

		if data := bucket.Get([]byte(eventsKey)); data != nil {
			if err := decode(data, &snap.Events); err != nil {
				return fmt.Errorf("failed to decode events: %w", err)
			}
		}
		if data := bucket.Get([]byte(displayMonthKey)); data != nil {
			if err := decode(data, &snap.DisplayMonth); err != nil {
				return fmt.Errorf("failed to decode display month: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
