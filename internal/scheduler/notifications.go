// Package scheduler runs the two periodic background tasks of the
// agenda: the reminder scan and the autosave. Each task owns its own
// cron instance, so a slow save can never delay a reminder and both can
// be stopped independently, letting an in-flight tick finish.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ArseniiKunilovskii/reminder/internal/models"
	"github.com/ArseniiKunilovskii/reminder/internal/notify"
	"github.com/ArseniiKunilovskii/reminder/internal/store"
)

const (
	// DefaultScanPeriod is how often the store is scanned for due events.
	DefaultScanPeriod = 30 * time.Second
	// DefaultWindow is the look-ahead during which an upcoming event fires.
	DefaultWindow = 5 * time.Minute
)

// NotificationScheduler periodically scans the store and delivers a
// one-shot reminder per event entering its window.
type NotificationScheduler struct {
	store    *store.EventStore
	notifier notify.Notifier
	cron     *cron.Cron
	period   time.Duration
	window   time.Duration
	log      zerolog.Logger
}

// NewNotificationScheduler creates a scheduler ticking every period and
// looking ahead by window.
func NewNotificationScheduler(st *store.EventStore, notifier notify.Notifier, period, window time.Duration, log zerolog.Logger) *NotificationScheduler {
	return &NotificationScheduler{
		store:    st,
		notifier: notifier,
		cron:     cron.New(),
		period:   period,
		window:   window,
		log:      log,
	}
}

// Start runs the first scan immediately, then schedules the periodic one.
func (s *NotificationScheduler) Start() error {
	s.Scan(time.Now())

	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.period), func() {
		s.Scan(time.Now())
	}); err != nil {
		return fmt.Errorf("failed to schedule notification scan: %w", err)
	}
	s.cron.Start()

	s.log.Info().Dur("period", s.period).Dur("window", s.window).Msg("Notification scheduler started")
	return nil
}

// Stop cancels future scans and waits for an in-flight one to finish,
// bounded by the context deadline.
func (s *NotificationScheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn().Msg("Timed out waiting for notification scan to finish")
	}
}

// Scan selects events due at now and delivers a reminder for each one
// not yet notified. The flag is flipped in the store before delivery, so
// the guarantee is at most one flag flip per event; a delivery may be
// lost if the process dies in between, never duplicated.
func (s *NotificationScheduler) Scan(now time.Time) {
	for _, event := range s.store.Snapshot() {
		if event.Notified || !s.due(event, now) {
			continue
		}

		marked, changed, err := s.store.MarkNotified(event.ID)
		if err != nil {
			// Deleted between snapshot and mark.
			continue
		}
		if !changed {
			continue
		}

		if err := s.notifier.Notify(context.Background(), marked); err != nil {
			s.log.Error().Err(err).Str("event_id", event.ID.String()).Msg("Failed to deliver reminder")
		}
	}
}

// due reports whether the event starts this very minute or lies strictly
// inside the look-ahead window.
func (s *NotificationScheduler) due(event models.Event, now time.Time) bool {
	if event.StartTime.Truncate(time.Minute).Equal(now.Truncate(time.Minute)) {
		return true
	}
	return event.StartTime.After(now) && event.StartTime.Before(now.Add(s.window))
}
