package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultAutosavePeriod is the interval between unconditional saves.
const DefaultAutosavePeriod = 5 * time.Minute

// AutosaveScheduler persists the store at a fixed interval. The first
// save happens one full period after Start. A failed save is logged and
// the schedule keeps ticking.
type AutosaveScheduler struct {
	save   func() error
	cron   *cron.Cron
	period time.Duration
	log    zerolog.Logger
}

// NewAutosaveScheduler creates a scheduler calling save every period.
func NewAutosaveScheduler(save func() error, period time.Duration, log zerolog.Logger) *AutosaveScheduler {
	return &AutosaveScheduler{
		save:   save,
		cron:   cron.New(),
		period: period,
		log:    log,
	}
}

// Start schedules the periodic save.
func (s *AutosaveScheduler) Start() error {
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.period), s.tick); err != nil {
		return fmt.Errorf("failed to schedule autosave: %w", err)
	}
	s.cron.Start()

	s.log.Info().Dur("period", s.period).Msg("Autosave scheduler started")
	return nil
}

// Stop cancels future saves and waits for an in-flight one to finish, so
// shutdown never interrupts a write mid-file.
func (s *AutosaveScheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn().Msg("Timed out waiting for autosave to finish")
	}
}

func (s *AutosaveScheduler) tick() {
	if err := s.save(); err != nil {
		s.log.Error().Err(err).Msg("Autosave failed")
		return
	}
	s.log.Debug().Msg("Autosave complete")
}
