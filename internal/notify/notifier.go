package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ArseniiKunilovskii/reminder/internal/models"
)

// Notifier delivers a reminder for an event entering its notification
// window. Implementations decide how delivery reaches the consumer and
// on which goroutine or transport it lands.
type Notifier interface {
	Notify(ctx context.Context, event models.Event) error
}

// LogNotifier writes reminders to the application log. It is the default
// delivery collaborator when no external one is configured.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify logs the reminder. Never fails.
func (n *LogNotifier) Notify(_ context.Context, event models.Event) error {
	n.log.Info().
		Str("event_id", event.ID.String()).
		Str("title", event.Title).
		Time("start_time", event.StartTime).
		Str("location", event.Location).
		Msg("Event reminder")
	return nil
}
