package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/ArseniiKunilovskii/reminder/internal/models"
)

// reminderMessage is the payload published for each reminder.
type reminderMessage struct {
	Type  string       `json:"type"`
	Event models.Event `json:"event"`
}

// RedisNotifier publishes reminders as JSON on a Redis channel, so an
// out-of-process display collaborator can subscribe and render them.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	log     zerolog.Logger
}

// NewRedisNotifier connects to Redis and verifies the connection.
func NewRedisNotifier(addr, channel string, db int, log zerolog.Logger) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().Str("addr", addr).Str("channel", channel).Msg("Connected to Redis")
	return &RedisNotifier{client: client, channel: channel, log: log}, nil
}

// Notify publishes the reminder on the configured channel.
func (n *RedisNotifier) Notify(ctx context.Context, event models.Event) error {
	payload, err := json.Marshal(reminderMessage{Type: "event_reminder", Event: event})
	if err != nil {
		return fmt.Errorf("error marshaling reminder: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("error publishing reminder: %w", err)
	}
	n.log.Debug().Str("event_id", event.ID.String()).Msg("Reminder published")
	return nil
}

// Close releases the Redis connection.
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
