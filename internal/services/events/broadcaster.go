package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jwebster45206/story-commands/pkg/command"
	"github.com/jwebster45206/story-commands/pkg/dice"
	"github.com/redis/go-redis/v9"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeCommandInterpreted EventType = "command.interpreted"
	EventTypeDiceRolled         EventType = "dice.rolled"
	EventTypeTurnQueued         EventType = "turn.queued"
)

// Event is the payload published on a session's channel
type Event struct {
	Type      EventType              `json:"type"`
	RequestID string                 `json:"request_id,omitempty"`
	SessionID string                 `json:"session_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Broadcaster publishes session events to Redis Pub/Sub for SSE distribution
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// Channel returns the pub/sub channel for a session
func Channel(sessionID uuid.UUID) string {
	return fmt.Sprintf("session-events:%s", sessionID.String())
}

// PublishCommandInterpreted announces how a line of input was classified
func (b *Broadcaster) PublishCommandInterpreted(ctx context.Context, sessionID uuid.UUID, requestID string, cmd command.Command, handled bool) error {
	return b.publish(ctx, sessionID, Event{
		Type:      EventTypeCommandInterpreted,
		RequestID: requestID,
		Data: map[string]interface{}{
			"kind":    cmd.Kind,
			"raw":     cmd.Raw,
			"handled": handled,
		},
	})
}

// PublishDiceRolled announces a resolved roll
func (b *Broadcaster) PublishDiceRolled(ctx context.Context, sessionID uuid.UUID, requestID string, spec dice.Spec, outcome dice.Outcome, formatted string) error {
	return b.publish(ctx, sessionID, Event{
		Type:      EventTypeDiceRolled,
		RequestID: requestID,
		Data: map[string]interface{}{
			"notation":  spec.Notation(),
			"label":     spec.Label,
			"rolls":     outcome.Rolls,
			"total":     outcome.Total,
			"formatted": formatted,
		},
	})
}

// PublishTurnQueued announces a turn handed to the game engine
func (b *Broadcaster) PublishTurnQueued(ctx context.Context, sessionID uuid.UUID, requestID string, kind command.Kind) error {
	return b.publish(ctx, sessionID, Event{
		Type:      EventTypeTurnQueued,
		RequestID: requestID,
		Data: map[string]interface{}{
			"status": "queued",
			"kind":   kind,
		},
	})
}

// Subscribe opens a subscription to a session's channel. The caller must
// close the returned PubSub.
func (b *Broadcaster) Subscribe(ctx context.Context, sessionID uuid.UUID) *redis.PubSub {
	return b.redisClient.Subscribe(ctx, Channel(sessionID))
}

func (b *Broadcaster) publish(ctx context.Context, sessionID uuid.UUID, event Event) error {
	channel := Channel(sessionID)
	event.SessionID = sessionID.String()

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event_type", event.Type)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", channel,
		"event_type", event.Type,
		"request_id", event.RequestID,
	)
	return nil
}
