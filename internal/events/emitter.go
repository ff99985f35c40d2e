package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Publisher is the topic side of the notification channel. It is satisfied
// by the service.NotificationChannel implementations.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload []byte) (string, error)
}

// ChannelEmitter publishes events to the broadcast topic, using the event
// type as the message subject.
type ChannelEmitter struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewChannelEmitter creates an emitter over the given topic publisher.
func NewChannelEmitter(publisher Publisher, logger *slog.Logger) *ChannelEmitter {
	if publisher == nil {
		panic("publisher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ChannelEmitter{
		publisher: publisher,
		logger:    logger.With("component", "channel_emitter"),
	}
}

// Ensure ChannelEmitter implements Emitter interface
var _ Emitter = (*ChannelEmitter)(nil)

// EmitEvent publishes the event envelope as JSON.
func (e *ChannelEmitter) EmitEvent(ctx context.Context, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	messageID, err := e.publisher.Publish(ctx, event.Type, body)
	if err != nil {
		e.logger.Error("failed to publish event",
			"error", err,
			"event_id", event.ID,
			"event_type", event.Type)
		return err
	}

	e.logger.Debug("event published",
		"event_id", event.ID,
		"event_type", event.Type,
		"message_id", messageID)
	return nil
}
