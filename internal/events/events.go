// Package events defines the broadcast events the workflows publish to the
// notification topic, and the emitter that carries them there.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types published to the broadcast topic.
const (
	// TypeUserRegistered announces a completed registration.
	TypeUserRegistered = "user_registered"

	// TypeTransferSent notifies the sender side of a completed transfer.
	TypeTransferSent = "transfer_sent"

	// TypeTransferReceived notifies the receiver side of a completed transfer.
	TypeTransferReceived = "transfer_received"
)

// Event is the envelope published to the broadcast topic. The payload is
// one of the typed payload structs below, serialized as JSON.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an Event of the given type wrapping the payload.
func NewEvent(eventType string, payload any) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// UserRegisteredPayload is the payload of a TypeUserRegistered event.
type UserRegisteredPayload struct {
	Email string `json:"email"`
}

// TransferPayload is the payload of the transfer event pair. The same
// payload is published once per side with the matching event type.
type TransferPayload struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	FromEmail     string    `json:"from_email"`
	ToEmail       string    `json:"to_email"`
	Amount        float64   `json:"amount"`
}

// Emitter publishes events to the broadcast topic.
type Emitter interface {
	// EmitEvent publishes the event. Returns an error if the event cannot
	// be serialized or the topic rejects it.
	EmitEvent(ctx context.Context, event *Event) error
}
