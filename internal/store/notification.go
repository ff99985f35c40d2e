package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/micropay/micropay-api/internal/domain"
)

// NotificationStore defines the interface for notification record
// persistence. Records are created pending and transition exactly once
// after delivery attempts.
type NotificationStore interface {
	// Create persists a new notification in the pending state.
	Create(ctx context.Context, n *domain.Notification) error

	// MarkOutcome records the terminal delivery state of a notification
	// together with the per-channel message identifiers that were issued.
	// Returns ErrNotificationNotFound if the record does not exist.
	MarkOutcome(ctx context.Context, id uuid.UUID, outcome domain.NotificationStatus, emailMessageID, topicMessageID string) error

	// ListByRecipient returns notifications addressed to the given email,
	// newest first, capped at limit.
	ListByRecipient(ctx context.Context, email string, limit int) ([]*domain.Notification, error)

	// List returns notifications across all recipients, newest first,
	// capped at limit. An empty status selects all states.
	List(ctx context.Context, status domain.NotificationStatus, limit int) ([]*domain.Notification, error)
}
