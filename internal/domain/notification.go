package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a notification request.
type NotificationType string

const (
	NotificationTypeRegistration NotificationType = "registration"
	NotificationTypePayment      NotificationType = "payment"
	NotificationTypeTransaction  NotificationType = "transaction"
	NotificationTypeGeneral      NotificationType = "general"
)

// Valid reports whether the type is one of the known notification types.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeRegistration,
		NotificationTypePayment,
		NotificationTypeTransaction,
		NotificationTypeGeneral:
		return true
	}
	return false
}

// NotificationStatus is the delivery state of a notification.
// Transitions once: pending -> sent | failed. Sent and failed are terminal;
// no retry scheduling exists in this core.
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// Valid reports whether the status is one of the known delivery states.
func (s NotificationStatus) Valid() bool {
	switch s {
	case NotificationStatusPending, NotificationStatusSent, NotificationStatusFailed:
		return true
	}
	return false
}

// Notification is a typed notification request persisted before delivery is
// attempted over the direct and broadcast channels.
type Notification struct {
	ID             uuid.UUID          `json:"id"`
	RecipientEmail string             `json:"recipient_email"`
	Type           NotificationType   `json:"notification_type"`
	Subject        string             `json:"subject"`
	Message        string             `json:"message"`
	UserID         string             `json:"user_id,omitempty"`
	ReferenceID    string             `json:"reference_id,omitempty"`
	Status         NotificationStatus `json:"status"`
	EmailMessageID string             `json:"-"`
	TopicMessageID string             `json:"-"`
	CreatedAt      time.Time          `json:"created_at"`
	SentAt         *time.Time         `json:"sent_at,omitempty"`
}

// NewNotification creates a pending Notification.
// Returns an error if validation fails.
func NewNotification(
	recipientEmail string,
	typ NotificationType,
	subject, message string,
) (*Notification, error) {
	n := &Notification{
		ID:             uuid.New(),
		RecipientEmail: recipientEmail,
		Type:           typ,
		Subject:        subject,
		Message:        message,
		Status:         NotificationStatusPending,
		CreatedAt:      time.Now().UTC(),
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}

	return n, nil
}

// Validate checks if the Notification has valid data.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty")
	}
	if n.RecipientEmail == "" {
		return NewValidationError("recipient_email", "cannot be empty")
	}
	if !validEmailFormat(n.RecipientEmail) {
		return NewValidationError("recipient_email", "has invalid format")
	}
	if !n.Type.Valid() {
		return NewValidationError("notification_type", "is not a known type")
	}
	if n.Subject == "" {
		return NewValidationError("subject", "cannot be empty")
	}
	if n.Message == "" {
		return NewValidationError("message", "cannot be empty")
	}
	if !n.Status.Valid() {
		return NewValidationError("status", "is not a known status")
	}
	return nil
}
