package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/platform/logger"
	"github.com/micropay/micropay-api/internal/store"
)

// DispatchRequest describes a notification to persist and deliver.
type DispatchRequest struct {
	RecipientEmail string
	Type           domain.NotificationType
	Subject        string
	Message        string

	// UserID and ReferenceID are optional correlation fields carried on
	// the persisted record.
	UserID      string
	ReferenceID string
}

// NotificationService persists notifications and attempts delivery over the
// two channels: direct email and the broadcast topic.
type NotificationService interface {
	// Dispatch persists the notification as pending, attempts both
	// channels independently, and records the terminal state: sent when at
	// least one channel confirmed, failed when both did not. Total failure
	// returns an internal error alongside the persisted record.
	Dispatch(ctx context.Context, req DispatchRequest) (*domain.Notification, error)

	// DispatchRegistration sends the welcome notification for a new user.
	DispatchRegistration(ctx context.Context, email, userID string) (*domain.Notification, error)

	// DispatchPayment sends a payment confirmation.
	DispatchPayment(ctx context.Context, email string, amount float64, referenceID string) (*domain.Notification, error)

	// DispatchTransaction notifies one party of a transfer. outgoing
	// selects the sender-side wording.
	DispatchTransaction(ctx context.Context, email string, amount float64, counterparty string, outgoing bool, referenceID string) (*domain.Notification, error)

	// ListForRecipient returns notifications addressed to the email,
	// newest first.
	ListForRecipient(ctx context.Context, email string, limit int) ([]*domain.Notification, error)

	// List returns notifications across all recipients, newest first. An
	// empty status selects all delivery states.
	List(ctx context.Context, status domain.NotificationStatus, limit int) ([]*domain.Notification, error)
}

type notificationServiceImpl struct {
	notifications store.NotificationStore
	channel       NotificationChannel
	logger        *slog.Logger
}

// NewNotificationService creates a new NotificationService.
// It returns an error if any of the required dependencies are nil.
func NewNotificationService(
	notifications store.NotificationStore,
	channel NotificationChannel,
	logger *slog.Logger,
) (NotificationService, error) {
	if notifications == nil {
		return nil, errors.New("notification service: notification store cannot be nil")
	}
	if channel == nil {
		return nil, errors.New("notification service: notification channel cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &notificationServiceImpl{
		notifications: notifications,
		channel:       channel,
		logger:        logger.With("component", "notification_service"),
	}, nil
}

// topicMessage is the JSON body published to the broadcast topic for a
// dispatched notification.
type topicMessage struct {
	Type      domain.NotificationType `json:"type"`
	Recipient string                  `json:"recipient"`
	Subject   string                  `json:"subject"`
	Message   string                  `json:"message"`
}

// Dispatch implements NotificationService.Dispatch
//
// Delivery is a logical OR over the two channels: partial failure is not an
// error, only total failure is. Either way the record reaches a terminal
// state exactly once; there is no retry.
func (s *notificationServiceImpl) Dispatch(ctx context.Context, req DispatchRequest) (*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	n, err := domain.NewNotification(req.RecipientEmail, req.Type, req.Subject, req.Message)
	if err != nil {
		return nil, err
	}
	n.UserID = req.UserID
	n.ReferenceID = req.ReferenceID

	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}

	emailMessageID, emailErr := s.channel.SendDirect(ctx, n.RecipientEmail, n.Subject, n.Message)
	if emailErr != nil {
		log.Warn("direct channel delivery failed",
			"error", emailErr,
			"notification_id", n.ID)
	}

	var topicMessageID string
	body, topicErr := json.Marshal(topicMessage{
		Type:      n.Type,
		Recipient: n.RecipientEmail,
		Subject:   n.Subject,
		Message:   n.Message,
	})
	if topicErr == nil {
		topicMessageID, topicErr = s.channel.Publish(ctx, n.Subject, body)
	}
	if topicErr != nil {
		log.Warn("topic channel delivery failed",
			"error", topicErr,
			"notification_id", n.ID)
	}

	outcome := domain.NotificationStatusSent
	if emailMessageID == "" && topicMessageID == "" {
		outcome = domain.NotificationStatusFailed
	}

	if err := s.notifications.MarkOutcome(ctx, n.ID, outcome, emailMessageID, topicMessageID); err != nil {
		return nil, err
	}

	n.Status = outcome
	n.EmailMessageID = emailMessageID
	n.TopicMessageID = topicMessageID

	log.Info("notification dispatched",
		"notification_id", n.ID,
		"status", string(outcome))

	if outcome == domain.NotificationStatusFailed {
		return n, fmt.Errorf("%w: notification delivery failed on all channels", domain.ErrInternal)
	}
	return n, nil
}

// DispatchRegistration implements NotificationService.DispatchRegistration
func (s *notificationServiceImpl) DispatchRegistration(ctx context.Context, email, userID string) (*domain.Notification, error) {
	return s.Dispatch(ctx, DispatchRequest{
		RecipientEmail: email,
		Type:           domain.NotificationTypeRegistration,
		Subject:        "Welcome to MicroPay",
		Message:        "Your MicroPay account has been created. You can now send and receive payments.",
		UserID:         userID,
	})
}

// DispatchPayment implements NotificationService.DispatchPayment
func (s *notificationServiceImpl) DispatchPayment(ctx context.Context, email string, amount float64, referenceID string) (*domain.Notification, error) {
	return s.Dispatch(ctx, DispatchRequest{
		RecipientEmail: email,
		Type:           domain.NotificationTypePayment,
		Subject:        "Payment confirmation",
		Message:        fmt.Sprintf("Your payment of $%.2f has been processed.", amount),
		ReferenceID:    referenceID,
	})
}

// DispatchTransaction implements NotificationService.DispatchTransaction
func (s *notificationServiceImpl) DispatchTransaction(
	ctx context.Context,
	email string,
	amount float64,
	counterparty string,
	outgoing bool,
	referenceID string,
) (*domain.Notification, error) {
	subject := "Transfer received"
	message := fmt.Sprintf("You received $%.2f from %s.", amount, counterparty)
	if outgoing {
		subject = "Transfer sent"
		message = fmt.Sprintf("You sent $%.2f to %s.", amount, counterparty)
	}

	return s.Dispatch(ctx, DispatchRequest{
		RecipientEmail: email,
		Type:           domain.NotificationTypeTransaction,
		Subject:        subject,
		Message:        message,
		ReferenceID:    referenceID,
	})
}

// ListForRecipient implements NotificationService.ListForRecipient
func (s *notificationServiceImpl) ListForRecipient(ctx context.Context, email string, limit int) ([]*domain.Notification, error) {
	if email == "" {
		return nil, domain.NewValidationError("email", "cannot be empty")
	}
	return s.notifications.ListByRecipient(ctx, email, limit)
}

// List implements NotificationService.List
func (s *notificationServiceImpl) List(ctx context.Context, status domain.NotificationStatus, limit int) ([]*domain.Notification, error) {
	if status != "" && !status.Valid() {
		return nil, domain.NewValidationError("status", "must be pending, sent or failed")
	}
	return s.notifications.List(ctx, status, limit)
}
