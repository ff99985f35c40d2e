package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/platform/logger"
	"github.com/micropay/micropay-api/internal/store"
)

// defaultNotificationListLimit caps the read paths when the caller does not
// choose a limit.
const defaultNotificationListLimit = 20

// PostgresNotificationStore implements the store.NotificationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresNotificationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNotificationStore creates a new PostgreSQL implementation of
// the NotificationStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresNotificationStore(db store.DBTX, logger *slog.Logger) *PostgresNotificationStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresNotificationStore{
		db:     db,
		logger: logger.With(slog.String("component", "notification_store")),
	}
}

// Ensure PostgresNotificationStore implements store.NotificationStore interface
var _ store.NotificationStore = (*PostgresNotificationStore)(nil)

// Create implements store.NotificationStore.Create
// It persists the notification in the pending state.
func (s *PostgresNotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := n.Validate(); err != nil {
		log.Warn("notification validation failed during create",
			slog.String("error", err.Error()),
			slog.String("notification_id", n.ID.String()))
		return err
	}

	query := `
		INSERT INTO notifications
			(id, recipient_email, notification_type, subject, message, user_id, reference_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		n.ID,
		n.RecipientEmail,
		n.Type,
		n.Subject,
		n.Message,
		n.UserID,
		n.ReferenceID,
		n.Status,
		n.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create notification",
			slog.String("error", err.Error()),
			slog.String("notification_id", n.ID.String()))
		return MapError(err)
	}

	log.Info("notification created",
		slog.String("notification_id", n.ID.String()),
		slog.String("type", string(n.Type)),
		slog.String("status", string(n.Status)))
	return nil
}

// MarkOutcome implements store.NotificationStore.MarkOutcome
// It records the terminal delivery state exactly once. sent_at is set only
// when at least one channel confirmed delivery.
func (s *PostgresNotificationStore) MarkOutcome(
	ctx context.Context,
	id uuid.UUID,
	outcome domain.NotificationStatus,
	emailMessageID, topicMessageID string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !outcome.Valid() || outcome == domain.NotificationStatusPending {
		return domain.NewValidationError("status", "must be a terminal delivery state")
	}

	var sentAt *time.Time
	if outcome == domain.NotificationStatusSent {
		now := time.Now().UTC()
		sentAt = &now
	}

	query := `
		UPDATE notifications
		SET status = $1, sent_at = $2, email_message_id = NULLIF($3, ''), topic_message_id = NULLIF($4, '')
		WHERE id = $5
	`

	result, err := s.db.ExecContext(ctx, query, outcome, sentAt, emailMessageID, topicMessageID, id)
	if err != nil {
		log.Error("failed to update notification status",
			slog.String("error", err.Error()),
			slog.String("notification_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("notification_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("notification not found for status update",
			slog.String("notification_id", id.String()))
		return store.ErrNotificationNotFound
	}

	log.Info("notification status updated",
		slog.String("notification_id", id.String()),
		slog.String("status", string(outcome)))
	return nil
}

// ListByRecipient implements store.NotificationStore.ListByRecipient
func (s *PostgresNotificationStore) ListByRecipient(
	ctx context.Context,
	email string,
	limit int,
) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationListLimit
	}

	query := `
		SELECT id, recipient_email, notification_type, subject, message,
		       COALESCE(user_id, ''), COALESCE(reference_id, ''), status,
		       COALESCE(email_message_id, ''), COALESCE(topic_message_id, ''),
		       created_at, sent_at
		FROM notifications
		WHERE recipient_email = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	return s.queryNotifications(ctx, query, email, limit)
}

// List implements store.NotificationStore.List
// An empty status selects all delivery states.
func (s *PostgresNotificationStore) List(
	ctx context.Context,
	status domain.NotificationStatus,
	limit int,
) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationListLimit
	}

	query := `
		SELECT id, recipient_email, notification_type, subject, message,
		       COALESCE(user_id, ''), COALESCE(reference_id, ''), status,
		       COALESCE(email_message_id, ''), COALESCE(topic_message_id, ''),
		       created_at, sent_at
		FROM notifications
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`
	return s.queryNotifications(ctx, query, string(status), limit)
}

func (s *PostgresNotificationStore) queryNotifications(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query notifications",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var notifications []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		var sentAt sql.NullTime

		err := rows.Scan(
			&n.ID,
			&n.RecipientEmail,
			&n.Type,
			&n.Subject,
			&n.Message,
			&n.UserID,
			&n.ReferenceID,
			&n.Status,
			&n.EmailMessageID,
			&n.TopicMessageID,
			&n.CreatedAt,
			&sentAt,
		)
		if err != nil {
			log.Error("failed to scan notification row",
				slog.String("error", err.Error()))
			return nil, err
		}

		if sentAt.Valid {
			t := sentAt.Time
			n.SentAt = &t
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if notifications == nil {
		notifications = []*domain.Notification{}
	}

	return notifications, nil
}
