package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// NotificationStore is a mock implementation of store.NotificationStore.
type NotificationStore struct {
	mock.Mock
}

var _ store.NotificationStore = (*NotificationStore)(nil)

func (m *NotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *NotificationStore) MarkOutcome(ctx context.Context, id uuid.UUID, outcome domain.NotificationStatus, emailMessageID, topicMessageID string) error {
	args := m.Called(ctx, id, outcome, emailMessageID, topicMessageID)
	return args.Error(0)
}

func (m *NotificationStore) ListByRecipient(ctx context.Context, email string, limit int) ([]*domain.Notification, error) {
	args := m.Called(ctx, email, limit)
	list, _ := args.Get(0).([]*domain.Notification)
	return list, args.Error(1)
}

func (m *NotificationStore) List(ctx context.Context, status domain.NotificationStatus, limit int) ([]*domain.Notification, error) {
	args := m.Called(ctx, status, limit)
	list, _ := args.Get(0).([]*domain.Notification)
	return list, args.Error(1)
}
