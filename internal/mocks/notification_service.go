package mocks

import (
	"context"

	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// NotificationService is a mock implementation of
// service.NotificationService.
type NotificationService struct {
	mock.Mock
}

var _ service.NotificationService = (*NotificationService)(nil)

func (m *NotificationService) Dispatch(ctx context.Context, req service.DispatchRequest) (*domain.Notification, error) {
	args := m.Called(ctx, req)
	n, _ := args.Get(0).(*domain.Notification)
	return n, args.Error(1)
}

func (m *NotificationService) DispatchRegistration(ctx context.Context, email, userID string) (*domain.Notification, error) {
	args := m.Called(ctx, email, userID)
	n, _ := args.Get(0).(*domain.Notification)
	return n, args.Error(1)
}

func (m *NotificationService) DispatchPayment(ctx context.Context, email string, amount float64, referenceID string) (*domain.Notification, error) {
	args := m.Called(ctx, email, amount, referenceID)
	n, _ := args.Get(0).(*domain.Notification)
	return n, args.Error(1)
}

func (m *NotificationService) DispatchTransaction(ctx context.Context, email string, amount float64, counterparty string, outgoing bool, referenceID string) (*domain.Notification, error) {
	args := m.Called(ctx, email, amount, counterparty, outgoing, referenceID)
	n, _ := args.Get(0).(*domain.Notification)
	return n, args.Error(1)
}

func (m *NotificationService) ListForRecipient(ctx context.Context, email string, limit int) ([]*domain.Notification, error) {
	args := m.Called(ctx, email, limit)
	list, _ := args.Get(0).([]*domain.Notification)
	return list, args.Error(1)
}

func (m *NotificationService) List(ctx context.Context, status domain.NotificationStatus, limit int) ([]*domain.Notification, error) {
	args := m.Called(ctx, status, limit)
	list, _ := args.Get(0).([]*domain.Notification)
	return list, args.Error(1)
}
