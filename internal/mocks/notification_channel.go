package mocks

import (
	"context"

	"github.com/micropay/micropay-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// NotificationChannel is a mock implementation of service.NotificationChannel.
type NotificationChannel struct {
	mock.Mock
}

var _ service.NotificationChannel = (*NotificationChannel)(nil)

func (m *NotificationChannel) Subscribe(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *NotificationChannel) CheckSubscription(ctx context.Context, email string) (service.SubscriptionStatus, error) {
	args := m.Called(ctx, email)
	status, _ := args.Get(0).(service.SubscriptionStatus)
	return status, args.Error(1)
}

func (m *NotificationChannel) Publish(ctx context.Context, subject string, payload []byte) (string, error) {
	args := m.Called(ctx, subject, payload)
	return args.String(0), args.Error(1)
}

func (m *NotificationChannel) SendDirect(ctx context.Context, email, subject, body string) (string, error) {
	args := m.Called(ctx, email, subject, body)
	return args.String(0), args.Error(1)
}
