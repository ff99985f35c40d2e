package mocks

import (
	"context"

	"github.com/micropay/micropay-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// IdentityStore is a mock implementation of service.IdentityStore.
type IdentityStore struct {
	mock.Mock
}

var _ service.IdentityStore = (*IdentityStore)(nil)

func (m *IdentityStore) CreatePrincipal(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *IdentityStore) ConfirmPrincipal(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *IdentityStore) MarkEmailVerified(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *IdentityStore) Authenticate(ctx context.Context, email, password string) (*service.TokenBundle, error) {
	args := m.Called(ctx, email, password)
	bundle, _ := args.Get(0).(*service.TokenBundle)
	return bundle, args.Error(1)
}

func (m *IdentityStore) GlobalSignOut(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
