package mocks

import (
	"context"

	"github.com/micropay/micropay-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// AccountService is a mock implementation of service.AccountService.
type AccountService struct {
	mock.Mock
}

var _ service.AccountService = (*AccountService)(nil)

func (m *AccountService) Register(ctx context.Context, email, password string) (*service.RegistrationResult, error) {
	args := m.Called(ctx, email, password)
	result, _ := args.Get(0).(*service.RegistrationResult)
	return result, args.Error(1)
}

func (m *AccountService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	result, _ := args.Get(0).(*service.LoginResult)
	return result, args.Error(1)
}

func (m *AccountService) Logout(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
