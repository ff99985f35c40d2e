package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// UserStore is a mock implementation of store.UserStore.
type UserStore struct {
	mock.Mock
}

var _ store.UserStore = (*UserStore)(nil)

func (m *UserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserStore) FindIDByEmail(ctx context.Context, email string) (uuid.UUID, error) {
	args := m.Called(ctx, email)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}
