package mocks

import (
	"context"

	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TransactionStore is a mock implementation of store.TransactionStore.
type TransactionStore struct {
	mock.Mock
}

var _ store.TransactionStore = (*TransactionStore)(nil)

func (m *TransactionStore) Create(ctx context.Context, txn *domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *TransactionStore) List(ctx context.Context, limit int) ([]*domain.TransactionView, error) {
	args := m.Called(ctx, limit)
	views, _ := args.Get(0).([]*domain.TransactionView)
	return views, args.Error(1)
}
