package mocks

import (
	"context"

	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// TransferService is a mock implementation of service.TransferService.
type TransferService struct {
	mock.Mock
}

var _ service.TransferService = (*TransferService)(nil)

func (m *TransferService) Transfer(ctx context.Context, fromEmail, toEmail string, amount float64) (*domain.Transaction, error) {
	args := m.Called(ctx, fromEmail, toEmail, amount)
	txn, _ := args.Get(0).(*domain.Transaction)
	return txn, args.Error(1)
}

func (m *TransferService) ListTransactions(ctx context.Context, limit int) ([]*domain.TransactionView, error) {
	args := m.Called(ctx, limit)
	views, _ := args.Get(0).([]*domain.TransactionView)
	return views, args.Error(1)
}
