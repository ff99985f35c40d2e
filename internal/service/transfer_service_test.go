package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/events"
	"github.com/micropay/micropay-api/internal/mocks"
	"github.com/micropay/micropay-api/internal/service"
	"github.com/micropay/micropay-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type transferFixture struct {
	users   *mocks.UserStore
	txns    *mocks.TransactionStore
	emitter *mocks.Emitter
	svc     service.TransferService
}

func newTransferFixture(t *testing.T) *transferFixture {
	t.Helper()

	f := &transferFixture{
		users:   new(mocks.UserStore),
		txns:    new(mocks.TransactionStore),
		emitter: new(mocks.Emitter),
	}

	svc, err := service.NewTransferService(f.users, f.txns, f.emitter, nil)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func TestTransferService_Transfer(t *testing.T) {
	ctx := context.Background()

	t.Run("non-positive amount rejected before any store call", func(t *testing.T) {
		f := newTransferFixture(t)

		for _, amount := range []float64{0, -1, -0.01} {
			_, err := f.svc.Transfer(ctx, "a@x.com", "b@x.com", amount)
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
		f.users.AssertNotCalled(t, "FindIDByEmail", mock.Anything, mock.Anything)
	})

	t.Run("identical sender and receiver rejected", func(t *testing.T) {
		f := newTransferFixture(t)

		_, err := f.svc.Transfer(ctx, "a@x.com", "a@x.com", 10)
		assert.ErrorIs(t, err, domain.ErrValidation)
		f.users.AssertNotCalled(t, "FindIDByEmail", mock.Anything, mock.Anything)
	})

	t.Run("unresolved receiver fails with not found and no record", func(t *testing.T) {
		f := newTransferFixture(t)
		f.users.On("FindIDByEmail", ctx, "a@x.com").Return(uuid.New(), nil)
		f.users.On("FindIDByEmail", ctx, "b@x.com").Return(uuid.Nil, store.ErrUserNotFound)

		_, err := f.svc.Transfer(ctx, "a@x.com", "b@x.com", 10)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		f.txns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("records transfer and publishes one event per party", func(t *testing.T) {
		f := newTransferFixture(t)
		fromID, toID := uuid.New(), uuid.New()
		f.users.On("FindIDByEmail", ctx, "a@x.com").Return(fromID, nil)
		f.users.On("FindIDByEmail", ctx, "b@x.com").Return(toID, nil)
		f.txns.On("Create", ctx, mock.MatchedBy(func(txn *domain.Transaction) bool {
			return txn.FromUserID == fromID && txn.ToUserID == toID && txn.Amount == 10.0
		})).Return(nil).Once()
		f.emitter.On("EmitEvent", ctx, mock.MatchedBy(func(e *events.Event) bool {
			return e.Type == events.TypeTransferSent
		})).Return(nil).Once()
		f.emitter.On("EmitEvent", ctx, mock.MatchedBy(func(e *events.Event) bool {
			return e.Type == events.TypeTransferReceived
		})).Return(nil).Once()

		txn, err := f.svc.Transfer(ctx, "a@x.com", "b@x.com", 10)
		require.NoError(t, err)
		assert.Equal(t, 10.0, txn.Amount)
		f.txns.AssertExpectations(t)
		f.emitter.AssertExpectations(t)
	})

	t.Run("publish failure propagates although the record is committed", func(t *testing.T) {
		f := newTransferFixture(t)
		f.users.On("FindIDByEmail", ctx, "a@x.com").Return(uuid.New(), nil)
		f.users.On("FindIDByEmail", ctx, "b@x.com").Return(uuid.New(), nil)
		f.txns.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.emitter.On("EmitEvent", ctx, mock.Anything).
			Return(errors.New("topic unavailable")).Once()

		_, err := f.svc.Transfer(ctx, "a@x.com", "b@x.com", 10)
		assert.ErrorIs(t, err, domain.ErrInternal)
		// The insert happened; the failure is strictly post-commit.
		f.txns.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("insert failure surfaces without publishes", func(t *testing.T) {
		f := newTransferFixture(t)
		f.users.On("FindIDByEmail", ctx, "a@x.com").Return(uuid.New(), nil)
		f.users.On("FindIDByEmail", ctx, "b@x.com").Return(uuid.New(), nil)
		f.txns.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))

		_, err := f.svc.Transfer(ctx, "a@x.com", "b@x.com", 10)
		assert.Error(t, err)
		f.emitter.AssertNotCalled(t, "EmitEvent", mock.Anything, mock.Anything)
	})
}

func TestTransferService_ListTransactions(t *testing.T) {
	ctx := context.Background()

	f := newTransferFixture(t)
	views := []*domain.TransactionView{
		{ID: uuid.New(), FromEmail: "a@x.com", ToEmail: "b@x.com", Amount: 10},
	}
	f.txns.On("List", ctx, 25).Return(views, nil)

	got, err := f.svc.ListTransactions(ctx, 25)
	require.NoError(t, err)
	assert.Equal(t, views, got)
}
