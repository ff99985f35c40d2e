package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/events"
	"github.com/micropay/micropay-api/internal/platform/logger"
	"github.com/micropay/micropay-api/internal/store"
)

// TransferService provides the funds-transfer workflow.
type TransferService interface {
	// Transfer records a transfer between two registered users and
	// publishes a notification event to each party. The publishes are NOT
	// transactional with the record insert: if either publish fails, the
	// error propagates even though the record is already committed. That
	// asymmetry with registration is deliberate.
	Transfer(ctx context.Context, fromEmail, toEmail string, amount float64) (*domain.Transaction, error)

	// ListTransactions returns recent transfers joined with both parties'
	// emails, newest first.
	ListTransactions(ctx context.Context, limit int) ([]*domain.TransactionView, error)
}

type transferServiceImpl struct {
	users   store.UserStore
	txns    store.TransactionStore
	emitter events.Emitter
	logger  *slog.Logger
}

// NewTransferService creates a new TransferService.
// It returns an error if any of the required dependencies are nil.
func NewTransferService(
	users store.UserStore,
	txns store.TransactionStore,
	emitter events.Emitter,
	logger *slog.Logger,
) (TransferService, error) {
	if users == nil {
		return nil, errors.New("transfer service: user store cannot be nil")
	}
	if txns == nil {
		return nil, errors.New("transfer service: transaction store cannot be nil")
	}
	if emitter == nil {
		return nil, errors.New("transfer service: event emitter cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &transferServiceImpl{
		users:   users,
		txns:    txns,
		emitter: emitter,
		logger:  logger.With("component", "transfer_service"),
	}, nil
}

// Transfer implements TransferService.Transfer
func (s *transferServiceImpl) Transfer(
	ctx context.Context,
	fromEmail, toEmail string,
	amount float64,
) (*domain.Transaction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// All validation happens before any store call.
	if amount <= 0 {
		return nil, domain.NewValidationError("amount", "must be greater than zero")
	}
	if fromEmail == "" {
		return nil, domain.NewValidationError("from_email", "cannot be empty")
	}
	if toEmail == "" {
		return nil, domain.NewValidationError("to_email", "cannot be empty")
	}
	if fromEmail == toEmail {
		return nil, domain.NewValidationError("to_email", "sender and receiver must differ")
	}

	fromID, err := s.users.FindIDByEmail(ctx, fromEmail)
	if err != nil {
		return nil, fmt.Errorf("resolving sender: %w", err)
	}

	toID, err := s.users.FindIDByEmail(ctx, toEmail)
	if err != nil {
		return nil, fmt.Errorf("resolving receiver: %w", err)
	}

	txn, err := domain.NewTransaction(fromID, toID, amount)
	if err != nil {
		return nil, err
	}

	if err := s.txns.Create(ctx, txn); err != nil {
		log.Error("failed to persist transaction",
			"error", err,
			"transaction_id", txn.ID)
		return nil, err
	}

	log.Info("transaction recorded",
		"transaction_id", txn.ID,
		"amount", amount)

	// One event per party. A failure here surfaces as an internal error
	// even though the record above is committed.
	payload := events.TransferPayload{
		TransactionID: txn.ID,
		FromEmail:     fromEmail,
		ToEmail:       toEmail,
		Amount:        amount,
	}

	for _, eventType := range []string{events.TypeTransferSent, events.TypeTransferReceived} {
		event, err := events.NewEvent(eventType, payload)
		if err == nil {
			err = s.emitter.EmitEvent(ctx, event)
		}
		if err != nil {
			log.Error("transfer notification publish failed after commit",
				"error", err,
				"event_type", eventType,
				"transaction_id", txn.ID)
			return nil, fmt.Errorf("%w: publishing %s event: %v", domain.ErrInternal, eventType, err)
		}
	}

	return txn, nil
}

// ListTransactions implements TransferService.ListTransactions
func (s *transferServiceImpl) ListTransactions(ctx context.Context, limit int) ([]*domain.TransactionView, error) {
	return s.txns.List(ctx, limit)
}
