package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is an immutable funds-transfer record between two existing
// users. No balance is maintained in this core; balances, if any, are
// derived externally.
type Transaction struct {
	ID         uuid.UUID `json:"id"`
	FromUserID uuid.UUID `json:"from_user_id"`
	ToUserID   uuid.UUID `json:"to_user_id"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

// TransactionView is a transaction joined with sender/receiver emails for
// display on the read path.
type TransactionView struct {
	ID        uuid.UUID `json:"id"`
	FromEmail string    `json:"from_user"`
	ToEmail   string    `json:"to_user"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTransaction creates a Transaction between the given users.
// Returns an error if validation fails.
func NewTransaction(fromUserID, toUserID uuid.UUID, amount float64) (*Transaction, error) {
	txn := &Transaction{
		ID:         uuid.New(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Amount:     amount,
		CreatedAt:  time.Now().UTC(),
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	return txn, nil
}

// Validate checks if the Transaction has valid data.
func (t *Transaction) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty")
	}
	if t.FromUserID == uuid.Nil || t.ToUserID == uuid.Nil {
		return NewValidationError("user_id", "cannot be empty")
	}
	if t.FromUserID == t.ToUserID {
		return NewValidationError("to_user_id", "sender and receiver cannot be the same")
	}
	if t.Amount <= 0 {
		return NewValidationError("amount", "must be greater than zero")
	}
	return nil
}
