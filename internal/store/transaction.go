package store

import (
	"context"

	"github.com/micropay/micropay-api/internal/domain"
)

// TransactionStore defines the interface for transfer record persistence.
// Transaction records are immutable once created; there is no update or
// delete path.
type TransactionStore interface {
	// Create persists a new transaction record. Both referenced users must
	// exist; a foreign key violation surfaces as an invalid-entity error.
	Create(ctx context.Context, txn *domain.Transaction) error

	// List returns transactions joined with sender/receiver emails, newest
	// first, capped at limit. A non-positive limit selects the
	// implementation default.
	List(ctx context.Context, limit int) ([]*domain.TransactionView, error)
}
