package postgres

import (
	"context"
	"log/slog"

	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/platform/logger"
	"github.com/micropay/micropay-api/internal/store"
)

// defaultTransactionListLimit caps the read path when the caller does not
// choose a limit.
const defaultTransactionListLimit = 50

// PostgresTransactionStore implements the store.TransactionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTransactionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTransactionStore creates a new PostgreSQL implementation of the
// TransactionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTransactionStore(db store.DBTX, logger *slog.Logger) *PostgresTransactionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTransactionStore{
		db:     db,
		logger: logger.With(slog.String("component", "transaction_store")),
	}
}

// Ensure PostgresTransactionStore implements store.TransactionStore interface
var _ store.TransactionStore = (*PostgresTransactionStore)(nil)

// Create implements store.TransactionStore.Create
// A foreign key violation (referenced user missing) maps to a not-found
// error; the workflow validates existence first, so this is a race guard.
func (s *PostgresTransactionStore) Create(ctx context.Context, txn *domain.Transaction) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := txn.Validate(); err != nil {
		log.Warn("transaction validation failed during create",
			slog.String("error", err.Error()),
			slog.String("transaction_id", txn.ID.String()))
		return err
	}

	query := `
		INSERT INTO transactions (id, from_user_id, to_user_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		txn.ID,
		txn.FromUserID,
		txn.ToUserID,
		txn.Amount,
		txn.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create transaction",
			slog.String("error", err.Error()),
			slog.String("transaction_id", txn.ID.String()))
		return MapError(err)
	}

	log.Info("transaction created successfully",
		slog.String("transaction_id", txn.ID.String()),
		slog.Float64("amount", txn.Amount))
	return nil
}

// List implements store.TransactionStore.List
// Returns transactions joined with sender/receiver emails, newest first.
func (s *PostgresTransactionStore) List(ctx context.Context, limit int) ([]*domain.TransactionView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = defaultTransactionListLimit
	}

	query := `
		SELECT t.id, uf.email, ut.email, t.amount, t.created_at
		FROM transactions t
		JOIN users uf ON uf.id = t.from_user_id
		JOIN users ut ON ut.id = t.to_user_id
		ORDER BY t.created_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		log.Error("failed to query transactions",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var views []*domain.TransactionView
	for rows.Next() {
		var v domain.TransactionView
		if err := rows.Scan(&v.ID, &v.FromEmail, &v.ToEmail, &v.Amount, &v.CreatedAt); err != nil {
			log.Error("failed to scan transaction row",
				slog.String("error", err.Error()))
			return nil, err
		}
		views = append(views, &v)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if views == nil {
		views = []*domain.TransactionView{}
	}

	log.Debug("listed transactions", slog.Int("count", len(views)))
	return views, nil
}
