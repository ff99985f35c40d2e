package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/platform/logger"
	"github.com/micropay/micropay-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
// It saves a new user record, handling domain validation.
// Returns store.ErrEmailExists on a unique constraint violation.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		INSERT INTO users (id, principal_id, email, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.PrincipalID,
		user.Email,
		user.CreatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("attempted to create user with existing email",
				slog.String("user_id", user.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("principal_id", user.PrincipalID))
	return nil
}

// FindIDByEmail implements store.UserStore.FindIDByEmail
// Returns store.ErrUserNotFound if no record matches the email.
func (s *PostgresUserStore) FindIDByEmail(ctx context.Context, email string) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id
		FROM users
		WHERE email = $1
	`

	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, query, email).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by email")
			return uuid.Nil, store.ErrUserNotFound
		}
		log.Error("failed to resolve user by email",
			slog.String("error", err.Error()))
		return uuid.Nil, MapError(err)
	}

	return id, nil
}

// GetByEmail implements store.UserStore.GetByEmail
// Returns store.ErrUserNotFound if no record matches the email.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, principal_id, email, created_at
		FROM users
		WHERE email = $1
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.PrincipalID,
		&user.Email,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by email")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return &user, nil
}
