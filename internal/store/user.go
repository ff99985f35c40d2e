package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/micropay/micropay-api/internal/domain"
)

// UserStore defines the interface for user record persistence.
type UserStore interface {
	// Create saves a new user record referencing an externally issued
	// principal. Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// FindIDByEmail resolves an email address to the internal user ID.
	// Returns ErrUserNotFound if no record matches.
	FindIDByEmail(ctx context.Context, email string) (uuid.UUID, error)

	// GetByEmail retrieves a full user record by email address.
	// Returns ErrUserNotFound if no record matches.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
