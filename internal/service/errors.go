package service

import (
	"fmt"

	"github.com/micropay/micropay-api/internal/domain"
)

// Sentinel errors returned from the identity-store boundary. Each wraps one
// of the closed error kinds in domain so callers can dispatch on either the
// specific sentinel or the broad kind.
var (
	// ErrPrincipalExists indicates the identity store already holds a
	// principal for the email.
	ErrPrincipalExists = fmt.Errorf("%w: principal already exists", domain.ErrConflict)

	// ErrInvalidCredentials indicates the identity store rejected the
	// email/password pair or the session.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)

	// ErrPrincipalNotFound indicates no principal exists for the email.
	ErrPrincipalNotFound = fmt.Errorf("%w: principal", domain.ErrNotFound)
)
