package store

import (
	"fmt"

	"github.com/micropay/micropay-api/internal/domain"
)

// Sentinel errors returned by store implementations. Each wraps one of the
// closed error kinds in domain, so callers can dispatch on kind or on the
// specific entity.
var (
	// ErrUserNotFound indicates that no user record matches the lookup.
	ErrUserNotFound = fmt.Errorf("%w: user", domain.ErrNotFound)

	// ErrEmailExists indicates that a user record with the given email
	// already exists. This is the uniqueness constraint surfacing as a
	// conflict.
	ErrEmailExists = fmt.Errorf("%w: email already registered", domain.ErrConflict)

	// ErrNotificationNotFound indicates that the requested notification
	// record does not exist.
	ErrNotificationNotFound = fmt.Errorf("%w: notification", domain.ErrNotFound)
)
