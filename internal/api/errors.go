package api

import (
	"errors"
	"net/http"

	"github.com/micropay/micropay-api/internal/api/shared"
	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/store"
)

// MapErrorToStatusCode maps an error to an HTTP status code by dispatching
// on the closed error kinds in domain. Unclassified errors are treated as
// internal.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Raw error text from the external stores is never echoed to the
// client; it belongs in the (redacted) logs only.
func GetSafeErrorMessage(err error) string {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		// Field validation messages are authored here, safe to expose.
		return validationErr.Error()
	}

	switch {
	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"
	case errors.Is(err, domain.ErrConflict):
		return "Resource already exists"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrNotificationNotFound):
		return "Notification not found"
	case errors.Is(err, domain.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Invalid credentials"
	case errors.Is(err, domain.ErrValidation):
		return "Invalid request"
	default:
		return "An unexpected error occurred"
	}
}

// respondServiceError maps a workflow error onto the wire: status from the
// error kind, body from the safe message, full error into the logs.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
