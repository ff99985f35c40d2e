// Package postgres implements the store interfaces against PostgreSQL
// using database/sql over the pgx stdlib driver.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/micropay/micropay-api/internal/domain"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"
)

// IsUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation. This is how duplicate emails surface from the
// record store.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign
// key constraint violation, e.g. a transaction referencing a missing user.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// IsCheckViolation checks if the given error is a PostgreSQL check
// constraint violation (e.g. a non-positive amount slipping past
// validation).
func IsCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == checkViolationCode
}

// MapError maps a database error to the closed error kinds in domain.
// It wraps the original error to preserve context for logging. Store
// implementations use it so the orchestrator never dispatches on
// driver-specific types.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: referenced record missing (%s): %v",
				domain.ErrNotFound, pgErr.ConstraintName, err)
		case checkViolationCode:
			return fmt.Errorf("%w: check constraint (%s): %v",
				domain.ErrValidation, pgErr.ConstraintName, err)
		}
	}

	return err
}
