package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Field-level validation errors for User.
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyPrincipalID = errors.New("principal ID cannot be empty")
)

// User is the internal record corresponding to an externally issued
// principal. It is created once, after principal creation succeeds, and is
// never updated by the workflow core.
type User struct {
	ID          uuid.UUID `json:"id"`
	PrincipalID string    `json:"principal_id"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUser creates a User referencing the given principal.
// Returns an error if validation fails.
func NewUser(principalID, email string) (*User, error) {
	user := &User{
		ID:          uuid.New(),
		PrincipalID: principalID,
		Email:       email,
		CreatedAt:   time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.PrincipalID == "" {
		return ErrEmptyPrincipalID
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// validEmailFormat performs basic structural validation of an email address.
// Handlers apply the stricter validator tag; this is a last line of defense
// for users constructed inside the workflow layer.
func validEmailFormat(email string) bool {
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			atIndex = i
			break
		}
	}

	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domainPart := email[atIndex+1:]
	dotIndex := -1
	for i, char := range domainPart {
		if char == '.' {
			dotIndex = i
			break
		}
	}

	return dotIndex > 0 && dotIndex < len(domainPart)-1
}
