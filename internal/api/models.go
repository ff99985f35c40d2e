package api

import (
	"github.com/google/uuid"
)

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LogoutRequest is the request body for user logout.
type LogoutRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	UserID             uuid.UUID `json:"user_id"`
	Email              string    `json:"email"`
	SubscriptionStatus string    `json:"subscription_status"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	AccessToken        string `json:"access_token"`
	RefreshToken       string `json:"refresh_token"`
	ExpiresIn          int32  `json:"expires_in"`
	TokenType          string `json:"token_type"`
	SubscriptionStatus string `json:"subscription_status"`
}

// TransferRequest is the request body for recording a transfer.
type TransferRequest struct {
	FromEmail string  `json:"from_email" validate:"required,email"`
	ToEmail   string  `json:"to_email"   validate:"required,email"`
	Amount    float64 `json:"amount"     validate:"required,gt=0"`
}

// NotificationRequest is the request body for a generic notification
// dispatch.
type NotificationRequest struct {
	RecipientEmail string `json:"recipient_email" validate:"required,email"`
	Type           string `json:"notification_type" validate:"required,oneof=registration payment transaction general"`
	Subject        string `json:"subject" validate:"required"`
	Message        string `json:"message" validate:"required"`
	UserID         string `json:"user_id,omitempty"`
	ReferenceID    string `json:"reference_id,omitempty"`
}

// RegistrationNotificationRequest is the request body for the typed
// registration dispatch.
type RegistrationNotificationRequest struct {
	Email  string `json:"email" validate:"required,email"`
	UserID string `json:"user_id,omitempty"`
}

// PaymentNotificationRequest is the request body for the typed payment
// dispatch.
type PaymentNotificationRequest struct {
	Email       string  `json:"email"  validate:"required,email"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	ReferenceID string  `json:"reference_id,omitempty"`
}

// TransactionNotificationRequest is the request body for the typed transfer
// dispatch. Outgoing selects the sender-side wording.
type TransactionNotificationRequest struct {
	Email        string  `json:"email"        validate:"required,email"`
	Amount       float64 `json:"amount"       validate:"required,gt=0"`
	Counterparty string  `json:"counterparty" validate:"required,email"`
	Outgoing     bool    `json:"outgoing"`
	ReferenceID  string  `json:"reference_id,omitempty"`
}
