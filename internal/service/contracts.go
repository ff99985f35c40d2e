// Package service contains the workflow orchestrators. Each workflow
// sequences calls to the capability interfaces defined here, applying
// validation, compensating behavior on partial failure, and the error
// classification in internal/domain.
package service

import (
	"context"
)

// TokenBundle is the credential set issued by the identity store on a
// successful authentication.
type TokenBundle struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int32  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// SubscriptionStatus is the notification-channel subscription state of an
// email address.
type SubscriptionStatus string

const (
	SubscriptionNotSubscribed SubscriptionStatus = "not_subscribed"
	SubscriptionPending       SubscriptionStatus = "pending"
	SubscriptionConfirmed     SubscriptionStatus = "confirmed"

	// SubscriptionError reports that the best-effort subscription check
	// itself failed. It never fails the surrounding workflow.
	SubscriptionError SubscriptionStatus = "error"
)

// IdentityStore is the external identity provider capability. Principals
// are addressed by email, which doubles as the provider-side username; the
// externally issued principal ID is returned from CreatePrincipal and
// stored on the user record.
//
// Implementations classify provider errors into the closed kinds in
// internal/domain: duplicate principal -> conflict, bad credentials ->
// unauthorized, unknown principal -> not found, anything else passes
// through for the caller to treat as internal.
type IdentityStore interface {
	// CreatePrincipal registers a new principal and returns its external ID.
	CreatePrincipal(ctx context.Context, email, password string) (string, error)

	// ConfirmPrincipal administratively confirms a newly created principal.
	ConfirmPrincipal(ctx context.Context, email string) error

	// MarkEmailVerified marks the principal's email attribute as verified.
	MarkEmailVerified(ctx context.Context, email string) error

	// Authenticate verifies credentials and returns a token bundle.
	Authenticate(ctx context.Context, email, password string) (*TokenBundle, error)

	// GlobalSignOut invalidates every session of the principal server-side.
	// Signing out an already signed-out principal is not an error.
	GlobalSignOut(ctx context.Context, email string) error
}

// NotificationChannel is the external messaging capability: a broadcast
// topic plus a direct (email) channel.
type NotificationChannel interface {
	// Subscribe subscribes the email address to the broadcast topic and
	// returns an opaque subscription reference.
	Subscribe(ctx context.Context, email string) (string, error)

	// CheckSubscription reports the subscription state of the email
	// address on the broadcast topic.
	CheckSubscription(ctx context.Context, email string) (SubscriptionStatus, error)

	// Publish sends a payload to the broadcast topic and returns the
	// channel-issued message ID.
	Publish(ctx context.Context, subject string, payload []byte) (string, error)

	// SendDirect delivers a message to a single recipient and returns the
	// channel-issued message ID.
	SendDirect(ctx context.Context, email, subject, body string) (string, error)
}
