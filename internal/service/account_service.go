package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/events"
	"github.com/micropay/micropay-api/internal/platform/logger"
	"github.com/micropay/micropay-api/internal/store"
)

// RegistrationResult is the outcome of a successful registration.
type RegistrationResult struct {
	User *domain.User

	// SubscriptionStatus reports the best-effort topic subscription. It is
	// SubscriptionError when the subscribe attempt failed; that never fails
	// the registration itself.
	SubscriptionStatus SubscriptionStatus
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Tokens *TokenBundle

	// SubscriptionStatus reports the best-effort re-check of the topic
	// subscription.
	SubscriptionStatus SubscriptionStatus
}

// AccountService provides the registration, login and logout workflows.
type AccountService interface {
	// Register creates a principal in the identity store, persists the
	// matching user record, and best-effort subscribes the email to the
	// notification topic.
	Register(ctx context.Context, email, password string) (*RegistrationResult, error)

	// Login authenticates the principal and returns its token bundle.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Logout invalidates all of the principal's sessions server-side.
	Logout(ctx context.Context, email string) error
}

type accountServiceImpl struct {
	identity IdentityStore
	users    store.UserStore
	channel  NotificationChannel
	emitter  events.Emitter
	logger   *slog.Logger
}

// NewAccountService creates a new AccountService.
// It returns an error if any of the required dependencies are nil.
func NewAccountService(
	identity IdentityStore,
	users store.UserStore,
	channel NotificationChannel,
	emitter events.Emitter,
	logger *slog.Logger,
) (AccountService, error) {
	if identity == nil {
		return nil, errors.New("account service: identity store cannot be nil")
	}
	if users == nil {
		return nil, errors.New("account service: user store cannot be nil")
	}
	if channel == nil {
		return nil, errors.New("account service: notification channel cannot be nil")
	}
	if emitter == nil {
		return nil, errors.New("account service: event emitter cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &accountServiceImpl{
		identity: identity,
		users:    users,
		channel:  channel,
		emitter:  emitter,
		logger:   logger.With("component", "account_service"),
	}, nil
}

// Register implements AccountService.Register
//
// Ordering is fixed: the principal must exist before the user record is
// persisted, because the record references the externally issued principal
// ID. If the record insert then fails, the principal is NOT rolled back;
// the orphan is logged at WARN and the error surfaces to the caller.
func (s *accountServiceImpl) Register(ctx context.Context, email, password string) (*RegistrationResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if email == "" {
		return nil, domain.NewValidationError("email", "cannot be empty")
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "cannot be empty")
	}

	principalID, err := s.identity.CreatePrincipal(ctx, email, password)
	if err != nil {
		// Nothing has been persisted yet; no compensation needed.
		return nil, err
	}

	if err := s.identity.ConfirmPrincipal(ctx, email); err != nil {
		log.Warn("principal created but confirmation failed; principal left unconfirmed",
			"error", err,
			"principal_id", principalID)
		return nil, fmt.Errorf("%w: confirming principal: %v", domain.ErrInternal, err)
	}

	if err := s.identity.MarkEmailVerified(ctx, email); err != nil {
		log.Warn("principal confirmed but email verification flag failed",
			"error", err,
			"principal_id", principalID)
		return nil, fmt.Errorf("%w: marking email verified: %v", domain.ErrInternal, err)
	}

	user, err := domain.NewUser(principalID, email)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The principal now exists with no matching record. Accepted
		// inconsistency: no rollback, only a warning for reconciliation.
		log.Warn("user record insert failed; principal is orphaned",
			"error", err,
			"principal_id", principalID)
		return nil, err
	}

	log.Info("user registered",
		"user_id", user.ID,
		"principal_id", principalID)

	return &RegistrationResult{
		User:               user,
		SubscriptionStatus: s.subscribeAndAnnounce(ctx, email),
	}, nil
}

// subscribeAndAnnounce performs the best-effort side effects of a completed
// registration: topic subscription plus the user_registered event. Failures
// downgrade to a status and never propagate.
func (s *accountServiceImpl) subscribeAndAnnounce(ctx context.Context, email string) SubscriptionStatus {
	log := logger.FromContextOrDefault(ctx, s.logger)

	status := SubscriptionPending
	if _, err := s.channel.Subscribe(ctx, email); err != nil {
		log.Warn("topic subscription failed during registration",
			"error", err)
		status = SubscriptionError
	}

	event, err := events.NewEvent(events.TypeUserRegistered, events.UserRegisteredPayload{Email: email})
	if err == nil {
		err = s.emitter.EmitEvent(ctx, event)
	}
	if err != nil {
		log.Warn("user_registered event publish failed",
			"error", err)
	}

	return status
}

// Login implements AccountService.Login
// The subscription re-check is best-effort and never blocks the login.
func (s *accountServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if email == "" {
		return nil, domain.NewValidationError("email", "cannot be empty")
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "cannot be empty")
	}

	tokens, err := s.identity.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	log.Info("user logged in")

	return &LoginResult{
		Tokens:             tokens,
		SubscriptionStatus: s.ensureSubscribed(ctx, email),
	}, nil
}

// ensureSubscribed re-checks the topic subscription and re-subscribes a
// lapsed email. Best-effort only.
func (s *accountServiceImpl) ensureSubscribed(ctx context.Context, email string) SubscriptionStatus {
	log := logger.FromContextOrDefault(ctx, s.logger)

	status, err := s.channel.CheckSubscription(ctx, email)
	if err != nil {
		log.Warn("subscription check failed during login",
			"error", err)
		return SubscriptionError
	}

	if status == SubscriptionNotSubscribed {
		if _, err := s.channel.Subscribe(ctx, email); err != nil {
			log.Warn("re-subscription failed during login",
				"error", err)
			return SubscriptionError
		}
		return SubscriptionPending
	}

	return status
}

// Logout implements AccountService.Logout
func (s *accountServiceImpl) Logout(ctx context.Context, email string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if email == "" {
		return domain.NewValidationError("email", "cannot be empty")
	}

	if err := s.identity.GlobalSignOut(ctx, email); err != nil {
		return err
	}

	log.Info("user logged out")
	return nil
}
