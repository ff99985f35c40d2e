package cognito

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/micropay/micropay-api/internal/config"
	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/platform/logger"
	"github.com/micropay/micropay-api/internal/service"
)

// Client is the subset of the Cognito identity provider API the identity
// store uses. *cognitoidentityprovider.Client satisfies it.
type Client interface {
	SignUp(ctx context.Context, params *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	AdminConfirmSignUp(ctx context.Context, params *cip.AdminConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.AdminConfirmSignUpOutput, error)
	AdminUpdateUserAttributes(ctx context.Context, params *cip.AdminUpdateUserAttributesInput, optFns ...func(*cip.Options)) (*cip.AdminUpdateUserAttributesOutput, error)
	AdminInitiateAuth(ctx context.Context, params *cip.AdminInitiateAuthInput, optFns ...func(*cip.Options)) (*cip.AdminInitiateAuthOutput, error)
	AdminUserGlobalSignOut(ctx context.Context, params *cip.AdminUserGlobalSignOutInput, optFns ...func(*cip.Options)) (*cip.AdminUserGlobalSignOutOutput, error)
}

// IdentityStore implements service.IdentityStore against a Cognito user
// pool. Principals are addressed by email, which is also the pool username.
type IdentityStore struct {
	client       Client
	userPoolID   string
	clientID     string
	clientSecret string
	logger       *slog.Logger
}

// NewIdentityStore creates a Cognito-backed identity store.
// If logger is nil, a default logger will be used.
func NewIdentityStore(client Client, cfg config.AWSConfig, logger *slog.Logger) *IdentityStore {
	if client == nil {
		panic("client cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &IdentityStore{
		client:       client,
		userPoolID:   cfg.UserPoolID,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		logger:       logger.With(slog.String("component", "identity_store")),
	}
}

// Ensure IdentityStore implements service.IdentityStore interface
var _ service.IdentityStore = (*IdentityStore)(nil)

// CreatePrincipal implements service.IdentityStore.CreatePrincipal
// It signs the email up in the user pool and returns the pool-issued sub.
func (s *IdentityStore) CreatePrincipal(ctx context.Context, email, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	out, err := s.client.SignUp(ctx, &cip.SignUpInput{
		ClientId:   aws.String(s.clientID),
		SecretHash: aws.String(secretHash(email, s.clientID, s.clientSecret)),
		Username:   aws.String(email),
		Password:   aws.String(password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
		},
	})
	if err != nil {
		log.Warn("principal creation failed",
			slog.String("error", err.Error()))
		return "", classify(err)
	}

	principalID := aws.ToString(out.UserSub)
	log.Info("principal created",
		slog.String("principal_id", principalID))
	return principalID, nil
}

// ConfirmPrincipal implements service.IdentityStore.ConfirmPrincipal
func (s *IdentityStore) ConfirmPrincipal(ctx context.Context, email string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.client.AdminConfirmSignUp(ctx, &cip.AdminConfirmSignUpInput{
		UserPoolId: aws.String(s.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		log.Warn("principal confirmation failed",
			slog.String("error", err.Error()))
		return classify(err)
	}
	return nil
}

// MarkEmailVerified implements service.IdentityStore.MarkEmailVerified
func (s *IdentityStore) MarkEmailVerified(ctx context.Context, email string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.client.AdminUpdateUserAttributes(ctx, &cip.AdminUpdateUserAttributesInput{
		UserPoolId: aws.String(s.userPoolID),
		Username:   aws.String(email),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email_verified"), Value: aws.String("true")},
		},
	})
	if err != nil {
		log.Warn("marking email verified failed",
			slog.String("error", err.Error()))
		return classify(err)
	}
	return nil
}

// Authenticate implements service.IdentityStore.Authenticate
// It performs an admin-side password auth and returns the issued tokens.
func (s *IdentityStore) Authenticate(ctx context.Context, email, password string) (*service.TokenBundle, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	out, err := s.client.AdminInitiateAuth(ctx, &cip.AdminInitiateAuthInput{
		UserPoolId: aws.String(s.userPoolID),
		ClientId:   aws.String(s.clientID),
		AuthFlow:   types.AuthFlowTypeAdminNoSrpAuth,
		AuthParameters: map[string]string{
			"USERNAME":    email,
			"PASSWORD":    password,
			"SECRET_HASH": secretHash(email, s.clientID, s.clientSecret),
		},
	})
	if err != nil {
		log.Warn("authentication failed",
			slog.String("error", err.Error()))
		return nil, classify(err)
	}

	auth := out.AuthenticationResult
	if auth == nil || auth.AccessToken == nil {
		// A nil result means the pool demands a challenge (e.g. forced
		// password reset), which this flow does not support.
		log.Warn("authentication returned no token",
			slog.String("challenge", string(out.ChallengeName)))
		return nil, service.ErrInvalidCredentials
	}

	log.Info("principal authenticated")
	return &service.TokenBundle{
		AccessToken:  aws.ToString(auth.AccessToken),
		RefreshToken: aws.ToString(auth.RefreshToken),
		ExpiresIn:    auth.ExpiresIn,
		TokenType:    aws.ToString(auth.TokenType),
	}, nil
}

// GlobalSignOut implements service.IdentityStore.GlobalSignOut
// Signing out a principal with no active sessions succeeds.
func (s *IdentityStore) GlobalSignOut(ctx context.Context, email string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.client.AdminUserGlobalSignOut(ctx, &cip.AdminUserGlobalSignOutInput{
		UserPoolId: aws.String(s.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		log.Warn("global sign-out failed",
			slog.String("error", err.Error()))
		return classify(err)
	}

	log.Info("principal signed out")
	return nil
}

// classify maps Cognito's typed exceptions onto the closed error kinds.
// Unrecognized provider errors pass through wrapped; callers treat those as
// internal.
func classify(err error) error {
	var (
		exists       *types.UsernameExistsException
		notAuth      *types.NotAuthorizedException
		notFound     *types.UserNotFoundException
		notConfirmed *types.UserNotConfirmedException
		badPassword  *types.InvalidPasswordException
		badParam     *types.InvalidParameterException
	)

	switch {
	case errors.As(err, &exists):
		return fmt.Errorf("%w: %v", service.ErrPrincipalExists, err)
	case errors.As(err, &notAuth), errors.As(err, &notConfirmed):
		return fmt.Errorf("%w: %v", service.ErrInvalidCredentials, err)
	case errors.As(err, &notFound):
		return fmt.Errorf("%w: %v", service.ErrPrincipalNotFound, err)
	case errors.As(err, &badPassword), errors.As(err, &badParam):
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	default:
		return fmt.Errorf("identity store: %w", err)
	}
}
