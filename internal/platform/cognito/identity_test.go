package cognito_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/micropay/micropay-api/internal/config"
	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/platform/cognito"
	"github.com/micropay/micropay-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockClient implements cognito.Client for tests.
type mockClient struct {
	mock.Mock
}

func (m *mockClient) SignUp(ctx context.Context, in *cip.SignUpInput, _ ...func(*cip.Options)) (*cip.SignUpOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*cip.SignUpOutput)
	return out, args.Error(1)
}

func (m *mockClient) AdminConfirmSignUp(ctx context.Context, in *cip.AdminConfirmSignUpInput, _ ...func(*cip.Options)) (*cip.AdminConfirmSignUpOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*cip.AdminConfirmSignUpOutput)
	return out, args.Error(1)
}

func (m *mockClient) AdminUpdateUserAttributes(ctx context.Context, in *cip.AdminUpdateUserAttributesInput, _ ...func(*cip.Options)) (*cip.AdminUpdateUserAttributesOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*cip.AdminUpdateUserAttributesOutput)
	return out, args.Error(1)
}

func (m *mockClient) AdminInitiateAuth(ctx context.Context, in *cip.AdminInitiateAuthInput, _ ...func(*cip.Options)) (*cip.AdminInitiateAuthOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*cip.AdminInitiateAuthOutput)
	return out, args.Error(1)
}

func (m *mockClient) AdminUserGlobalSignOut(ctx context.Context, in *cip.AdminUserGlobalSignOutInput, _ ...func(*cip.Options)) (*cip.AdminUserGlobalSignOutOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*cip.AdminUserGlobalSignOutOutput)
	return out, args.Error(1)
}

func testAWSConfig() config.AWSConfig {
	return config.AWSConfig{
		Region:       "us-east-1",
		UserPoolID:   "us-east-1_TestPool",
		ClientID:     "client-id",
		ClientSecret: "top-secret",
		TopicARN:     "arn:aws:sns:us-east-1:000000000000:notifications",
		SenderEmail:  "no-reply@example.com",
	}
}

func TestIdentityStore_CreatePrincipal(t *testing.T) {
	ctx := context.Background()

	t.Run("returns pool-issued principal ID", func(t *testing.T) {
		client := new(mockClient)
		client.On("SignUp", ctx, mock.MatchedBy(func(in *cip.SignUpInput) bool {
			return aws.ToString(in.Username) == "user@example.com" &&
				aws.ToString(in.ClientId) == "client-id" &&
				aws.ToString(in.SecretHash) != ""
		})).Return(&cip.SignUpOutput{UserSub: aws.String("sub-123")}, nil)

		ids := cognito.NewIdentityStore(client, testAWSConfig(), nil)
		sub, err := ids.CreatePrincipal(ctx, "user@example.com", "Password1!")
		require.NoError(t, err)
		assert.Equal(t, "sub-123", sub)
		client.AssertExpectations(t)
	})

	t.Run("duplicate principal maps to conflict", func(t *testing.T) {
		client := new(mockClient)
		client.On("SignUp", ctx, mock.Anything).
			Return(nil, &types.UsernameExistsException{Message: aws.String("exists")})

		ids := cognito.NewIdentityStore(client, testAWSConfig(), nil)
		_, err := ids.CreatePrincipal(ctx, "user@example.com", "Password1!")
		assert.ErrorIs(t, err, service.ErrPrincipalExists)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("weak password maps to validation", func(t *testing.T) {
		client := new(mockClient)
		client.On("SignUp", ctx, mock.Anything).
			Return(nil, &types.InvalidPasswordException{Message: aws.String("too short")})

		ids := cognito.NewIdentityStore(client, testAWSConfig(), nil)
		_, err := ids.CreatePrincipal(ctx, "user@example.com", "x")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestIdentityStore_MarkEmailVerified(t *testing.T) {
	ctx := context.Background()

	client := new(mockClient)
	client.On("AdminUpdateUserAttributes", ctx, mock.MatchedBy(func(in *cip.AdminUpdateUserAttributesInput) bool {
		return len(in.UserAttributes) == 1 &&
			aws.ToString(in.UserAttributes[0].Name) == "email_verified" &&
			aws.ToString(in.UserAttributes[0].Value) == "true"
	})).Return(&cip.AdminUpdateUserAttributesOutput{}, nil)

	ids := cognito.NewIdentityStore(client, testAWSConfig(), nil)
	require.NoError(t, ids.MarkEmailVerified(ctx, "user@example.com"))
	client.AssertExpectations(t)
}

func TestIdentityStore_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns token bundle", func(t *testing.T) {
		client := new(mockClient)
		client.On("AdminInitiateAuth", ctx, mock.MatchedBy(func(in *cip.AdminInitiateAuthInput) bool {
			return in.AuthFlow == types.AuthFlowTypeAdminNoSrpAuth &&
				in.AuthParameters["USERNAME"] == "user@example.com" &&
				in.AuthParameters["SECRET_HASH"] != ""
		})).Return(&cip.AdminInitiateAuthOutput{
			AuthenticationResult: &types.AuthenticationResultType{
				AccessToken:  aws.String("access"),
				RefreshToken: aws.String("refresh"),
				ExpiresIn:    3600,
				TokenType:    aws.String("Bearer"),
			},
		}, nil)

		ids := cognito.NewIdentityStore(client, testAWSConfig(), nil)
		bundle, err := ids.Authenticate(ctx, "user@example.com", "Password1!")
		require.NoError(t, err)
		assert.Equal(t, "access", bundle.AccessToken)
		assert.Equal(t, "refresh", bundle.RefreshToken)
		assert.Equal(t, int32(3600), bundle.ExpiresIn)
		assert.Equal(t, "Bearer", bundle.TokenType)
	})

	t.Run("wrong password maps to unauthorized", func(t *testing.T) {
		client := new(mockClient)
		client.On("AdminInitiateAuth", ctx, mock.Anything).
			Return(nil, &types.NotAuthorizedException{Message: aws.String("incorrect")})

		ids := cognito.NewIdentityStore(client, testAWSConfig(), nil)
		_, err := ids.Authenticate(ctx, "user@example.com", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unknown principal maps to not found", func(t *testing.T) {
		client := new(mockClient)
		client.On("AdminInitiateAuth", ctx, mock.Anything).
			Return(nil, &types.UserNotFoundException{Message: aws.String("no such user")})

		ids := cognito.NewIdentityStore(client, testAWSConfig(), nil)
		_, err := ids.Authenticate(ctx, "ghost@example.com", "Password1!")
		assert.ErrorIs(t, err, service.ErrPrincipalNotFound)
	})

	t.Run("challenge response maps to unauthorized", func(t *testing.T) {
		client := new(mockClient)
		client.On("AdminInitiateAuth", ctx, mock.Anything).
			Return(&cip.AdminInitiateAuthOutput{
				ChallengeName: types.ChallengeNameTypeNewPasswordRequired,
			}, nil)

		ids := cognito.NewIdentityStore(client, testAWSConfig(), nil)
		_, err := ids.Authenticate(ctx, "user@example.com", "Password1!")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestIdentityStore_GlobalSignOut(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds", func(t *testing.T) {
		client := new(mockClient)
		client.On("AdminUserGlobalSignOut", ctx, mock.Anything).
			Return(&cip.AdminUserGlobalSignOutOutput{}, nil)

		ids := cognito.NewIdentityStore(client, testAWSConfig(), nil)
		require.NoError(t, ids.GlobalSignOut(ctx, "user@example.com"))
	})

	t.Run("unknown principal maps to not found", func(t *testing.T) {
		client := new(mockClient)
		client.On("AdminUserGlobalSignOut", ctx, mock.Anything).
			Return(nil, &types.UserNotFoundException{Message: aws.String("no such user")})

		ids := cognito.NewIdentityStore(client, testAWSConfig(), nil)
		assert.ErrorIs(t, ids.GlobalSignOut(ctx, "ghost@example.com"), service.ErrPrincipalNotFound)
	})
}
