package identity

import (
	"context"
	"testing"
	"time"

	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/auth"
	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-key-32-chars!",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "shop-backend-test",
		MaxRefreshCount:        5,
	})
}

func newAuthService() (*AuthService, *MockUserRepository, *auth.InMemoryTokenBlacklist) {
	repos, users, _ := newTestRepos()
	blacklist := auth.NewInMemoryTokenBlacklist()
	service := NewAuthService(repos, &passthroughTx{repos: repos}, newTestJWTService(), blacklist, zap.NewNop())
	return service, users, blacklist
}

func testUser(t *testing.T, email string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(email, "password123")
	require.NoError(t, err)
	return user
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an account and returns tokens", func(t *testing.T) {
		service, users, _ := newAuthService()

		users.On("EmailExists", mock.Anything, "new@example.com", mock.Anything).Return(false, nil)
		users.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := service.Register(ctx, RegisterRequest{
			Email:     "New@Example.com",
			Password:  "password123",
			FirstName: "Asha",
			LastName:  "Rao",
		})
		require.NoError(t, err)

		assert.Equal(t, "new@example.com", resp.User.Email)
		assert.Equal(t, "Asha Rao", resp.User.FullName)
		assert.False(t, resp.User.IsStaff)
		assert.NotEmpty(t, resp.Token.AccessToken)
		assert.NotEmpty(t, resp.Token.RefreshToken)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		service, users, _ := newAuthService()

		users.On("EmailExists", mock.Anything, "taken@example.com", mock.Anything).Return(true, nil)

		_, err := service.Register(ctx, RegisterRequest{Email: "taken@example.com", Password: "password123"})
		assertDomainCode(t, err, "ALREADY_EXISTS")
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a weak password", func(t *testing.T) {
		service, users, _ := newAuthService()

		users.On("EmailExists", mock.Anything, "new@example.com", mock.Anything).Return(false, nil)

		_, err := service.Register(ctx, RegisterRequest{Email: "new@example.com", Password: "short"})
		assertDomainCode(t, err, "INVALID_INPUT")
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials return tokens and record the login", func(t *testing.T) {
		service, users, _ := newAuthService()
		user := testUser(t, "user@example.com")

		users.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)
		users.On("Save", mock.Anything, user).Return(nil)

		resp, err := service.Login(ctx, LoginRequest{Email: "User@Example.com", Password: "password123"})
		require.NoError(t, err)

		assert.Equal(t, user.ID, resp.User.ID)
		assert.NotEmpty(t, resp.Token.AccessToken)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("unknown email and wrong password use the same error", func(t *testing.T) {
		service, users, _ := newAuthService()
		user := testUser(t, "user@example.com")

		users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, shared.ErrNotFound)
		users.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)

		_, err := service.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assertDomainCode(t, err, "INVALID_CREDENTIALS")

		_, err = service.Login(ctx, LoginRequest{Email: "user@example.com", Password: "wrong-password"})
		assertDomainCode(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("deactivated accounts cannot log in", func(t *testing.T) {
		service, users, _ := newAuthService()
		user := testUser(t, "user@example.com")
		require.NoError(t, user.Deactivate())

		users.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)

		_, err := service.Login(ctx, LoginRequest{Email: "user@example.com", Password: "password123"})
		assertDomainCode(t, err, "ACCOUNT_DEACTIVATED")
	})

	t.Run("staff flag is carried in the access token", func(t *testing.T) {
		service, users, _ := newAuthService()
		user, err := identity.NewStaffUser("admin@example.com", "password123")
		require.NoError(t, err)

		users.On("FindByEmail", mock.Anything, "admin@example.com").Return(user, nil)
		users.On("Save", mock.Anything, user).Return(nil)

		resp, err := service.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "password123"})
		require.NoError(t, err)

		claims, err := newTestJWTService().ValidateAccessToken(resp.Token.AccessToken)
		require.NoError(t, err)
		assert.True(t, claims.IsStaff)
	})
}

func TestAuthServiceRefreshToken(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, service *AuthService, users *MockUserRepository, user *identity.User) *AuthResponse {
		t.Helper()
		users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
		users.On("Save", mock.Anything, user).Return(nil)
		resp, err := service.Login(ctx, LoginRequest{Email: user.Email, Password: "password123"})
		require.NoError(t, err)
		return resp
	}

	t.Run("issues a fresh pair and retires the old refresh token", func(t *testing.T) {
		service, users, _ := newAuthService()
		user := testUser(t, "user@example.com")
		resp := login(t, service, users, user)

		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		refreshed, err := service.RefreshToken(ctx, resp.Token.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, resp.Token.RefreshToken, refreshed.RefreshToken)

		// the spent refresh token no longer works
		_, err = service.RefreshToken(ctx, resp.Token.RefreshToken)
		assertDomainCode(t, err, "TOKEN_INVALID")
	})

	t.Run("re-reads the staff flag from the user record", func(t *testing.T) {
		service, users, _ := newAuthService()
		user, err := identity.NewStaffUser("admin@example.com", "password123")
		require.NoError(t, err)
		resp := login(t, service, users, user)

		require.NoError(t, user.RevokeStaff())
		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		refreshed, err := service.RefreshToken(ctx, resp.Token.RefreshToken)
		require.NoError(t, err)

		claims, err := newTestJWTService().ValidateAccessToken(refreshed.AccessToken)
		require.NoError(t, err)
		assert.False(t, claims.IsStaff)
	})

	t.Run("rejects refresh for a deactivated account", func(t *testing.T) {
		service, users, _ := newAuthService()
		user := testUser(t, "user@example.com")
		resp := login(t, service, users, user)

		require.NoError(t, user.Deactivate())
		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		_, err := service.RefreshToken(ctx, resp.Token.RefreshToken)
		assertDomainCode(t, err, "ACCOUNT_DEACTIVATED")
	})

	t.Run("rejects refresh after a user-wide revocation", func(t *testing.T) {
		service, users, _ := newAuthService()
		user := testUser(t, "user@example.com")
		resp := login(t, service, users, user)

		require.NoError(t, service.LogoutAll(ctx, user.ID.String()))

		_, err := service.RefreshToken(ctx, resp.Token.RefreshToken)
		assertDomainCode(t, err, "TOKEN_INVALID")
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		service, _, _ := newAuthService()

		_, err := service.RefreshToken(ctx, "not-a-token")
		assertDomainCode(t, err, "TOKEN_INVALID")
	})
}

func TestAuthServiceLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the access token", func(t *testing.T) {
		service, users, _ := newAuthService()
		user := testUser(t, "user@example.com")

		users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
		users.On("Save", mock.Anything, user).Return(nil)

		resp, err := service.Login(ctx, LoginRequest{Email: user.Email, Password: "password123"})
		require.NoError(t, err)

		claims, err := newTestJWTService().ValidateAccessToken(resp.Token.AccessToken)
		require.NoError(t, err)

		require.NoError(t, service.Logout(ctx, claims, resp.Token.RefreshToken))

		revoked, err := service.IsTokenRevoked(ctx, claims)
		require.NoError(t, err)
		assert.True(t, revoked)

		// the refresh token was revoked too
		_, err = service.RefreshToken(ctx, resp.Token.RefreshToken)
		assertDomainCode(t, err, "TOKEN_INVALID")
	})
}

func TestAuthServiceChangePassword(t *testing.T) {
	ctx := context.Background()

	claimsFor := func(t *testing.T, user *identity.User) *auth.Claims {
		t.Helper()
		pair, err := newTestJWTService().GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID, Email: user.Email})
		require.NoError(t, err)
		claims, err := newTestJWTService().ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		return claims
	}

	t.Run("changes the password and revokes other sessions", func(t *testing.T) {
		service, users, blacklist := newAuthService()
		user := testUser(t, "user@example.com")
		claims := claimsFor(t, user)

		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		users.On("Save", mock.Anything, user).Return(nil)

		err := service.ChangePassword(ctx, claims, ChangePasswordRequest{
			CurrentPassword: "password123",
			NewPassword:     "new-password-456",
		})
		require.NoError(t, err)

		assert.True(t, user.VerifyPassword("new-password-456"))

		revoked, err := blacklist.IsRevokedForUser(ctx, user.ID.String(), time.Now().Add(-time.Second))
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		service, users, _ := newAuthService()
		user := testUser(t, "user@example.com")
		claims := claimsFor(t, user)

		users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		err := service.ChangePassword(ctx, claims, ChangePasswordRequest{
			CurrentPassword: "wrong-password",
			NewPassword:     "new-password-456",
		})
		assertDomainCode(t, err, "INVALID_PASSWORD")
		assert.True(t, user.VerifyPassword("password123"))
	})
}
