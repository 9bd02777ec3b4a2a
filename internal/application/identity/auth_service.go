package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	repos      Repos
	tx         TxManager
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	repos Repos,
	tx TxManager,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		repos:      repos,
		tx:         tx,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates a customer account and logs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var user *identity.User

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		email := strings.ToLower(strings.TrimSpace(req.Email))

		taken, err := repos.Users.EmailExists(ctx, email, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewFieldError("ALREADY_EXISTS", "email", "An account with this email already exists")
		}

		user, err = identity.NewUser(email, req.Password)
		if err != nil {
			return err
		}
		if req.FirstName != "" || req.LastName != "" {
			if err := user.SetName(req.FirstName, req.LastName); err != nil {
				return err
			}
		}
		if req.Phone != "" {
			if err := user.SetPhone(req.Phone); err != nil {
				return err
			}
		}

		return repos.Users.Save(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.issueTokens(ctx, user)
}

// Login authenticates by email and password
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repos.Users.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("Login for unknown email", zap.String("email", email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.IsActive {
		s.logger.Warn("Login for deactivated account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	user.RecordLogin(time.Now())
	if err := s.repos.Users.Save(ctx, user); err != nil {
		// the login still succeeds; the timestamp is best effort
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a fresh pair. Email and
// staff flag are re-read from the user record, so a demoted staff account
// does not keep staff access through refreshes.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	if err := s.checkRevocation(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.repos.Users.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Refresh for unknown user", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("TOKEN_INVALID", "User no longer exists")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	pair, err := s.jwtService.RefreshTokenPair(refreshToken, user.Email, user.IsStaff)
	if err != nil {
		return nil, mapTokenError(err)
	}

	// the old refresh token is single use
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke used refresh token", zap.Error(err))
	}

	s.logger.Info("Tokens refreshed", zap.String("user_id", userID.String()))

	return toTokenResponse(pair), nil
}

// Logout revokes the current access token and, when provided, the refresh
// token for the remainder of their lifetimes
func (s *AuthService) Logout(ctx context.Context, accessClaims *auth.Claims, refreshToken string) error {
	if err := s.blacklist.Revoke(ctx, accessClaims.ID, accessClaims.GetRemainingTTL()); err != nil {
		return err
	}

	if refreshToken != "" {
		refreshClaims, err := s.jwtService.ValidateRefreshToken(refreshToken)
		if err == nil {
			if err := s.blacklist.Revoke(ctx, refreshClaims.ID, refreshClaims.GetRemainingTTL()); err != nil {
				s.logger.Error("Failed to revoke refresh token on logout", zap.Error(err))
			}
		}
	}

	s.logger.Info("User logged out", zap.String("user_id", accessClaims.UserID))
	return nil
}

// LogoutAll revokes every token the user holds across devices
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	ttl := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.RevokeAllForUser(ctx, userID, ttl); err != nil {
		return err
	}
	s.logger.Info("All sessions revoked", zap.String("user_id", userID))
	return nil
}

// GetCurrentUser returns the authenticated user's account
func (s *AuthService) GetCurrentUser(ctx context.Context, claims *auth.Claims) (*UserResponse, error) {
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.repos.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ChangePassword verifies the current password, sets the new one and revokes
// every other session
func (s *AuthService) ChangePassword(ctx context.Context, claims *auth.Claims, req ChangePasswordRequest) error {
	userID, err := claims.GetUserUUID()
	if err != nil {
		return shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		user, err := repos.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := user.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
			return err
		}
		return repos.Users.Save(ctx, user)
	})
	if err != nil {
		return err
	}

	if err := s.blacklist.RevokeAllForUser(ctx, userID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to revoke sessions after password change", zap.Error(err))
	}

	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

// IsTokenRevoked reports whether the claims fall under a direct or user-wide
// revocation; used by the auth middleware
func (s *AuthService) IsTokenRevoked(ctx context.Context, claims *auth.Claims) (bool, error) {
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil || revoked {
		return revoked, err
	}

	issuedAt := time.Time{}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}
	return s.blacklist.IsRevokedForUser(ctx, claims.UserID, issuedAt)
}

func (s *AuthService) checkRevocation(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.IsTokenRevoked(ctx, claims)
	if err != nil {
		s.logger.Error("Failed to check token revocation", zap.Error(err))
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate token")
	}
	if revoked {
		return shared.NewDomainError("TOKEN_INVALID", "Token has been revoked")
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *identity.User) (*AuthResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:  user.ID,
		Email:   user.Email,
		IsStaff: user.IsStaff,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_ERROR", "Failed to generate authentication tokens")
	}

	return &AuthResponse{
		User:  *ToUserResponse(user),
		Token: *toTokenResponse(pair),
	}, nil
}

func toTokenResponse(pair *auth.TokenPair) *TokenResponse {
	return &TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
}
