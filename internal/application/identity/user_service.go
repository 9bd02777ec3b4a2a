package identity

import (
	"context"
	"time"

	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// revokedSessionTTL bounds how long a user-wide revocation marker outlives
// the longest-lived refresh token.
const revokedSessionTTL = 14 * 24 * time.Hour

// UserService handles profile edits and the staff-only account admin surface
type UserService struct {
	repos     Repos
	tx        TxManager
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(repos Repos, tx TxManager, blacklist auth.TokenBlacklist, logger *zap.Logger) *UserService {
	return &UserService{repos: repos, tx: tx, blacklist: blacklist, logger: logger}
}

// GetProfile returns a user's account
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.repos.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// UpdateProfile applies partial profile edits
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	var user *identity.User

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		user, err = repos.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}

		if req.Username != nil {
			if err := user.SetUsername(*req.Username); err != nil {
				return err
			}
		}
		if req.FirstName != nil || req.LastName != nil {
			firstName := user.FirstName
			lastName := user.LastName
			if req.FirstName != nil {
				firstName = *req.FirstName
			}
			if req.LastName != nil {
				lastName = *req.LastName
			}
			if err := user.SetName(firstName, lastName); err != nil {
				return err
			}
		}
		if req.Phone != nil {
			if err := user.SetPhone(*req.Phone); err != nil {
				return err
			}
		}
		if req.Gender != nil {
			if err := user.SetGender(identity.Gender(*req.Gender)); err != nil {
				return err
			}
		}
		if req.ClearBirthDate {
			if err := user.SetBirthDate(nil); err != nil {
				return err
			}
		} else if req.BirthDate != nil {
			if err := user.SetBirthDate(req.BirthDate); err != nil {
				return err
			}
		}

		return repos.Users.Save(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List retrieves user accounts matching the filter; staff only
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserResponse, int64, error) {
	domainFilter := shared.Filter{
		Search:  filter.Search,
		Filters: make(map[string]interface{}),
	}
	if filter.ActiveOnly {
		domainFilter.Filters["is_active"] = true
	}
	if filter.StaffOnly {
		domainFilter.Filters["is_staff"] = true
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	users, err := s.repos.Users.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.Users.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToUserResponses(users), total, nil
}

// Activate re-enables a deactivated account
func (s *UserService) Activate(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	var user *identity.User

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		user, err = repos.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := user.Activate(); err != nil {
			return err
		}
		return repos.Users.Save(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Deactivate disables an account and revokes its live sessions
func (s *UserService) Deactivate(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	var user *identity.User

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		user, err = repos.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := user.Deactivate(); err != nil {
			return err
		}
		return repos.Users.Save(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	if err := s.blacklist.RevokeAllForUser(ctx, userID.String(), revokedSessionTTL); err != nil {
		s.logger.Error("Failed to revoke sessions on deactivation", zap.Error(err))
	}

	s.logger.Info("Account deactivated", zap.String("user_id", userID.String()))
	return ToUserResponse(user), nil
}

// GrantStaff gives an account access to the admin surface
func (s *UserService) GrantStaff(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	var user *identity.User

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		user, err = repos.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := user.GrantStaff(); err != nil {
			return err
		}
		return repos.Users.Save(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Staff access granted", zap.String("user_id", userID.String()))
	return ToUserResponse(user), nil
}

// RevokeStaff removes admin access and revokes live sessions, so access
// tokens still carrying the staff claim die immediately
func (s *UserService) RevokeStaff(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	var user *identity.User

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		user, err = repos.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := user.RevokeStaff(); err != nil {
			return err
		}
		return repos.Users.Save(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	if err := s.blacklist.RevokeAllForUser(ctx, userID.String(), revokedSessionTTL); err != nil {
		s.logger.Error("Failed to revoke sessions on staff removal", zap.Error(err))
	}

	s.logger.Info("Staff access revoked", zap.String("user_id", userID.String()))
	return ToUserResponse(user), nil
}

// SetAvatar stores the blob-store reference for the profile picture
func (s *UserService) SetAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (*UserResponse, error) {
	var user *identity.User

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		user, err = repos.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := user.SetAvatarURL(avatarURL); err != nil {
			return err
		}
		return repos.Users.Save(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}
