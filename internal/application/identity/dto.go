package identity

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterRequest contains the input for account registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// LoginRequest contains the input for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User  UserResponse  `json:"user"`
	Token TokenResponse `json:"token"`
}

// ChangePasswordRequest contains the input for a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UpdateProfileRequest contains partial profile updates. Nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Username       *string    `json:"username"`
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	Phone          *string    `json:"phone"`
	Gender         *string    `json:"gender"`
	BirthDate      *time.Time `json:"birth_date"`
	ClearBirthDate bool       `json:"clear_birth_date"`
}

// UserResponse is the outward representation of a user account
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username,omitempty"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	FullName    string     `json:"full_name"`
	Phone       string     `json:"phone,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	IsStaff     bool       `json:"is_staff"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToUserResponse converts a user aggregate to its response form
func ToUserResponse(user *identity.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		Phone:       user.Phone,
		Gender:      string(user.Gender),
		BirthDate:   user.BirthDate,
		AvatarURL:   user.AvatarURL,
		IsStaff:     user.IsStaff,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// ToUserResponses converts a slice of users
func ToUserResponses(users []identity.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *ToUserResponse(&users[i])
	}
	return responses
}

// UserListFilter narrows the staff user listing
type UserListFilter struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
	StaffOnly  bool   `form:"staff_only"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AddressRequest carries the full field set of an address; used for both
// create and update
type AddressRequest struct {
	Kind           string `json:"kind" binding:"required,oneof=home work other"`
	FullName       string `json:"full_name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	AlternatePhone string `json:"alternate_phone"`
	Pincode        string `json:"pincode" binding:"required"`
	Locality       string `json:"locality"`
	Line           string `json:"line" binding:"required"`
	City           string `json:"city" binding:"required"`
	State          string `json:"state" binding:"required"`
	Landmark       string `json:"landmark"`
	IsDefault      bool   `json:"is_default"`
}

// AddressResponse is the outward representation of a saved address
type AddressResponse struct {
	ID             uuid.UUID `json:"id"`
	Kind           string    `json:"kind"`
	FullName       string    `json:"full_name"`
	Phone          string    `json:"phone"`
	AlternatePhone string    `json:"alternate_phone,omitempty"`
	Pincode        string    `json:"pincode"`
	Locality       string    `json:"locality,omitempty"`
	Line           string    `json:"line"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Landmark       string    `json:"landmark,omitempty"`
	IsDefault      bool      `json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToAddressResponse converts an address entity to its response form
func ToAddressResponse(address *identity.Address) *AddressResponse {
	return &AddressResponse{
		ID:             address.ID,
		Kind:           string(address.Kind),
		FullName:       address.FullName,
		Phone:          address.Phone,
		AlternatePhone: address.AlternatePhone,
		Pincode:        address.Pincode,
		Locality:       address.Locality,
		Line:           address.Line,
		City:           address.City,
		State:          address.State,
		Landmark:       address.Landmark,
		IsDefault:      address.IsDefault,
		CreatedAt:      address.CreatedAt,
	}
}

// ToAddressResponses converts a slice of addresses
func ToAddressResponses(addresses []identity.Address) []AddressResponse {
	responses := make([]AddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = *ToAddressResponse(&addresses[i])
	}
	return responses
}

func fieldsFromRequest(req AddressRequest) identity.AddressFields {
	return identity.AddressFields{
		Kind:           identity.AddressKind(req.Kind),
		FullName:       req.FullName,
		Phone:          req.Phone,
		AlternatePhone: req.AlternatePhone,
		Pincode:        req.Pincode,
		Locality:       req.Locality,
		Line:           req.Line,
		City:           req.City,
		State:          req.State,
		Landmark:       req.Landmark,
	}
}
