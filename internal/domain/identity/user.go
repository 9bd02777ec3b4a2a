package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/ecommerce/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Gender is an optional profile field
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// User is the account aggregate. Login is by email; IsStaff gates the
// admin surface.
type User struct {
	shared.BaseAggregateRoot
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Username     string `gorm:"type:varchar(100);index"`
	PasswordHash string `gorm:"type:varchar(255);not null"`

	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Phone     string `gorm:"type:varchar(50)"`
	Gender    Gender `gorm:"type:varchar(10)"`
	BirthDate *time.Time

	AvatarURL string `gorm:"type:varchar(500)"`

	IsStaff  bool `gorm:"not null;default:false"`
	IsActive bool `gorm:"not null;default:true"`

	LastLoginAt *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates an active customer account
func NewUser(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      passwordHash,
		IsActive:          true,
	}, nil
}

// NewStaffUser creates an account with access to the admin surface
func NewStaffUser(email, password string) (*User, error) {
	user, err := NewUser(email, password)
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	return user, nil
}

// SetUsername sets the optional display handle
func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) > 100 {
		return shared.NewFieldError("INVALID_INPUT", "username", "Username cannot exceed 100 characters")
	}
	u.Username = username
	u.Touch()
	u.IncrementVersion()
	return nil
}

// SetName sets the profile name fields
func (u *User) SetName(firstName, lastName string) error {
	if len(firstName) > 100 || len(lastName) > 100 {
		return shared.NewFieldError("INVALID_INPUT", "name", "Name cannot exceed 100 characters")
	}
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.Touch()
	u.IncrementVersion()
	return nil
}

// FullName joins the name fields, falling back to the email local part
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}

// SetPhone sets the contact phone number
func (u *User) SetPhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewFieldError("INVALID_INPUT", "phone", "Phone cannot exceed 50 characters")
	}
	u.Phone = strings.TrimSpace(phone)
	u.Touch()
	u.IncrementVersion()
	return nil
}

// SetGender sets the optional gender field; empty clears it
func (u *User) SetGender(gender Gender) error {
	switch gender {
	case "", GenderMale, GenderFemale, GenderOther:
	default:
		return shared.NewFieldError("INVALID_INPUT", "gender", "Unknown gender value")
	}
	u.Gender = gender
	u.Touch()
	u.IncrementVersion()
	return nil
}

// SetBirthDate sets the optional birth date; future dates are rejected
func (u *User) SetBirthDate(birthDate *time.Time) error {
	if birthDate != nil && birthDate.After(time.Now()) {
		return shared.NewFieldError("INVALID_INPUT", "birth_date", "Birth date cannot be in the future")
	}
	u.BirthDate = birthDate
	u.Touch()
	u.IncrementVersion()
	return nil
}

// SetAvatarURL stores the blob-store reference for the profile picture
func (u *User) SetAvatarURL(url string) error {
	if len(url) > 500 {
		return shared.NewFieldError("INVALID_INPUT", "avatar_url", "Avatar URL cannot exceed 500 characters")
	}
	u.AvatarURL = url
	u.Touch()
	u.IncrementVersion()
	return nil
}

// ChangePassword verifies the current password before setting a new one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword sets a new password without checking the old one (staff reset)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.Touch()
	u.IncrementVersion()
	return nil
}

// VerifyPassword reports whether the plaintext matches the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.Touch()
}

// GrantStaff gives the user access to the admin surface
func (u *User) GrantStaff() error {
	if u.IsStaff {
		return shared.NewDomainError("INVALID_STATE", "User is already staff")
	}
	u.IsStaff = true
	u.Touch()
	u.IncrementVersion()
	return nil
}

// RevokeStaff removes admin access
func (u *User) RevokeStaff() error {
	if !u.IsStaff {
		return shared.NewDomainError("INVALID_STATE", "User is not staff")
	}
	u.IsStaff = false
	u.Touch()
	u.IncrementVersion()
	return nil
}

// Activate re-enables a deactivated account
func (u *User) Activate() error {
	if u.IsActive {
		return shared.NewDomainError("INVALID_STATE", "User is already active")
	}
	u.IsActive = true
	u.Touch()
	u.IncrementVersion()
	return nil
}

// Deactivate disables the account; login is refused while inactive
func (u *User) Deactivate() error {
	if !u.IsActive {
		return shared.NewDomainError("INVALID_STATE", "User is already deactivated")
	}
	u.IsActive = false
	u.Touch()
	u.IncrementVersion()
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewFieldError("INVALID_INPUT", "email", "Email cannot be empty")
	}
	if len(email) > 255 {
		return shared.NewFieldError("INVALID_INPUT", "email", "Email cannot exceed 255 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewFieldError("INVALID_INPUT", "email", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewFieldError("INVALID_INPUT", "password", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewFieldError("INVALID_INPUT", "password", "Password cannot exceed 128 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
