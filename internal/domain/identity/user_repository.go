package identity

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail looks up by the normalized (lowercased) email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// EmailExists reports whether the email is taken
	EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)

	Save(ctx context.Context, user *User) error

	Delete(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// AddressRepository defines the interface for address persistence
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)

	// FindByUser lists the user's addresses, default first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Address, error)

	// FindDefault returns the user's default address, if any
	FindDefault(ctx context.Context, userID uuid.UUID) (*Address, error)

	// ClearDefaultForUser unsets is_default on all of the user's addresses
	ClearDefaultForUser(ctx context.Context, userID uuid.UUID) error

	Save(ctx context.Context, address *Address) error

	Delete(ctx context.Context, id uuid.UUID) error
}
