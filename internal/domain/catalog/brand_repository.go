package catalog

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BrandRepository defines the interface for brand persistence
type BrandRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)

	FindBySlug(ctx context.Context, slug string) (*Brand, error)

	// FindAll lists brands matching the filter; default ordering is
	// (-is_featured, -priority, name)
	FindAll(ctx context.Context, filter shared.Filter) ([]Brand, error)

	// NameExists reports whether the name is taken, case-insensitively
	NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)

	// SlugExists reports whether the slug is taken globally
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// HasProducts reports whether any product references the brand
	HasProducts(ctx context.Context, brandID uuid.UUID) (bool, error)

	Save(ctx context.Context, brand *Brand) error

	Delete(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
