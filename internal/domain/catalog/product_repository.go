package catalog

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// FindAll lists products matching the filter; default ordering is
	// newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByCategory lists products directly linked to the category
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)

	// SlugExists reports whether the slug is taken globally
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// HasActiveVariants reports whether any variant of the product is active
	HasActiveVariants(ctx context.Context, productID uuid.UUID) (bool, error)

	// ReplaceRelated replaces the product's related-product links
	ReplaceRelated(ctx context.Context, productID uuid.UUID, relatedIDs []uuid.UUID) error

	// FindRelatedIDs returns the product's related-product links
	FindRelatedIDs(ctx context.Context, productID uuid.UUID) ([]uuid.UUID, error)

	Save(ctx context.Context, product *Product) error

	Delete(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
