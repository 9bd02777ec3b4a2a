package catalog

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByIDForUpdate finds a category and locks its row for the duration
	// of the surrounding transaction. Used to serialize concurrent moves of
	// overlapping subtrees.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByPath finds a category by its materialized path
	FindByPath(ctx context.Context, path string) (*Category, error)

	// FindAll finds all categories matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// FindChildren finds all direct children of a category,
	// ordered by (sort_order, name)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)

	// FindRoots finds all root categories, ordered by (sort_order, name)
	FindRoots(ctx context.Context) ([]Category, error)

	// FindDescendants finds all strict descendants via the path prefix,
	// ordered level ascending so ancestors sort before their children
	FindDescendants(ctx context.Context, category *Category) ([]Category, error)

	// FindAncestors returns the chain from root down to (and optionally
	// including) the category
	FindAncestors(ctx context.Context, category *Category, includeSelf bool) ([]Category, error)

	// SiblingNameExists reports whether another category under the same
	// parent already uses the name, case-insensitively
	SiblingNameExists(ctx context.Context, parentID *uuid.UUID, name string, excludeID uuid.UUID) (bool, error)

	// SiblingSlugExists reports whether a slug is taken under the parent
	SiblingSlugExists(ctx context.Context, parentID *uuid.UUID, slug string, excludeID uuid.UUID) (bool, error)

	// HasActiveChildren reports whether any direct child is active
	HasActiveChildren(ctx context.Context, categoryID uuid.UUID) (bool, error)

	// HasProducts reports whether any product references the category
	HasProducts(ctx context.Context, categoryID uuid.UUID) (bool, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// SavePaths persists recomputed paths for a set of descendants.
	// Must run inside the same transaction as the structural change.
	SavePaths(ctx context.Context, categories []Category) error

	// Delete permanently removes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
