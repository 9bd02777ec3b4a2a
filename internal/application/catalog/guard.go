package catalog

import (
	"context"
	"fmt"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DependencyGuard evaluates whether a catalog entity can be deactivated or
// deleted. Each blocked check yields a HAS_DEPENDENTS error naming the
// dependents, so callers can surface an actionable message.
type DependencyGuard struct {
	repos Repos
}

// NewDependencyGuard creates a guard over the given repositories
func NewDependencyGuard(repos Repos) *DependencyGuard {
	return &DependencyGuard{repos: repos}
}

// CheckCategoryRemovable blocks when the category still has active children
// or linked products. Used for both soft delete and hard delete.
func (g *DependencyGuard) CheckCategoryRemovable(ctx context.Context, categoryID uuid.UUID) error {
	hasChildren, err := g.repos.Categories.HasActiveChildren(ctx, categoryID)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.NewDomainError(shared.ErrCodeHasDependents,
			"Category has active subcategories; deactivate or move them first")
	}

	hasProducts, err := g.repos.Categories.HasProducts(ctx, categoryID)
	if err != nil {
		return err
	}
	if hasProducts {
		return shared.NewDomainError(shared.ErrCodeHasDependents,
			"Category has linked products; move or delete them first")
	}

	return nil
}

// CheckBrandRemovable blocks when any product still references the brand
func (g *DependencyGuard) CheckBrandRemovable(ctx context.Context, brandID uuid.UUID) error {
	hasProducts, err := g.repos.Brands.HasProducts(ctx, brandID)
	if err != nil {
		return err
	}
	if hasProducts {
		return shared.NewDomainError(shared.ErrCodeHasDependents,
			"Brand has linked products; reassign or delete them first")
	}
	return nil
}

// CheckProductHardDeletable blocks while the product is active or still has
// active variants
func (g *DependencyGuard) CheckProductHardDeletable(ctx context.Context, product *catalog.Product) error {
	if product.IsActive {
		return shared.NewDomainError("INVALID_STATE",
			"Product must be deactivated before it can be deleted")
	}

	hasVariants, err := g.repos.Products.HasActiveVariants(ctx, product.ID)
	if err != nil {
		return err
	}
	if hasVariants {
		return shared.NewDomainError(shared.ErrCodeHasDependents,
			"Product has active variants; deactivate them first")
	}
	return nil
}

// CheckAttributeRemovable blocks while variant selections reference the
// attribute
func (g *DependencyGuard) CheckAttributeRemovable(ctx context.Context, attributeID uuid.UUID) error {
	inUse, err := g.repos.Attributes.IsInUse(ctx, attributeID)
	if err != nil {
		return err
	}
	if inUse {
		return shared.NewDomainError(shared.ErrCodeHasDependents,
			"Attribute is used by variant selections; remove those first")
	}
	return nil
}

// CheckValueRemovable blocks while variant selections reference the value
func (g *DependencyGuard) CheckValueRemovable(ctx context.Context, value *catalog.VariantAttributeValue) error {
	inUse, err := g.repos.Attributes.ValueInUse(ctx, value.ID)
	if err != nil {
		return err
	}
	if inUse {
		return shared.NewDomainError(shared.ErrCodeHasDependents,
			fmt.Sprintf("Value %q is used by variant selections; remove those first", value.Value))
	}
	return nil
}
