package catalog

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VariantRepository defines the interface for product variant persistence
type VariantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductVariant, error)

	FindBySKU(ctx context.Context, sku string) (*ProductVariant, error)

	// FindByProduct lists a product's variants, active ones first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]ProductVariant, error)

	// SKUExists reports whether the SKU is taken globally
	SKUExists(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error)

	// ReplaceSelections replaces the variant's attribute selections
	ReplaceSelections(ctx context.Context, variantID uuid.UUID, selections []VariantAttributeSelection) error

	// FindSelections returns the variant's attribute selections
	FindSelections(ctx context.Context, variantID uuid.UUID) ([]VariantAttributeSelection, error)

	Save(ctx context.Context, variant *ProductVariant) error

	Delete(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
