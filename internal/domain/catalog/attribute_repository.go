package catalog

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AttributeRepository defines the interface for variant attribute persistence
type AttributeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VariantAttribute, error)

	// FindAll lists attributes ordered by display_order then name
	FindAll(ctx context.Context, filter shared.Filter) ([]VariantAttribute, error)

	// NameExists reports whether the attribute name is taken, case-insensitively
	NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)

	// IsInUse reports whether any variant selection references the attribute
	IsInUse(ctx context.Context, attributeID uuid.UUID) (bool, error)

	Save(ctx context.Context, attribute *VariantAttribute) error

	Delete(ctx context.Context, id uuid.UUID) error

	// Values

	FindValueByID(ctx context.Context, id uuid.UUID) (*VariantAttributeValue, error)

	// FindValues lists an attribute's values ordered by sort_order then value
	FindValues(ctx context.Context, attributeID uuid.UUID) ([]VariantAttributeValue, error)

	// ValueExists reports whether the value is taken within the attribute
	ValueExists(ctx context.Context, attributeID uuid.UUID, value string, excludeID uuid.UUID) (bool, error)

	// ValueInUse reports whether any variant selection references the value
	ValueInUse(ctx context.Context, valueID uuid.UUID) (bool, error)

	SaveValue(ctx context.Context, value *VariantAttributeValue) error

	DeleteValue(ctx context.Context, id uuid.UUID) error
}
