package catalog

import (
	"regexp"
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// VariantAttribute is a named axis of variation, e.g. "Color" or "Size"
type VariantAttribute struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
	// DisplayOrder controls how attributes are listed on product pages
	DisplayOrder int `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (VariantAttribute) TableName() string {
	return "variant_attributes"
}

// NewVariantAttribute creates an attribute axis
func NewVariantAttribute(name string) (*VariantAttribute, error) {
	if err := validateAttributeName(name); err != nil {
		return nil, err
	}
	return &VariantAttribute{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
	}, nil
}

// Rename changes the attribute name
func (a *VariantAttribute) Rename(name string) error {
	if err := validateAttributeName(name); err != nil {
		return err
	}
	a.Name = strings.TrimSpace(name)
	a.Touch()
	a.IncrementVersion()
	return nil
}

// SetDisplayOrder sets the listing position
func (a *VariantAttribute) SetDisplayOrder(order int) {
	a.DisplayOrder = order
	a.Touch()
	a.IncrementVersion()
}

// VariantAttributeValue is one concrete value of an attribute, unique per
// attribute. Color-like attributes can carry a hex code or a swatch image.
type VariantAttributeValue struct {
	shared.BaseEntity
	AttributeID uuid.UUID `gorm:"type:uuid;not null;index:idx_attr_value,unique"`
	Value       string    `gorm:"type:varchar(100);not null;index:idx_attr_value,unique"`
	HexCode     string    `gorm:"type:varchar(7)"`
	SwatchURL   string    `gorm:"type:varchar(500)"`
	SortOrder   int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (VariantAttributeValue) TableName() string {
	return "variant_attribute_values"
}

// NewVariantAttributeValue creates a value under an attribute
func NewVariantAttributeValue(attributeID uuid.UUID, value string) (*VariantAttributeValue, error) {
	if attributeID == uuid.Nil {
		return nil, shared.NewFieldError("INVALID_INPUT", "attribute_id", "Attribute is required")
	}
	if err := validateAttributeValue(value); err != nil {
		return nil, err
	}
	return &VariantAttributeValue{
		BaseEntity:  shared.NewBaseEntity(),
		AttributeID: attributeID,
		Value:       strings.TrimSpace(value),
	}, nil
}

// Rename changes the value label
func (v *VariantAttributeValue) Rename(value string) error {
	if err := validateAttributeValue(value); err != nil {
		return err
	}
	v.Value = strings.TrimSpace(value)
	v.Touch()
	return nil
}

// SetSwatch sets the hex code and/or swatch image for color-like values
func (v *VariantAttributeValue) SetSwatch(hexCode, swatchURL string) error {
	if hexCode != "" && !hexColorPattern.MatchString(hexCode) {
		return shared.NewFieldError("INVALID_INPUT", "hex_code", "Hex code must look like #RGB or #RRGGBB")
	}
	v.HexCode = hexCode
	v.SwatchURL = swatchURL
	v.Touch()
	return nil
}

// SetSortOrder sets the position among the attribute's values
func (v *VariantAttributeValue) SetSortOrder(order int) {
	v.SortOrder = order
	v.Touch()
}

func validateAttributeName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewFieldError("INVALID_INPUT", "name", "Attribute name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewFieldError("INVALID_INPUT", "name", "Attribute name cannot exceed 100 characters")
	}
	return nil
}

func validateAttributeValue(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return shared.NewFieldError("INVALID_INPUT", "value", "Attribute value cannot be empty")
	}
	if len(value) > 100 {
		return shared.NewFieldError("INVALID_INPUT", "value", "Attribute value cannot exceed 100 characters")
	}
	return nil
}
