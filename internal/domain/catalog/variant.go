package catalog

import (
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductVariant is a purchasable form of a product: it owns the SKU,
// pricing, stock, and physical dimensions.
type ProductVariant struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	SKU       string    `gorm:"type:varchar(100);not null;uniqueIndex"`

	Price decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// SalePrice, when set, must be strictly less than Price
	SalePrice *decimal.Decimal `gorm:"type:decimal(10,2)"`

	Stock int `gorm:"not null;default:0"`

	WeightKg *decimal.Decimal `gorm:"type:decimal(6,3)"`
	LengthCm *decimal.Decimal `gorm:"type:decimal(6,2)"`
	WidthCm  *decimal.Decimal `gorm:"type:decimal(6,2)"`
	HeightCm *decimal.Decimal `gorm:"type:decimal(6,2)"`

	CostPrice *decimal.Decimal `gorm:"type:decimal(10,2)"`
	TaxClass  string           `gorm:"type:varchar(50)"`

	IsActive bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// NewProductVariant creates a variant for a product
func NewProductVariant(productID uuid.UUID, sku string, price decimal.Decimal) (*ProductVariant, error) {
	if productID == uuid.Nil {
		return nil, shared.NewFieldError("INVALID_INPUT", "product_id", "Product is required")
	}
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if price.IsNegative() || price.IsZero() {
		return nil, shared.NewFieldError("INVALID_INPUT", "price", "Price must be positive")
	}

	return &ProductVariant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		SKU:               strings.TrimSpace(sku),
		Price:             price,
		IsActive:          true,
	}, nil
}

// SetPricing updates price and optional sale price, enforcing
// sale price < price
func (v *ProductVariant) SetPricing(price decimal.Decimal, salePrice *decimal.Decimal) error {
	if price.IsNegative() || price.IsZero() {
		return shared.NewFieldError("INVALID_INPUT", "price", "Price must be positive")
	}
	if salePrice != nil && salePrice.GreaterThanOrEqual(price) {
		return shared.NewFieldError("INVALID_INPUT", "sale_price", "Sale price must be less than price")
	}

	v.Price = price
	v.SalePrice = salePrice
	v.Touch()
	v.IncrementVersion()
	return nil
}

// EffectivePrice returns the sale price when set, otherwise the list price
func (v *ProductVariant) EffectivePrice() decimal.Decimal {
	if v.SalePrice != nil {
		return *v.SalePrice
	}
	return v.Price
}

// SetStock sets the on-hand quantity
func (v *ProductVariant) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewFieldError("INVALID_INPUT", "stock", "Stock cannot be negative")
	}
	v.Stock = stock
	v.Touch()
	v.IncrementVersion()
	return nil
}

// SetDimensions sets the optional physical dimensions
func (v *ProductVariant) SetDimensions(weightKg, lengthCm, widthCm, heightCm *decimal.Decimal) {
	v.WeightKg = weightKg
	v.LengthCm = lengthCm
	v.WidthCm = widthCm
	v.HeightCm = heightCm
	v.Touch()
	v.IncrementVersion()
}

// SetCosting sets the optional cost price and tax class
func (v *ProductVariant) SetCosting(costPrice *decimal.Decimal, taxClass string) error {
	if len(taxClass) > 50 {
		return shared.NewFieldError("INVALID_INPUT", "tax_class", "Tax class cannot exceed 50 characters")
	}
	v.CostPrice = costPrice
	v.TaxClass = taxClass
	v.Touch()
	v.IncrementVersion()
	return nil
}

// Activate re-enables the variant
func (v *ProductVariant) Activate() error {
	if v.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Variant is already active")
	}
	v.IsActive = true
	v.Touch()
	v.IncrementVersion()
	return nil
}

// Deactivate disables the variant
func (v *ProductVariant) Deactivate() error {
	if !v.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Variant is already inactive")
	}
	v.IsActive = false
	v.Touch()
	v.IncrementVersion()
	return nil
}

// VariantAttributeSelection links a variant to one value of one attribute.
// The value must belong to the declared attribute; uniqueness is per
// (variant, attribute).
type VariantAttributeSelection struct {
	VariantID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	AttributeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ValueID     uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (VariantAttributeSelection) TableName() string {
	return "variant_attribute_selections"
}

func validateSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return shared.NewFieldError("INVALID_INPUT", "sku", "SKU cannot be empty")
	}
	if len(sku) > 100 {
		return shared.NewFieldError("INVALID_INPUT", "sku", "SKU cannot exceed 100 characters")
	}
	return nil
}
