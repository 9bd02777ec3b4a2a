package catalog

import (
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Product is the abstract product concept. Prices, stock, and physical
// attributes live on its variants.
type Product struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(255);not null"`
	Slug string `gorm:"type:varchar(255);not null;uniqueIndex"`

	// CategoryID is required; the category cannot be deleted while
	// products reference it
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	// BrandID is optional but likewise protected on delete
	BrandID *uuid.UUID `gorm:"type:uuid;index"`

	ShortDescription string `gorm:"type:text"`
	Description      string `gorm:"type:text"`

	MetaTitle       string `gorm:"type:varchar(200)"`
	MetaDescription string `gorm:"type:text"`

	IsActive   bool `gorm:"not null;default:true"`
	IsFeatured bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// RelatedProduct links a product to another product it is sold alongside
type RelatedProduct struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	RelatedID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for GORM
func (RelatedProduct) TableName() string {
	return "related_products"
}

// NewProduct creates a product with an already-allocated slug
func NewProduct(name, slug string, categoryID uuid.UUID) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewFieldError("INVALID_INPUT", "category_id", "Category is required")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Slug:              slug,
		CategoryID:        categoryID,
		IsActive:          true,
	}, nil
}

// Rename changes the display name; the slug stays as assigned at creation
func (p *Product) Rename(name string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(name)
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Recategorize moves the product to another category
func (p *Product) Recategorize(categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return shared.NewFieldError("INVALID_INPUT", "category_id", "Category is required")
	}
	p.CategoryID = categoryID
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetBrand assigns or clears the brand reference
func (p *Product) SetBrand(brandID *uuid.UUID) {
	p.BrandID = brandID
	p.Touch()
	p.IncrementVersion()
}

// SetDescriptions updates both description fields
func (p *Product) SetDescriptions(short, long string) {
	p.ShortDescription = short
	p.Description = long
	p.Touch()
	p.IncrementVersion()
}

// SetSEO sets the meta title and description
func (p *Product) SetSEO(title, description string) error {
	if len(title) > 200 {
		return shared.NewFieldError("INVALID_INPUT", "meta_title", "Meta title cannot exceed 200 characters")
	}
	p.MetaTitle = title
	p.MetaDescription = description
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetFeatured toggles the featured flag
func (p *Product) SetFeatured(featured bool) {
	p.IsFeatured = featured
	p.Touch()
	p.IncrementVersion()
}

// Activate re-enables a deactivated product
func (p *Product) Activate() error {
	if p.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Product is already active")
	}
	p.IsActive = true
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Deactivate soft-deletes the product. Always allowed; variants keep their
// own active flags.
func (p *Product) Deactivate() error {
	if !p.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Product is already inactive")
	}
	p.IsActive = false
	p.Touch()
	p.IncrementVersion()
	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewFieldError("INVALID_INPUT", "name", "Product name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewFieldError("INVALID_INPUT", "name", "Product name cannot exceed 255 characters")
	}
	return nil
}
