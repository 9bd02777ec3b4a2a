package catalog

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name             string      `json:"name" binding:"required,min=1,max=255"`
	CategoryID       uuid.UUID   `json:"category_id" binding:"required"`
	BrandID          *uuid.UUID  `json:"brand_id"`
	ShortDescription string      `json:"short_description"`
	Description      string      `json:"description"`
	MetaTitle        string      `json:"meta_title" binding:"max=200"`
	MetaDescription  string      `json:"meta_description"`
	IsFeatured       *bool       `json:"is_featured"`
	RelatedIDs       []uuid.UUID `json:"related_ids"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name             *string     `json:"name" binding:"omitempty,min=1,max=255"`
	CategoryID       *uuid.UUID  `json:"category_id"`
	BrandID          *uuid.UUID  `json:"brand_id"`
	ClearBrand       bool        `json:"clear_brand"`
	ShortDescription *string     `json:"short_description"`
	Description      *string     `json:"description"`
	MetaTitle        *string     `json:"meta_title" binding:"omitempty,max=200"`
	MetaDescription  *string     `json:"meta_description"`
	IsFeatured       *bool       `json:"is_featured"`
	RelatedIDs       []uuid.UUID `json:"related_ids"`
}

// ProductListFilter represents filter options for product lists
type ProductListFilter struct {
	Search       string     `form:"search"`
	CategoryID   *uuid.UUID `form:"category_id"`
	BrandID      *uuid.UUID `form:"brand_id"`
	ActiveOnly   bool       `form:"active_only"`
	FeaturedOnly bool       `form:"featured_only"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by" binding:"omitempty,oneof=name created_at"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID               uuid.UUID   `json:"id"`
	Name             string      `json:"name"`
	Slug             string      `json:"slug"`
	CategoryID       uuid.UUID   `json:"category_id"`
	BrandID          *uuid.UUID  `json:"brand_id"`
	ShortDescription string      `json:"short_description"`
	Description      string      `json:"description"`
	MetaTitle        string      `json:"meta_title"`
	MetaDescription  string      `json:"meta_description"`
	IsActive         bool        `json:"is_active"`
	IsFeatured       bool        `json:"is_featured"`
	AverageRating    float64     `json:"average_rating"`
	ReviewCount      int64       `json:"review_count"`
	RelatedIDs       []uuid.UUID `json:"related_ids,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	Version          int         `json:"version"`
}

// ProductListItem is the compact shape for product listings
type ProductListItem struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	CategoryID uuid.UUID  `json:"category_id"`
	BrandID    *uuid.UUID `json:"brand_id"`
	IsActive   bool       `json:"is_active"`
	IsFeatured bool       `json:"is_featured"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateVariantRequest represents a request to create a product variant
type CreateVariantRequest struct {
	ProductID  uuid.UUID          `json:"product_id" binding:"required"`
	SKU        string             `json:"sku" binding:"required,min=1,max=100"`
	Price      decimal.Decimal    `json:"price" binding:"required"`
	SalePrice  *decimal.Decimal   `json:"sale_price"`
	Stock      *int               `json:"stock"`
	WeightKg   *decimal.Decimal   `json:"weight_kg"`
	LengthCm   *decimal.Decimal   `json:"length_cm"`
	WidthCm    *decimal.Decimal   `json:"width_cm"`
	HeightCm   *decimal.Decimal   `json:"height_cm"`
	CostPrice  *decimal.Decimal   `json:"cost_price"`
	TaxClass   string             `json:"tax_class" binding:"max=50"`
	Selections []SelectionRequest `json:"selections"`
}

// UpdateVariantRequest represents a request to update a variant
type UpdateVariantRequest struct {
	Price      *decimal.Decimal   `json:"price"`
	SalePrice  *decimal.Decimal   `json:"sale_price"`
	ClearSale  bool               `json:"clear_sale_price"`
	Stock      *int               `json:"stock"`
	WeightKg   *decimal.Decimal   `json:"weight_kg"`
	LengthCm   *decimal.Decimal   `json:"length_cm"`
	WidthCm    *decimal.Decimal   `json:"width_cm"`
	HeightCm   *decimal.Decimal   `json:"height_cm"`
	CostPrice  *decimal.Decimal   `json:"cost_price"`
	TaxClass   *string            `json:"tax_class" binding:"omitempty,max=50"`
	Selections []SelectionRequest `json:"selections"`
}

// SelectionRequest names one attribute/value pair for a variant
type SelectionRequest struct {
	AttributeID uuid.UUID `json:"attribute_id" binding:"required"`
	ValueID     uuid.UUID `json:"value_id" binding:"required"`
}

// VariantResponse represents a variant in API responses
type VariantResponse struct {
	ID             uuid.UUID           `json:"id"`
	ProductID      uuid.UUID           `json:"product_id"`
	SKU            string              `json:"sku"`
	Price          decimal.Decimal     `json:"price"`
	SalePrice      *decimal.Decimal    `json:"sale_price"`
	EffectivePrice decimal.Decimal     `json:"effective_price"`
	Stock          int                 `json:"stock"`
	WeightKg       *decimal.Decimal    `json:"weight_kg"`
	LengthCm       *decimal.Decimal    `json:"length_cm"`
	WidthCm        *decimal.Decimal    `json:"width_cm"`
	HeightCm       *decimal.Decimal    `json:"height_cm"`
	CostPrice      *decimal.Decimal    `json:"cost_price"`
	TaxClass       string              `json:"tax_class"`
	IsActive       bool                `json:"is_active"`
	Selections     []SelectionResponse `json:"selections,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Version        int                 `json:"version"`
}

// SelectionResponse mirrors one attribute/value pair of a variant
type SelectionResponse struct {
	AttributeID uuid.UUID `json:"attribute_id"`
	ValueID     uuid.UUID `json:"value_id"`
}

// ToProductResponse converts a domain Product; rating and related ids are
// filled in by the service
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		CategoryID:       p.CategoryID,
		BrandID:          p.BrandID,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		MetaTitle:        p.MetaTitle,
		MetaDescription:  p.MetaDescription,
		IsActive:         p.IsActive,
		IsFeatured:       p.IsFeatured,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Version:          p.Version,
	}
}

// ToProductListItems converts a slice of domain Products
func ToProductListItems(products []catalog.Product) []ProductListItem {
	items := make([]ProductListItem, len(products))
	for i := range products {
		p := &products[i]
		items[i] = ProductListItem{
			ID:         p.ID,
			Name:       p.Name,
			Slug:       p.Slug,
			CategoryID: p.CategoryID,
			BrandID:    p.BrandID,
			IsActive:   p.IsActive,
			IsFeatured: p.IsFeatured,
			CreatedAt:  p.CreatedAt,
		}
	}
	return items
}

// ToVariantResponse converts a domain ProductVariant
func ToVariantResponse(v *catalog.ProductVariant, selections []catalog.VariantAttributeSelection) *VariantResponse {
	resp := &VariantResponse{
		ID:             v.ID,
		ProductID:      v.ProductID,
		SKU:            v.SKU,
		Price:          v.Price,
		SalePrice:      v.SalePrice,
		EffectivePrice: v.EffectivePrice(),
		Stock:          v.Stock,
		WeightKg:       v.WeightKg,
		LengthCm:       v.LengthCm,
		WidthCm:        v.WidthCm,
		HeightCm:       v.HeightCm,
		CostPrice:      v.CostPrice,
		TaxClass:       v.TaxClass,
		IsActive:       v.IsActive,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		Version:        v.Version,
	}
	for _, sel := range selections {
		resp.Selections = append(resp.Selections, SelectionResponse{
			AttributeID: sel.AttributeID,
			ValueID:     sel.ValueID,
		})
	}
	return resp
}
