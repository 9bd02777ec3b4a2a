package persistence

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVariantRepository implements VariantRepository using GORM
type GormVariantRepository struct {
	db *gorm.DB
}

// NewGormVariantRepository creates a new GormVariantRepository
func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// FindByID finds a variant by its ID
func (r *GormVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	var variant catalog.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// FindBySKU finds a variant by its SKU
func (r *GormVariantRepository) FindBySKU(ctx context.Context, sku string) (*catalog.ProductVariant, error) {
	var variant catalog.ProductVariant
	if err := r.db.WithContext(ctx).
		Where("sku = ?", sku).
		First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// FindByProduct finds a product's variants, active ones first
func (r *GormVariantRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]catalog.ProductVariant, error) {
	var variants []catalog.ProductVariant
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.ProductVariant{}).Where("product_id = ?", productID),
		filter,
	)

	if err := query.Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// SKUExists checks if a SKU is taken
func (r *GormVariantRepository) SKUExists(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.ProductVariant{}).
		Where("sku = ?", sku).
		Where("id <> ?", excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReplaceSelections replaces the variant's attribute selections
func (r *GormVariantRepository) ReplaceSelections(ctx context.Context, variantID uuid.UUID, selections []catalog.VariantAttributeSelection) error {
	if err := r.db.WithContext(ctx).
		Delete(&catalog.VariantAttributeSelection{}, "variant_id = ?", variantID).Error; err != nil {
		return err
	}
	if len(selections) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).Create(&selections).Error)
}

// FindSelections returns the variant's attribute selections
func (r *GormVariantRepository) FindSelections(ctx context.Context, variantID uuid.UUID) ([]catalog.VariantAttributeSelection, error) {
	var selections []catalog.VariantAttributeSelection
	if err := r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Find(&selections).Error; err != nil {
		return nil, err
	}
	return selections, nil
}

// Save creates or updates a variant
func (r *GormVariantRepository) Save(ctx context.Context, variant *catalog.ProductVariant) error {
	return translateError(r.db.WithContext(ctx).Save(variant).Error)
}

// Delete permanently removes a variant
func (r *GormVariantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ProductVariant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts variants matching the filter
func (r *GormVariantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.ProductVariant{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormVariantRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy == "" {
		return query.Order("is_active DESC, created_at ASC")
	}
	orderBy := ValidateSortField(filter.OrderBy, VariantSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormVariantRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("sku ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "in_stock":
			if inStock, ok := value.(bool); ok && inStock {
				query = query.Where("stock > 0")
			}
		}
	}

	return query
}

// Ensure GormVariantRepository implements VariantRepository
var _ catalog.VariantRepository = (*GormVariantRepository)(nil)
