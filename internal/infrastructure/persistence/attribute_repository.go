package persistence

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttributeRepository implements AttributeRepository using GORM
type GormAttributeRepository struct {
	db *gorm.DB
}

// NewGormAttributeRepository creates a new GormAttributeRepository
func NewGormAttributeRepository(db *gorm.DB) *GormAttributeRepository {
	return &GormAttributeRepository{db: db}
}

// FindByID finds an attribute by its ID
func (r *GormAttributeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.VariantAttribute, error) {
	var attribute catalog.VariantAttribute
	if err := r.db.WithContext(ctx).First(&attribute, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attribute, nil
}

// FindAll finds all attributes ordered by display_order then name
func (r *GormAttributeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.VariantAttribute, error) {
	query := r.db.WithContext(ctx).Model(&catalog.VariantAttribute{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var attributes []catalog.VariantAttribute
	if err := query.Order("display_order ASC, name ASC").Find(&attributes).Error; err != nil {
		return nil, err
	}
	return attributes, nil
}

// NameExists checks if an attribute name is taken, case-insensitively
func (r *GormAttributeRepository) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.VariantAttribute{}).
		Where("LOWER(name) = LOWER(?)", name).
		Where("id <> ?", excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsInUse checks if any variant selection references the attribute
func (r *GormAttributeRepository) IsInUse(ctx context.Context, attributeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.VariantAttributeSelection{}).
		Where("attribute_id = ?", attributeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an attribute
func (r *GormAttributeRepository) Save(ctx context.Context, attribute *catalog.VariantAttribute) error {
	return translateError(r.db.WithContext(ctx).Save(attribute).Error)
}

// Delete permanently removes an attribute and its values
func (r *GormAttributeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Delete(&catalog.VariantAttributeValue{}, "attribute_id = ?", id).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&catalog.VariantAttribute{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindValueByID finds an attribute value by its ID
func (r *GormAttributeRepository) FindValueByID(ctx context.Context, id uuid.UUID) (*catalog.VariantAttributeValue, error) {
	var value catalog.VariantAttributeValue
	if err := r.db.WithContext(ctx).First(&value, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &value, nil
}

// FindValues finds an attribute's values ordered by sort_order then value
func (r *GormAttributeRepository) FindValues(ctx context.Context, attributeID uuid.UUID) ([]catalog.VariantAttributeValue, error) {
	var values []catalog.VariantAttributeValue
	if err := r.db.WithContext(ctx).
		Where("attribute_id = ?", attributeID).
		Order("sort_order ASC, value ASC").
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// ValueExists checks if the value is taken within the attribute
func (r *GormAttributeRepository) ValueExists(ctx context.Context, attributeID uuid.UUID, value string, excludeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.VariantAttributeValue{}).
		Where("attribute_id = ? AND LOWER(value) = LOWER(?)", attributeID, value).
		Where("id <> ?", excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ValueInUse checks if any variant selection references the value
func (r *GormAttributeRepository) ValueInUse(ctx context.Context, valueID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.VariantAttributeSelection{}).
		Where("value_id = ?", valueID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveValue creates or updates an attribute value
func (r *GormAttributeRepository) SaveValue(ctx context.Context, value *catalog.VariantAttributeValue) error {
	return translateError(r.db.WithContext(ctx).Save(value).Error)
}

// DeleteValue permanently removes an attribute value
func (r *GormAttributeRepository) DeleteValue(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.VariantAttributeValue{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormAttributeRepository implements AttributeRepository
var _ catalog.AttributeRepository = (*GormAttributeRepository)(nil)
