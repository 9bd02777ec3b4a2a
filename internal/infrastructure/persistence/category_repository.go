package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByIDForUpdate finds a category and locks its row until the surrounding
// transaction commits. Concurrent moves of overlapping subtrees serialize on
// this lock.
func (r *GormCategoryRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByPath finds a category by its materialized path
func (r *GormCategoryRepository) FindByPath(ctx context.Context, path string) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).
		Where("path = ?", path).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds all categories matching the filter
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	var categories []catalog.Category
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Category{}), filter)

	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindChildren finds all direct children of a category
func (r *GormCategoryRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindRoots finds all root categories
func (r *GormCategoryRepository) FindRoots(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Order("sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindDescendants finds all strict descendants via the materialized path.
// Level-ascending order guarantees parents come before their children, which
// path recomputation relies on.
func (r *GormCategoryRepository) FindDescendants(ctx context.Context, category *catalog.Category) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Where("path LIKE ?", category.Path+catalog.PathSeparator+"%").
		Order("level ASC, sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindAncestors returns the chain from root down to the category. The
// ancestor paths are all prefixes of the category's own path, so one IN
// query resolves the whole chain.
func (r *GormCategoryRepository) FindAncestors(ctx context.Context, category *catalog.Category, includeSelf bool) ([]catalog.Category, error) {
	segments := strings.Split(category.Path, catalog.PathSeparator)
	limit := len(segments)
	if !includeSelf {
		limit--
	}
	if limit == 0 {
		return []catalog.Category{}, nil
	}

	paths := make([]string, 0, limit)
	for i := 1; i <= limit; i++ {
		paths = append(paths, strings.Join(segments[:i], catalog.PathSeparator))
	}

	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Where("path IN ?", paths).
		Order("level ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// SiblingNameExists checks if another category under the same parent uses
// the name, case-insensitively
func (r *GormCategoryRepository) SiblingNameExists(ctx context.Context, parentID *uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&catalog.Category{}).
		Where("LOWER(name) = LOWER(?)", name).
		Where("id <> ?", excludeID)
	query = scopeToParent(query, parentID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SiblingSlugExists checks if a slug is taken under the parent
func (r *GormCategoryRepository) SiblingSlugExists(ctx context.Context, parentID *uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&catalog.Category{}).
		Where("slug = ?", slug).
		Where("id <> ?", excludeID)
	query = scopeToParent(query, parentID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func scopeToParent(query *gorm.DB, parentID *uuid.UUID) *gorm.DB {
	if parentID == nil {
		return query.Where("parent_id IS NULL")
	}
	return query.Where("parent_id = ?", *parentID)
}

// HasActiveChildren checks if any direct child is active
func (r *GormCategoryRepository) HasActiveChildren(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Category{}).
		Where("parent_id = ? AND is_active = ?", categoryID, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasProducts checks if any product references the category
func (r *GormCategoryRepository) HasProducts(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return translateError(r.db.WithContext(ctx).Save(category).Error)
}

// SavePaths persists recomputed paths and levels for a set of descendants.
// Runs on whatever connection the repository is bound to, so inside a
// transaction the updates commit or roll back with the structural change.
func (r *GormCategoryRepository) SavePaths(ctx context.Context, categories []catalog.Category) error {
	for i := range categories {
		if err := r.db.WithContext(ctx).
			Model(&catalog.Category{}).
			Where("id = ?", categories[i].ID).
			Updates(map[string]interface{}{
				"path":  categories[i].Path,
				"level": categories[i].Level,
			}).Error; err != nil {
			return translateError(err)
		}
	}
	return nil
}

// Delete permanently removes a category
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts categories matching the filter
func (r *GormCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Category{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCategoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	if filter.OrderBy == "" {
		return query.Order("sort_order ASC, name ASC")
	}
	orderBy := ValidateSortField(filter.OrderBy, CategorySortFields, "sort_order")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCategoryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR slug ILIKE ?", searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "show_in_menu":
			query = query.Where("show_in_menu = ?", value)
		case "parent_id":
			if value == nil {
				query = query.Where("parent_id IS NULL")
			} else {
				query = query.Where("parent_id = ?", value)
			}
		case "level":
			query = query.Where("level = ?", value)
		}
	}

	return query
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
