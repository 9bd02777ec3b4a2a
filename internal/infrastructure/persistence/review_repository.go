package persistence

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductReview, error) {
	var review catalog.ProductReview
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// FindByProduct finds reviews for a product, newest first
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, approvedOnly bool, filter shared.Filter) ([]catalog.ProductReview, error) {
	query := r.db.WithContext(ctx).
		Model(&catalog.ProductReview{}).
		Where("product_id = ?", productID)
	if approvedOnly {
		query = query.Where("is_approved = ?", true)
	}

	var reviews []catalog.ProductReview
	if err := r.applyFilter(query, filter).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindByUser finds the user's reviews, newest first
func (r *GormReviewRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]catalog.ProductReview, error) {
	query := r.db.WithContext(ctx).
		Model(&catalog.ProductReview{}).
		Where("user_id = ?", userID)

	var reviews []catalog.ProductReview
	if err := r.applyFilter(query, filter).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindByProductAndUser returns the user's review of the product, if any
func (r *GormReviewRepository) FindByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*catalog.ProductReview, error) {
	var review catalog.ProductReview
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// AverageRating returns the mean approved rating and the approved review count
func (r *GormReviewRepository) AverageRating(ctx context.Context, productID uuid.UUID) (float64, int64, error) {
	var row struct {
		Average float64
		Total   int64
	}
	if err := r.db.WithContext(ctx).
		Model(&catalog.ProductReview{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("product_id = ? AND is_approved = ?", productID, true).
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Average, row.Total, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, review *catalog.ProductReview) error {
	return translateError(r.db.WithContext(ctx).Save(review).Error)
}

// Delete permanently removes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ProductReview{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts reviews matching the filter
func (r *GormReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.ProductReview{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormReviewRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy == "" {
		return query.Order("created_at DESC")
	}
	orderBy := ValidateSortField(filter.OrderBy, ReviewSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReviewRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "is_approved":
			query = query.Where("is_approved = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "rating":
			query = query.Where("rating = ?", value)
		}
	}

	return query
}

// Ensure GormReviewRepository implements ReviewRepository
var _ catalog.ReviewRepository = (*GormReviewRepository)(nil)
