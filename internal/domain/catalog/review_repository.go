package catalog

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReviewRepository defines the interface for product review persistence
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductReview, error)

	// FindByProduct lists reviews for a product, newest first.
	// approvedOnly restricts to moderated reviews for public pages.
	FindByProduct(ctx context.Context, productID uuid.UUID, approvedOnly bool, filter shared.Filter) ([]ProductReview, error)

	// FindByUser lists the user's reviews, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ProductReview, error)

	// FindByProductAndUser returns the user's review of the product, if any
	FindByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*ProductReview, error)

	// AverageRating returns the mean approved rating and the approved
	// review count; the average is zero when there are no approved reviews
	AverageRating(ctx context.Context, productID uuid.UUID) (float64, int64, error)

	Save(ctx context.Context, review *ProductReview) error

	Delete(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
