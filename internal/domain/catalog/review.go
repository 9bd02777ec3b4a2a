package catalog

import (
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductReview is a customer rating of a product. One review per
// (product, user); reviews are hidden until approved by staff.
type ProductReview struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID `gorm:"type:uuid;not null;index:idx_product_user_review,unique"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_product_user_review,unique"`

	Rating  int    `gorm:"not null"`
	Title   string `gorm:"type:varchar(200)"`
	Comment string `gorm:"type:text"`

	IsApproved bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ProductReview) TableName() string {
	return "product_reviews"
}

// NewProductReview creates an unapproved review
func NewProductReview(productID, userID uuid.UUID, rating int, title, comment string) (*ProductReview, error) {
	if productID == uuid.Nil {
		return nil, shared.NewFieldError("INVALID_INPUT", "product_id", "Product is required")
	}
	if userID == uuid.Nil {
		return nil, shared.NewFieldError("INVALID_INPUT", "user_id", "User is required")
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	if len(title) > 200 {
		return nil, shared.NewFieldError("INVALID_INPUT", "title", "Title cannot exceed 200 characters")
	}

	return &ProductReview{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		UserID:            userID,
		Rating:            rating,
		Title:             strings.TrimSpace(title),
		Comment:           comment,
	}, nil
}

// Edit updates the review content; editing resets the approval so the
// review goes through moderation again
func (r *ProductReview) Edit(rating int, title, comment string) error {
	if err := validateRating(rating); err != nil {
		return err
	}
	if len(title) > 200 {
		return shared.NewFieldError("INVALID_INPUT", "title", "Title cannot exceed 200 characters")
	}
	r.Rating = rating
	r.Title = strings.TrimSpace(title)
	r.Comment = comment
	r.IsApproved = false
	r.Touch()
	r.IncrementVersion()
	return nil
}

// Approve makes the review publicly visible
func (r *ProductReview) Approve() error {
	if r.IsApproved {
		return shared.NewDomainError("INVALID_STATE", "Review is already approved")
	}
	r.IsApproved = true
	r.Touch()
	r.IncrementVersion()
	return nil
}

// Reject hides a previously approved review
func (r *ProductReview) Reject() error {
	if !r.IsApproved {
		return shared.NewDomainError("INVALID_STATE", "Review is not approved")
	}
	r.IsApproved = false
	r.Touch()
	r.IncrementVersion()
	return nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return shared.NewFieldError("INVALID_INPUT", "rating", "Rating must be between 1 and 5")
	}
	return nil
}
