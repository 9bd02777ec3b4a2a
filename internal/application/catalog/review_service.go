package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SubmitReviewRequest represents a customer review submission
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Title   string `json:"title" binding:"max=200"`
	Comment string `json:"comment"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	UserID     uuid.UUID `json:"user_id"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title"`
	Comment    string    `json:"comment"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReviewService handles review submission and moderation
type ReviewService struct {
	repos Repos
	tx    TxManager
}

// NewReviewService creates a new ReviewService
func NewReviewService(repos Repos, tx TxManager) *ReviewService {
	return &ReviewService{repos: repos, tx: tx}
}

// Submit creates or replaces the user's review of a product. A second
// submission by the same user edits the existing review and sends it back
// through moderation.
func (s *ReviewService) Submit(ctx context.Context, productSlug string, userID uuid.UUID, req SubmitReviewRequest) (*ReviewResponse, error) {
	var review *catalog.ProductReview

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		product, err := repos.Products.FindBySlug(ctx, productSlug)
		if err != nil {
			return err
		}

		existing, err := repos.Reviews.FindByProductAndUser(ctx, product.ID, userID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		if existing != nil {
			if err := existing.Edit(req.Rating, req.Title, req.Comment); err != nil {
				return err
			}
			review = existing
		} else {
			review, err = catalog.NewProductReview(product.ID, userID, req.Rating, req.Title, req.Comment)
			if err != nil {
				return err
			}
		}

		return repos.Reviews.Save(ctx, review)
	})
	if err != nil {
		return nil, err
	}
	return toReviewResponse(review), nil
}

// Approve makes a review publicly visible (staff only)
func (s *ReviewService) Approve(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	return s.moderate(ctx, id, true)
}

// Reject hides an approved review (staff only)
func (s *ReviewService) Reject(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	return s.moderate(ctx, id, false)
}

func (s *ReviewService) moderate(ctx context.Context, id uuid.UUID, approve bool) (*ReviewResponse, error) {
	var review *catalog.ProductReview

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		review, err = repos.Reviews.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if approve {
			err = review.Approve()
		} else {
			err = review.Reject()
		}
		if err != nil {
			return err
		}
		return repos.Reviews.Save(ctx, review)
	})
	if err != nil {
		return nil, err
	}
	return toReviewResponse(review), nil
}

// Delete removes a review. Users may delete their own; staff may delete any.
func (s *ReviewService) Delete(ctx context.Context, id, requesterID uuid.UUID, isStaff bool) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context, repos Repos) error {
		review, err := repos.Reviews.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !isStaff && review.UserID != requesterID {
			return shared.ErrForbidden
		}
		return repos.Reviews.Delete(ctx, review.ID)
	})
}

// ListByProduct lists a product's reviews. Non-staff callers only see
// approved reviews.
func (s *ReviewService) ListByProduct(ctx context.Context, productSlug string, includeUnapproved bool, page, pageSize int) ([]ReviewResponse, int64, error) {
	product, err := s.repos.Products.FindBySlug(ctx, productSlug)
	if err != nil {
		return nil, 0, err
	}

	filter := shared.Filter{
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
	if page > 0 && pageSize > 0 {
		filter.Page = page
		filter.PageSize = pageSize
	}

	reviews, err := s.repos.Reviews.FindByProduct(ctx, product.ID, !includeUnapproved, filter)
	if err != nil {
		return nil, 0, err
	}

	avgFilter := shared.Filter{Filters: map[string]interface{}{"product_id": product.ID}}
	if !includeUnapproved {
		avgFilter.Filters["is_approved"] = true
	}
	total, err := s.repos.Reviews.Count(ctx, avgFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = *toReviewResponse(&reviews[i])
	}
	return responses, total, nil
}

// ListByUser lists the requesting user's own reviews
func (s *ReviewService) ListByUser(ctx context.Context, userID uuid.UUID) ([]ReviewResponse, error) {
	reviews, err := s.repos.Reviews.FindByUser(ctx, userID, shared.Filter{
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	})
	if err != nil {
		return nil, err
	}

	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = *toReviewResponse(&reviews[i])
	}
	return responses, nil
}

func toReviewResponse(r *catalog.ProductReview) *ReviewResponse {
	return &ReviewResponse{
		ID:         r.ID,
		ProductID:  r.ProductID,
		UserID:     r.UserID,
		Rating:     r.Rating,
		Title:      r.Title,
		Comment:    r.Comment,
		IsApproved: r.IsApproved,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
