package handler

import (
	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	"github.com/ecommerce/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReviewHandler handles product review API endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService *catalogapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *catalogapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// reviewListQuery narrows a product review listing
type reviewListQuery struct {
	IncludeUnapproved bool `form:"include_unapproved"`
	Page              int  `form:"page" binding:"omitempty,min=1"`
	PageSize          int  `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Submit godoc
// @Summary      Submit a product review
// @Description  Submit a review for a product. A second submission by the same user replaces the first and returns it to moderation.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        slug path string true "Product slug"
// @Param        request body catalog.SubmitReviewRequest true "Review submission"
// @Success      201 {object} dto.Response{data=catalog.ReviewResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/products/by-slug/{slug}/reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Product slug is required")
		return
	}

	var req catalogapp.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), slug, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, review)
}

// ListByProduct godoc
// @Summary      List reviews of a product
// @Description  Retrieve approved reviews of a product. Staff callers may include unapproved reviews.
// @Tags         reviews
// @Produce      json
// @Param        slug path string true "Product slug"
// @Param        include_unapproved query bool false "Include unapproved reviews (staff only)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]catalog.ReviewResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/by-slug/{slug}/reviews [get]
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Product slug is required")
		return
	}

	var query reviewListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.PageSize == 0 {
		query.PageSize = 20
	}

	// Unapproved reviews are visible to staff only
	includeUnapproved := query.IncludeUnapproved && middleware.GetJWTIsStaff(c)

	reviews, total, err := h.reviewService.ListByProduct(c.Request.Context(), slug, includeUnapproved, query.Page, query.PageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, reviews, total, query.Page, query.PageSize)
}

// ListMine godoc
// @Summary      List my reviews
// @Description  Retrieve all reviews submitted by the authenticated user
// @Tags         reviews
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalog.ReviewResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /account/reviews [get]
func (h *ReviewHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	reviews, err := h.reviewService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reviews)
}

// Approve godoc
// @Summary      Approve a review
// @Description  Approve a pending review so it becomes publicly visible
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Review ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.ReviewResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/reviews/{id}/approve [post]
func (h *ReviewHandler) Approve(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	review, err := h.reviewService.Approve(c.Request.Context(), reviewID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, review)
}

// Reject godoc
// @Summary      Reject a review
// @Description  Reject a review, hiding it from public listings
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Review ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.ReviewResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/reviews/{id}/reject [post]
func (h *ReviewHandler) Reject(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	review, err := h.reviewService.Reject(c.Request.Context(), reviewID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, review)
}

// Delete godoc
// @Summary      Delete a review
// @Description  Delete a review. Allowed for the review's author and for staff.
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Review ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	err = h.reviewService.Delete(c.Request.Context(), reviewID, userID, middleware.GetJWTIsStaff(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
