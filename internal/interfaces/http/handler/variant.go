package handler

import (
	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VariantHandler handles product variant API endpoints
type VariantHandler struct {
	BaseHandler
	variantService *catalogapp.VariantService
}

// NewVariantHandler creates a new VariantHandler
func NewVariantHandler(variantService *catalogapp.VariantService) *VariantHandler {
	return &VariantHandler{
		variantService: variantService,
	}
}

// Create godoc
// @Summary      Create a product variant
// @Description  Create a new variant (SKU) under an existing product. The attribute selection must be unique within the product.
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateVariantRequest true "Variant creation request"
// @Success      201 {object} dto.Response{data=catalog.VariantResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/variants [post]
func (h *VariantHandler) Create(c *gin.Context) {
	var req catalogapp.CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	variant, err := h.variantService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, variant)
}

// GetByID godoc
// @Summary      Get variant by ID
// @Description  Retrieve a variant by its ID
// @Tags         variants
// @Produce      json
// @Param        id path string true "Variant ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.VariantResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/variants/{id} [get]
func (h *VariantHandler) GetByID(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	variant, err := h.variantService.GetByID(c.Request.Context(), variantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, variant)
}

// ListByProduct godoc
// @Summary      List variants of a product
// @Description  Retrieve all variants belonging to a product
// @Tags         variants
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalog.VariantResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/{id}/variants [get]
func (h *VariantHandler) ListByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	variants, err := h.variantService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, variants)
}

// Update godoc
// @Summary      Update a variant
// @Description  Update pricing, stock, dimensions or attribute selections of a variant
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        id path string true "Variant ID" format(uuid)
// @Param        request body catalog.UpdateVariantRequest true "Variant update request"
// @Success      200 {object} dto.Response{data=catalog.VariantResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/variants/{id} [put]
func (h *VariantHandler) Update(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	var req catalogapp.UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	variant, err := h.variantService.Update(c.Request.Context(), variantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, variant)
}

// Activate godoc
// @Summary      Activate a variant
// @Description  Activate an inactive variant
// @Tags         variants
// @Produce      json
// @Param        id path string true "Variant ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.VariantResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/variants/{id}/activate [post]
func (h *VariantHandler) Activate(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	variant, err := h.variantService.Activate(c.Request.Context(), variantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, variant)
}

// Deactivate godoc
// @Summary      Deactivate a variant
// @Description  Deactivate an active variant
// @Tags         variants
// @Produce      json
// @Param        id path string true "Variant ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.VariantResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/variants/{id}/deactivate [post]
func (h *VariantHandler) Deactivate(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	variant, err := h.variantService.Deactivate(c.Request.Context(), variantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, variant)
}

// Delete godoc
// @Summary      Delete a variant
// @Description  Delete a variant and its attribute selections
// @Tags         variants
// @Produce      json
// @Param        id path string true "Variant ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/variants/{id} [delete]
func (h *VariantHandler) Delete(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	err = h.variantService.Delete(c.Request.Context(), variantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
