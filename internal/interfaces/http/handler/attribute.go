package handler

import (
	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AttributeHandler handles variant attribute API endpoints
type AttributeHandler struct {
	BaseHandler
	attributeService *catalogapp.AttributeService
}

// NewAttributeHandler creates a new AttributeHandler
func NewAttributeHandler(attributeService *catalogapp.AttributeService) *AttributeHandler {
	return &AttributeHandler{
		attributeService: attributeService,
	}
}

// Create godoc
// @Summary      Create a variant attribute
// @Description  Create a new variant attribute, e.g. Color or Size
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateAttributeRequest true "Attribute creation request"
// @Success      201 {object} dto.Response{data=catalog.AttributeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes [post]
func (h *AttributeHandler) Create(c *gin.Context) {
	var req catalogapp.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	attribute, err := h.attributeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, attribute)
}

// GetByID godoc
// @Summary      Get attribute by ID
// @Description  Retrieve an attribute with its values
// @Tags         attributes
// @Produce      json
// @Param        id path string true "Attribute ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.AttributeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/attributes/{id} [get]
func (h *AttributeHandler) GetByID(c *gin.Context) {
	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	attribute, err := h.attributeService.GetByID(c.Request.Context(), attributeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, attribute)
}

// List godoc
// @Summary      List attributes
// @Description  Retrieve all variant attributes with their values, ordered by display order
// @Tags         attributes
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalog.AttributeResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/attributes [get]
func (h *AttributeHandler) List(c *gin.Context) {
	attributes, err := h.attributeService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, attributes)
}

// Update godoc
// @Summary      Update an attribute
// @Description  Rename an attribute or change its display order
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        id path string true "Attribute ID" format(uuid)
// @Param        request body catalog.UpdateAttributeRequest true "Attribute update request"
// @Success      200 {object} dto.Response{data=catalog.AttributeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes/{id} [put]
func (h *AttributeHandler) Update(c *gin.Context) {
	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	var req catalogapp.UpdateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	attribute, err := h.attributeService.Update(c.Request.Context(), attributeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, attribute)
}

// Delete godoc
// @Summary      Delete an attribute
// @Description  Delete an attribute. Rejected while variant selections still reference any of its values.
// @Tags         attributes
// @Produce      json
// @Param        id path string true "Attribute ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes/{id} [delete]
func (h *AttributeHandler) Delete(c *gin.Context) {
	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	err = h.attributeService.Delete(c.Request.Context(), attributeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddValue godoc
// @Summary      Add a value to an attribute
// @Description  Add a new value, e.g. Red or XL, to an existing attribute
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        id path string true "Attribute ID" format(uuid)
// @Param        request body catalog.CreateValueRequest true "Value creation request"
// @Success      201 {object} dto.Response{data=catalog.ValueResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes/{id}/values [post]
func (h *AttributeHandler) AddValue(c *gin.Context) {
	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	var req catalogapp.CreateValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	value, err := h.attributeService.AddValue(c.Request.Context(), attributeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, value)
}

// DeleteValue godoc
// @Summary      Delete an attribute value
// @Description  Delete a value. Rejected while variant selections still reference it.
// @Tags         attributes
// @Produce      json
// @Param        valueId path string true "Value ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attribute-values/{valueId} [delete]
func (h *AttributeHandler) DeleteValue(c *gin.Context) {
	valueID, err := uuid.Parse(c.Param("valueId"))
	if err != nil {
		h.BadRequest(c, "Invalid value ID format")
		return
	}

	err = h.attributeService.DeleteValue(c.Request.Context(), valueID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
