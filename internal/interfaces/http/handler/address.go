package handler

import (
	identityapp "github.com/ecommerce/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AddressHandler handles saved address API endpoints. Every operation is
// scoped to the authenticated user's own address book.
type AddressHandler struct {
	BaseHandler
	addressService *identityapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addressService *identityapp.AddressService) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
	}
}

// List godoc
// @Summary      List my addresses
// @Description  Retrieve the authenticated user's saved addresses, default first
// @Tags         addresses
// @Produce      json
// @Success      200 {object} dto.Response{data=[]identity.AddressResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /account/addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, addresses)
}

// Get godoc
// @Summary      Get an address
// @Description  Retrieve one of the authenticated user's saved addresses
// @Tags         addresses
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Success      200 {object} dto.Response{data=identity.AddressResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /account/addresses/{id} [get]
func (h *AddressHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	address, err := h.addressService.Get(c.Request.Context(), userID, addressID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, address)
}

// Create godoc
// @Summary      Add an address
// @Description  Save a new address. The first saved address becomes the default automatically.
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        request body identity.AddressRequest true "Address"
// @Success      201 {object} dto.Response{data=identity.AddressResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /account/addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	address, err := h.addressService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, address)
}

// Update godoc
// @Summary      Update an address
// @Description  Replace the full field set of a saved address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Param        request body identity.AddressRequest true "Address"
// @Success      200 {object} dto.Response{data=identity.AddressResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /account/addresses/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	var req identityapp.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	address, err := h.addressService.Update(c.Request.Context(), userID, addressID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, address)
}

// SetDefault godoc
// @Summary      Set the default address
// @Description  Mark an address as the default, demoting the previous default
// @Tags         addresses
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Success      200 {object} dto.Response{data=identity.AddressResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /account/addresses/{id}/default [post]
func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	address, err := h.addressService.SetDefault(c.Request.Context(), userID, addressID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, address)
}

// Delete godoc
// @Summary      Delete an address
// @Description  Delete a saved address. Deleting the default promotes the most recent remaining address.
// @Tags         addresses
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /account/addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), userID, addressID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
