package handler

import (
	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MediaHandler handles media object API endpoints. Image bytes travel
// directly between the client and the blob store via presigned URLs.
type MediaHandler struct {
	BaseHandler
	mediaService *catalogapp.MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService *catalogapp.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
	}
}

// mediaListQuery identifies the owner whose media is listed
type mediaListQuery struct {
	OwnerKind string    `form:"owner_kind" binding:"required,oneof=category brand product variant"`
	OwnerID   uuid.UUID `form:"owner_id" binding:"required"`
}

// IssueUploadURL godoc
// @Summary      Issue a presigned upload URL
// @Description  Reserve a media slot for an owner entity and return a presigned PUT URL the client uploads the file to
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        request body catalog.IssueUploadURLRequest true "Upload slot request"
// @Success      201 {object} dto.Response{data=catalog.IssueUploadURLResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/media/upload-url [post]
func (h *MediaHandler) IssueUploadURL(c *gin.Context) {
	var req catalogapp.IssueUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	slot, err := h.mediaService.IssueUploadURL(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, slot)
}

// ConfirmUpload godoc
// @Summary      Confirm a completed upload
// @Description  Mark a reserved media slot as uploaded after the client has PUT the file. Fails if the object is missing from storage.
// @Tags         media
// @Produce      json
// @Param        id path string true "Media ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.MediaResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/media/{id}/confirm [post]
func (h *MediaHandler) ConfirmUpload(c *gin.Context) {
	mediaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid media ID format")
		return
	}

	media, err := h.mediaService.ConfirmUpload(c.Request.Context(), mediaID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, media)
}

// ListByOwner godoc
// @Summary      List media of an owner
// @Description  Retrieve all uploaded media records of a category, brand, product or variant with fresh download URLs
// @Tags         media
// @Produce      json
// @Param        owner_kind query string true "Owner kind" Enums(category, brand, product, variant)
// @Param        owner_id query string true "Owner ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalog.MediaResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/media [get]
func (h *MediaHandler) ListByOwner(c *gin.Context) {
	var query mediaListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	media, err := h.mediaService.ListByOwner(c.Request.Context(), query.OwnerKind, query.OwnerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, media)
}

// SetPrimary godoc
// @Summary      Set primary media
// @Description  Mark a media object as the primary image of its owner, demoting the previous primary
// @Tags         media
// @Produce      json
// @Param        id path string true "Media ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/media/{id}/primary [post]
func (h *MediaHandler) SetPrimary(c *gin.Context) {
	mediaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid media ID format")
		return
	}

	if err := h.mediaService.SetPrimary(c.Request.Context(), mediaID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete godoc
// @Summary      Delete a media object
// @Description  Delete a media record and remove the underlying object from storage
// @Tags         media
// @Produce      json
// @Param        id path string true "Media ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/media/{id} [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	mediaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid media ID format")
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), mediaID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
