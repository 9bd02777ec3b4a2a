package dashboard

import (
	"net/http"
	"net/url"

	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BrandList renders the brand table.
func (h *Handler) BrandList(c *gin.Context) {
	filter := catalogapp.BrandListFilter{
		Search:       c.Query("search"),
		ActiveOnly:   c.Query("is_active") == "1",
		FeaturedOnly: c.Query("is_featured") == "1",
		Page:         1,
		PageSize:     100,
	}
	brands, total, err := h.brands.List(c.Request.Context(), filter)
	if err != nil {
		h.renderError(c, "brand_list.html", "Brands", err)
		return
	}

	c.HTML(http.StatusOK, "brand_list.html", gin.H{
		"Title":  "Brands",
		"Brands": brands,
		"Total":  total,
		"Search": filter.Search,
		"Error":  c.Query("error"),
	})
}

// BrandNew renders an empty brand form.
func (h *Handler) BrandNew(c *gin.Context) {
	c.HTML(http.StatusOK, "brand_form.html", gin.H{
		"Title":  "New Brand",
		"Action": "/dashboard/brands",
	})
}

// BrandCreate handles the create form submission.
func (h *Handler) BrandCreate(c *gin.Context) {
	req := catalogapp.CreateBrandRequest{
		Name:            c.PostForm("name"),
		Description:     c.PostForm("description"),
		WebsiteURL:      c.PostForm("website_url"),
		Country:         c.PostForm("country"),
		FoundedYear:     formInt(c, "founded_year"),
		MetaTitle:       c.PostForm("meta_title"),
		MetaDescription: c.PostForm("meta_description"),
		IsFeatured:      boolPtr(formBool(c, "is_featured")),
		Priority:        formInt(c, "priority"),
	}

	created, err := h.brands.Create(c.Request.Context(), req)
	if err != nil {
		c.HTML(http.StatusBadRequest, "brand_form.html", gin.H{
			"Title":  "New Brand",
			"Error":  err.Error(),
			"Action": "/dashboard/brands",
		})
		return
	}

	h.logger.Info("Brand created via dashboard",
		zap.String("brand_id", created.ID.String()),
		zap.String("slug", created.Slug),
	)
	c.Redirect(http.StatusFound, "/dashboard/brands")
}

// BrandEdit renders the edit form.
func (h *Handler) BrandEdit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard/brands")
		return
	}

	brand, err := h.brands.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard/brands")
		return
	}

	c.HTML(http.StatusOK, "brand_form.html", gin.H{
		"Title":  "Edit Brand",
		"Brand":  brand,
		"Action": "/dashboard/brands/" + id.String(),
	})
}

// BrandUpdate handles the edit form submission.
func (h *Handler) BrandUpdate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard/brands")
		return
	}

	req := catalogapp.UpdateBrandRequest{
		Name:            strPtr(c.PostForm("name")),
		Description:     strPtr(c.PostForm("description")),
		Country:         strPtr(c.PostForm("country")),
		FoundedYear:     formInt(c, "founded_year"),
		MetaTitle:       strPtr(c.PostForm("meta_title")),
		MetaDescription: strPtr(c.PostForm("meta_description")),
		IsFeatured:      boolPtr(formBool(c, "is_featured")),
		Priority:        formInt(c, "priority"),
	}
	if url := c.PostForm("website_url"); url != "" {
		req.WebsiteURL = strPtr(url)
	}

	updated, err := h.brands.Update(c.Request.Context(), id, req)
	if err != nil {
		brand, getErr := h.brands.GetByID(c.Request.Context(), id)
		if getErr != nil {
			c.Redirect(http.StatusFound, "/dashboard/brands")
			return
		}
		c.HTML(http.StatusBadRequest, "brand_form.html", gin.H{
			"Title":  "Edit Brand",
			"Brand":  brand,
			"Error":  err.Error(),
			"Action": "/dashboard/brands/" + id.String(),
		})
		return
	}

	h.logger.Info("Brand updated via dashboard",
		zap.String("brand_id", updated.ID.String()),
	)
	c.Redirect(http.StatusFound, "/dashboard/brands")
}

// BrandDelete permanently deletes an inactive, product-free brand.
func (h *Handler) BrandDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard/brands")
		return
	}

	if err := h.brands.Delete(c.Request.Context(), id); err != nil {
		c.Redirect(http.StatusFound, "/dashboard/brands?error="+url.QueryEscape(errorMessage(err)))
		return
	}

	h.logger.Warn("Brand permanently deleted via dashboard",
		zap.String("brand_id", id.String()),
	)
	c.Redirect(http.StatusFound, "/dashboard/brands")
}

// ToggleBrandActive flips the is_active flag.
func (h *Handler) ToggleBrandActive(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing brand id"})
		return
	}

	brand, err := h.brands.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
		return
	}

	if brand.IsActive {
		brand, err = h.brands.Deactivate(c.Request.Context(), id)
	} else {
		brand, err = h.brands.Activate(c.Request.Context(), id)
	}
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "is_active": brand.IsActive})
}

// ToggleBrandFeatured flips the is_featured flag.
func (h *Handler) ToggleBrandFeatured(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing brand id"})
		return
	}

	brand, err := h.brands.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
		return
	}

	updated, err := h.brands.Update(c.Request.Context(), id, catalogapp.UpdateBrandRequest{
		IsFeatured: boolPtr(!brand.IsFeatured),
	})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "is_featured": updated.IsFeatured})
}

// SoftDeleteBrand deactivates a brand unless products are still linked.
func (h *Handler) SoftDeleteBrand(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing brand id"})
		return
	}

	if _, err := h.brands.GetByID(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
		return
	}

	if err := h.guard.CheckBrandRemovable(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	if _, err := h.brands.Deactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
